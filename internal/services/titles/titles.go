package titles

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"
)

type TitlesStorage interface {
	Get(ctx context.Context, id int64) (*models.Title, error)
	List(ctx context.Context, f filters.TitleFilter) ([]models.Title, int, error)
	Insert(ctx context.Context, name string, year int32, description string, categoryID *int64, genreIDs []int64) (int64, error)
	Update(ctx context.Context, id int64, name string, year int32, description string, categoryID *int64, genreIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

type CategoriesStorage interface {
	List(ctx context.Context, search string, f filters.Filters) ([]models.Category, int, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Insert(ctx context.Context, name, slug string) (*models.Category, error)
	Delete(ctx context.Context, slug string) error
}

type GenresStorage interface {
	List(ctx context.Context, search string, f filters.Filters) ([]models.Genre, int, error)
	GetBySlug(ctx context.Context, slug string) (*models.Genre, error)
	Insert(ctx context.Context, name, slug string) (*models.Genre, error)
	Delete(ctx context.Context, slug string) error
}

type TitleService struct {
	log        *slog.Logger
	titles     TitlesStorage
	categories CategoriesStorage
	genres     GenresStorage
}

func New(log *slog.Logger, titles TitlesStorage, categories CategoriesStorage, genres GenresStorage) *TitleService {
	return &TitleService{
		log:        log,
		titles:     titles,
		categories: categories,
		genres:     genres,
	}
}

// TitleParams carries a create or partial-update payload. Nil fields
// keep their current value on update.
type TitleParams struct {
	Name        *string
	Year        *int32
	Description *string
	Category    *string  // category slug
	Genres      []string // genre slugs, nil leaves genres untouched
}

func (s *TitleService) Get(ctx context.Context, id int64) (*models.Title, error) {
	const op = "titles.TitleService.Get"
	log := s.log.With("op", op, "id", id)
	title, err := s.titles.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("title not found")
			return nil, ErrTitleNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return title, nil
}

func (s *TitleService) List(ctx context.Context, f filters.TitleFilter) ([]models.Title, filters.Metadata, error) {
	const op = "titles.TitleService.List"
	titles, total, err := s.titles.List(ctx, f)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, filters.Metadata{}, err
	}
	return titles, filters.CalculateMetadata(total, f.Page, f.PageSize), nil
}

func (s *TitleService) Create(ctx context.Context, name string, year int32, description string, categorySlug *string, genreSlugs []string) (*models.Title, error) {
	const op = "titles.TitleService.Create"
	log := s.log.With("op", op, "name", name)
	if year > int32(time.Now().Year()) {
		return nil, ErrYearInFuture
	}
	categoryID, genreIDs, err := s.resolveCatalogRefs(ctx, categorySlug, genreSlugs)
	if err != nil {
		return nil, err
	}
	id, err := s.titles.Insert(ctx, name, year, description, categoryID, genreIDs)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *TitleService) Update(ctx context.Context, id int64, params TitleParams) (*models.Title, error) {
	const op = "titles.TitleService.Update"
	log := s.log.With("op", op, "id", id)
	title, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	name := title.Name
	year := title.Year
	description := title.Description
	if params.Name != nil {
		name = *params.Name
	}
	if params.Year != nil {
		year = *params.Year
	}
	if params.Description != nil {
		description = *params.Description
	}
	if year > int32(time.Now().Year()) {
		return nil, ErrYearInFuture
	}
	var categorySlug *string
	if params.Category != nil {
		categorySlug = params.Category
	} else if title.Category != nil {
		categorySlug = &title.Category.Slug
	}
	categoryID, genreIDs, err := s.resolveCatalogRefs(ctx, categorySlug, params.Genres)
	if err != nil {
		return nil, err
	}
	if err := s.titles.Update(ctx, id, name, year, description, categoryID, genreIDs); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTitleNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *TitleService) Delete(ctx context.Context, id int64) error {
	const op = "titles.TitleService.Delete"
	log := s.log.With("op", op, "id", id)
	if err := s.titles.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("title not found")
			return ErrTitleNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}

// resolveCatalogRefs turns category/genre slugs from a payload into ids,
// reporting unknown slugs as validation failures. A nil genres slice maps
// to nil ids, which leaves existing genre links alone.
func (s *TitleService) resolveCatalogRefs(ctx context.Context, categorySlug *string, genreSlugs []string) (*int64, []int64, error) {
	var categoryID *int64
	if categorySlug != nil {
		category, err := s.categories.GetBySlug(ctx, *categorySlug)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, nil, ErrCategoryNotFound
			}
			return nil, nil, err
		}
		categoryID = &category.ID
	}
	var genreIDs []int64
	if genreSlugs != nil {
		genreIDs = make([]int64, 0, len(genreSlugs))
		for _, slug := range genreSlugs {
			genre, err := s.genres.GetBySlug(ctx, slug)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, nil, ErrGenreNotFound
				}
				return nil, nil, err
			}
			genreIDs = append(genreIDs, genre.ID)
		}
	}
	return categoryID, genreIDs, nil
}
