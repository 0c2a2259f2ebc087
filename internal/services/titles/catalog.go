package titles

import (
	"context"
	"errors"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"
)

// Category and genre management lives on the same service: both are
// admin-writable reference data backing titles.

func (s *TitleService) ListCategories(ctx context.Context, search string, f filters.Filters) ([]models.Category, filters.Metadata, error) {
	const op = "titles.TitleService.ListCategories"
	categories, total, err := s.categories.List(ctx, search, f)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, filters.Metadata{}, err
	}
	return categories, filters.CalculateMetadata(total, f.Page, f.PageSize), nil
}

func (s *TitleService) CreateCategory(ctx context.Context, name, slug string) (*models.Category, error) {
	const op = "titles.TitleService.CreateCategory"
	log := s.log.With("op", op, "slug", slug)
	category, err := s.categories.Insert(ctx, name, slug)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("category already exists")
			return nil, ErrSlugAlreadyTaken
		}
		log.Error(err.Error())
		return nil, err
	}
	return category, nil
}

// DeleteCategory nulls the category reference on any titles using it;
// the titles themselves survive (ON DELETE SET NULL).
func (s *TitleService) DeleteCategory(ctx context.Context, slug string) error {
	const op = "titles.TitleService.DeleteCategory"
	log := s.log.With("op", op, "slug", slug)
	if err := s.categories.Delete(ctx, slug); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("category not found")
			return ErrCategoryNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}

func (s *TitleService) ListGenres(ctx context.Context, search string, f filters.Filters) ([]models.Genre, filters.Metadata, error) {
	const op = "titles.TitleService.ListGenres"
	genres, total, err := s.genres.List(ctx, search, f)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, filters.Metadata{}, err
	}
	return genres, filters.CalculateMetadata(total, f.Page, f.PageSize), nil
}

func (s *TitleService) CreateGenre(ctx context.Context, name, slug string) (*models.Genre, error) {
	const op = "titles.TitleService.CreateGenre"
	log := s.log.With("op", op, "slug", slug)
	genre, err := s.genres.Insert(ctx, name, slug)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("genre already exists")
			return nil, ErrSlugAlreadyTaken
		}
		log.Error(err.Error())
		return nil, err
	}
	return genre, nil
}

func (s *TitleService) DeleteGenre(ctx context.Context, slug string) error {
	const op = "titles.TitleService.DeleteGenre"
	log := s.log.With("op", op, "slug", slug)
	if err := s.genres.Delete(ctx, slug); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("genre not found")
			return ErrGenreNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
