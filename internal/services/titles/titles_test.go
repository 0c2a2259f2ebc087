package titles

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTitlesStorage struct {
	nextID int64
	titles map[int64]*models.Title
	genres map[int64][]int64
}

func newFakeTitlesStorage() *fakeTitlesStorage {
	return &fakeTitlesStorage{
		nextID: 1,
		titles: make(map[int64]*models.Title),
		genres: make(map[int64][]int64),
	}
}

func (s *fakeTitlesStorage) Get(_ context.Context, id int64) (*models.Title, error) {
	title, ok := s.titles[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *title
	return &copied, nil
}

func (s *fakeTitlesStorage) List(_ context.Context, f filters.TitleFilter) ([]models.Title, int, error) {
	out := make([]models.Title, 0, len(s.titles))
	for _, t := range s.titles {
		out = append(out, *t)
	}
	return out, len(out), nil
}

func (s *fakeTitlesStorage) Insert(_ context.Context, name string, year int32, description string, categoryID *int64, genreIDs []int64) (int64, error) {
	id := s.nextID
	s.nextID++
	title := &models.Title{ID: id, Name: name, Year: year, Description: description}
	if categoryID != nil {
		title.Category = &models.Category{ID: *categoryID}
	}
	s.titles[id] = title
	s.genres[id] = genreIDs
	return id, nil
}

func (s *fakeTitlesStorage) Update(_ context.Context, id int64, name string, year int32, description string, categoryID *int64, genreIDs []int64) error {
	title, ok := s.titles[id]
	if !ok {
		return storage.ErrNotFound
	}
	title.Name = name
	title.Year = year
	title.Description = description
	title.Category = nil
	if categoryID != nil {
		title.Category = &models.Category{ID: *categoryID}
	}
	if genreIDs != nil {
		s.genres[id] = genreIDs
	}
	return nil
}

func (s *fakeTitlesStorage) Delete(_ context.Context, id int64) error {
	if _, ok := s.titles[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.titles, id)
	return nil
}

type fakeCategoriesStorage struct {
	bySlug map[string]*models.Category
}

func (s *fakeCategoriesStorage) List(_ context.Context, search string, f filters.Filters) ([]models.Category, int, error) {
	out := make([]models.Category, 0, len(s.bySlug))
	for _, c := range s.bySlug {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (s *fakeCategoriesStorage) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	c, ok := s.bySlug[slug]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return c, nil
}

func (s *fakeCategoriesStorage) Insert(_ context.Context, name, slug string) (*models.Category, error) {
	if _, ok := s.bySlug[slug]; ok {
		return nil, storage.ErrConflict
	}
	c := &models.Category{ID: int64(len(s.bySlug) + 1), Name: name, Slug: slug}
	s.bySlug[slug] = c
	return c, nil
}

func (s *fakeCategoriesStorage) Delete(_ context.Context, slug string) error {
	if _, ok := s.bySlug[slug]; !ok {
		return storage.ErrNotFound
	}
	delete(s.bySlug, slug)
	return nil
}

type fakeGenresStorage struct {
	bySlug map[string]*models.Genre
}

func (s *fakeGenresStorage) List(_ context.Context, search string, f filters.Filters) ([]models.Genre, int, error) {
	out := make([]models.Genre, 0, len(s.bySlug))
	for _, g := range s.bySlug {
		out = append(out, *g)
	}
	return out, len(out), nil
}

func (s *fakeGenresStorage) GetBySlug(_ context.Context, slug string) (*models.Genre, error) {
	g, ok := s.bySlug[slug]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return g, nil
}

func (s *fakeGenresStorage) Insert(_ context.Context, name, slug string) (*models.Genre, error) {
	if _, ok := s.bySlug[slug]; ok {
		return nil, storage.ErrConflict
	}
	g := &models.Genre{ID: int64(len(s.bySlug) + 1), Name: name, Slug: slug}
	s.bySlug[slug] = g
	return g, nil
}

func (s *fakeGenresStorage) Delete(_ context.Context, slug string) error {
	if _, ok := s.bySlug[slug]; !ok {
		return storage.ErrNotFound
	}
	delete(s.bySlug, slug)
	return nil
}

func newTestService() (*TitleService, *fakeTitlesStorage, *fakeCategoriesStorage, *fakeGenresStorage) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	titles := newFakeTitlesStorage()
	categories := &fakeCategoriesStorage{bySlug: map[string]*models.Category{
		"books": {ID: 1, Name: "Books", Slug: "books"},
	}}
	genres := &fakeGenresStorage{bySlug: map[string]*models.Genre{
		"fantasy": {ID: 1, Name: "Fantasy", Slug: "fantasy"},
	}}
	return New(log, titles, categories, genres), titles, categories, genres
}

func TestCreateTitle(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	category := "books"

	title, err := svc.Create(ctx, "The Hobbit", 1937, "", &category, []string{"fantasy"})
	require.NoError(t, err)
	assert.Equal(t, "The Hobbit", title.Name)
	require.NotNil(t, title.Category)
}

func TestCreateTitleRejectsFutureYear(t *testing.T) {
	svc, store, _, _ := newTestService()
	nextYear := int32(time.Now().Year() + 1)

	_, err := svc.Create(context.Background(), "From The Future", nextYear, "", nil, nil)
	assert.ErrorIs(t, err, ErrYearInFuture)
	assert.Empty(t, store.titles)
}

func TestCreateTitleWithUnknownRefs(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	t.Run("unknown category", func(t *testing.T) {
		category := "does-not-exist"
		_, err := svc.Create(ctx, "The Hobbit", 1937, "", &category, nil)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
	t.Run("unknown genre", func(t *testing.T) {
		_, err := svc.Create(ctx, "The Hobbit", 1937, "", nil, []string{"does-not-exist"})
		assert.ErrorIs(t, err, ErrGenreNotFound)
	})
}

func TestUpdateTitleKeepsUntouchedFields(t *testing.T) {
	svc, store, _, _ := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, "The Hobbit", 1937, "A hole in the ground", nil, []string{"fantasy"})
	require.NoError(t, err)

	newName := "The Hobbit, or There and Back Again"
	_, err = svc.Update(ctx, created.ID, TitleParams{Name: &newName})
	require.NoError(t, err)

	stored := store.titles[created.ID]
	assert.Equal(t, newName, stored.Name)
	assert.Equal(t, int32(1937), stored.Year)
	assert.Equal(t, "A hole in the ground", stored.Description)
	assert.Equal(t, []int64{1}, store.genres[created.ID])
}

func TestUpdateUnknownTitle(t *testing.T) {
	svc, _, _, _ := newTestService()
	name := "Ghost"
	_, err := svc.Update(context.Background(), 42, TitleParams{Name: &name})
	assert.ErrorIs(t, err, ErrTitleNotFound)
}

func TestCreateCategoryConflict(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "Books", "books")
	assert.ErrorIs(t, err, ErrSlugAlreadyTaken)

	created, err := svc.CreateCategory(ctx, "Films", "films")
	require.NoError(t, err)
	assert.Equal(t, "films", created.Slug)
}

func TestDeleteGenre(t *testing.T) {
	svc, _, _, genres := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.DeleteGenre(ctx, "fantasy"))
	assert.Empty(t, genres.bySlug)
	assert.ErrorIs(t, svc.DeleteGenre(ctx, "fantasy"), ErrGenreNotFound)
}
