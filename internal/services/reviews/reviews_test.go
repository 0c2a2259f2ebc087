package reviews

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

type fakeReviewsStorage struct {
	reviews map[int64]*models.Review
	nextID  int64
	// simulates a concurrent insert landing after the fast-path
	// lookup: the lookup misses, the constraint still fires
	hideFromLookup bool
}

func newFakeReviewsStorage() *fakeReviewsStorage {
	return &fakeReviewsStorage{reviews: make(map[int64]*models.Review), nextID: 1}
}

func (s *fakeReviewsStorage) Get(_ context.Context, titleID, id int64) (*models.Review, error) {
	if r, ok := s.reviews[id]; ok && r.TitleID == titleID {
		copied := *r
		return &copied, nil
	}
	return nil, storage.ErrNotFound
}

func (s *fakeReviewsStorage) GetByAuthorAndTitle(_ context.Context, authorID, titleID int64) (*models.Review, error) {
	if s.hideFromLookup {
		return nil, storage.ErrNotFound
	}
	for _, r := range s.reviews {
		if r.AuthorID == authorID && r.TitleID == titleID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *fakeReviewsStorage) ListForTitle(_ context.Context, titleID int64, _ filters.Filters) ([]models.Review, int, error) {
	out := []models.Review{}
	for _, r := range s.reviews {
		if r.TitleID == titleID {
			out = append(out, *r)
		}
	}
	return out, len(out), nil
}

func (s *fakeReviewsStorage) Insert(_ context.Context, titleID, authorID int64, text string, score int) (*models.Review, error) {
	// mirrors the unique constraint on (author_id, title_id)
	for _, r := range s.reviews {
		if r.AuthorID == authorID && r.TitleID == titleID {
			return nil, &storage.ConflictError{Field: "review"}
		}
	}
	r := &models.Review{
		ID: s.nextID, TitleID: titleID, AuthorID: authorID,
		Text: text, Score: score, PubDate: time.Now(),
	}
	s.reviews[r.ID] = r
	s.nextID++
	return r, nil
}

func (s *fakeReviewsStorage) Update(_ context.Context, id int64, text string, score int) (*models.Review, error) {
	r, ok := s.reviews[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	r.Text = text
	r.Score = score
	copied := *r
	return &copied, nil
}

func (s *fakeReviewsStorage) Delete(_ context.Context, titleID, id int64) error {
	if r, ok := s.reviews[id]; ok && r.TitleID == titleID {
		delete(s.reviews, id)
		return nil
	}
	return storage.ErrNotFound
}

type fakeCommentsStorage struct {
	comments map[int64]*models.Comment
	nextID   int64
}

func newFakeCommentsStorage() *fakeCommentsStorage {
	return &fakeCommentsStorage{comments: make(map[int64]*models.Comment), nextID: 1}
}

func (s *fakeCommentsStorage) Get(_ context.Context, reviewID, id int64) (*models.Comment, error) {
	if c, ok := s.comments[id]; ok && c.ReviewID == reviewID {
		copied := *c
		return &copied, nil
	}
	return nil, storage.ErrNotFound
}

func (s *fakeCommentsStorage) ListForReview(_ context.Context, reviewID int64, _ filters.Filters) ([]models.Comment, int, error) {
	out := []models.Comment{}
	for _, c := range s.comments {
		if c.ReviewID == reviewID {
			out = append(out, *c)
		}
	}
	return out, len(out), nil
}

func (s *fakeCommentsStorage) Insert(_ context.Context, reviewID, authorID int64, text string) (*models.Comment, error) {
	c := &models.Comment{ID: s.nextID, ReviewID: reviewID, AuthorID: authorID, Text: text, PubDate: time.Now()}
	s.comments[c.ID] = c
	s.nextID++
	return c, nil
}

func (s *fakeCommentsStorage) Update(_ context.Context, id int64, text string) (*models.Comment, error) {
	c, ok := s.comments[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	c.Text = text
	copied := *c
	return &copied, nil
}

func (s *fakeCommentsStorage) Delete(_ context.Context, reviewID, id int64) error {
	if c, ok := s.comments[id]; ok && c.ReviewID == reviewID {
		delete(s.comments, id)
		return nil
	}
	return storage.ErrNotFound
}

type fakeTitleChecker struct {
	titles map[int64]*models.Title
}

func (s *fakeTitleChecker) Get(_ context.Context, id int64) (*models.Title, error) {
	if t, ok := s.titles[id]; ok {
		return t, nil
	}
	return nil, storage.ErrNotFound
}

func newTestService() (*ReviewService, *fakeReviewsStorage) {
	reviewsStore := newFakeReviewsStorage()
	svc := New(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		reviewsStore,
		newFakeCommentsStorage(),
		&fakeTitleChecker{titles: map[int64]*models.Title{1: {ID: 1, Name: "Dune", Year: 2021}}},
	)
	return svc, reviewsStore
}

var author = &models.User{ID: 10, Username: "alice", Role: models.RoleUser}

func TestCreateReview(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, 1, author, "great", 8)
	require.NoError(t, err)
	assert.Equal(t, 8, review.Score)

	t.Run("second review for same title conflicts", func(t *testing.T) {
		_, err := svc.CreateReview(ctx, 1, author, "again", 5)
		assert.ErrorIs(t, err, ErrReviewAlreadyExists)
	})
	t.Run("unknown title", func(t *testing.T) {
		_, err := svc.CreateReview(ctx, 99, author, "text", 5)
		assert.ErrorIs(t, err, ErrTitleNotFound)
	})
}

func TestCreateReviewLosesConstraintRace(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	_, err := store.Insert(ctx, 1, author.ID, "raced", 7)
	require.NoError(t, err)
	store.hideFromLookup = true
	_, err = svc.CreateReview(ctx, 1, author, "mine", 8)
	assert.ErrorIs(t, err, ErrReviewAlreadyExists)
}

func TestUpdateReviewKeepsUnsetFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	review, err := svc.CreateReview(ctx, 1, author, "great", 8)
	require.NoError(t, err)

	newScore := 6
	updated, err := svc.UpdateReview(ctx, 1, review.ID, nil, &newScore)
	require.NoError(t, err)
	assert.Equal(t, "great", updated.Text)
	assert.Equal(t, 6, updated.Score)
}

func TestComments(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	review, err := svc.CreateReview(ctx, 1, author, "great", 8)
	require.NoError(t, err)

	comment, err := svc.CreateComment(ctx, 1, review.ID, author, "agreed")
	require.NoError(t, err)

	t.Run("unknown review", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, 1, 99, author, "nope")
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})
	t.Run("update", func(t *testing.T) {
		updated, err := svc.UpdateComment(ctx, 1, review.ID, comment.ID, "changed")
		require.NoError(t, err)
		assert.Equal(t, "changed", updated.Text)
	})
	t.Run("delete then get", func(t *testing.T) {
		require.NoError(t, svc.DeleteComment(ctx, 1, review.ID, comment.ID))
		_, err := svc.GetComment(ctx, 1, review.ID, comment.ID)
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})
}
