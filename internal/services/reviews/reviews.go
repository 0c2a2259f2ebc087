package reviews

import (
	"context"
	"errors"
	"log/slog"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"
)

type ReviewsStorage interface {
	Get(ctx context.Context, titleID, id int64) (*models.Review, error)
	GetByAuthorAndTitle(ctx context.Context, authorID, titleID int64) (*models.Review, error)
	ListForTitle(ctx context.Context, titleID int64, f filters.Filters) ([]models.Review, int, error)
	Insert(ctx context.Context, titleID, authorID int64, text string, score int) (*models.Review, error)
	Update(ctx context.Context, id int64, text string, score int) (*models.Review, error)
	Delete(ctx context.Context, titleID, id int64) error
}

type CommentsStorage interface {
	Get(ctx context.Context, reviewID, id int64) (*models.Comment, error)
	ListForReview(ctx context.Context, reviewID int64, f filters.Filters) ([]models.Comment, int, error)
	Insert(ctx context.Context, reviewID, authorID int64, text string) (*models.Comment, error)
	Update(ctx context.Context, id int64, text string) (*models.Comment, error)
	Delete(ctx context.Context, reviewID, id int64) error
}

// TitleChecker verifies the parent title referenced by the request path.
type TitleChecker interface {
	Get(ctx context.Context, id int64) (*models.Title, error)
}

type ReviewService struct {
	log      *slog.Logger
	reviews  ReviewsStorage
	comments CommentsStorage
	titles   TitleChecker
}

func New(log *slog.Logger, reviews ReviewsStorage, comments CommentsStorage, titles TitleChecker) *ReviewService {
	return &ReviewService{
		log:      log,
		reviews:  reviews,
		comments: comments,
		titles:   titles,
	}
}

func (s *ReviewService) checkTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titles.Get(ctx, titleID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

func (s *ReviewService) GetReview(ctx context.Context, titleID, id int64) (*models.Review, error) {
	const op = "reviews.ReviewService.GetReview"
	log := s.log.With("op", op, "title_id", titleID, "id", id)
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}
	review, err := s.reviews.Get(ctx, titleID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("review not found")
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, titleID int64, f filters.Filters) ([]models.Review, filters.Metadata, error) {
	const op = "reviews.ReviewService.ListReviews"
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, filters.Metadata{}, err
	}
	reviews, total, err := s.reviews.ListForTitle(ctx, titleID, f)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, filters.Metadata{}, err
	}
	return reviews, filters.CalculateMetadata(total, f.Page, f.PageSize), nil
}

// CreateReview enforces the one-review-per-user-per-title invariant. The
// existence check is a fast path; the database unique constraint is the
// real guarantee, so a lost race still surfaces as ErrReviewAlreadyExists.
func (s *ReviewService) CreateReview(ctx context.Context, titleID int64, author *models.User, text string, score int) (*models.Review, error) {
	const op = "reviews.ReviewService.CreateReview"
	log := s.log.With("op", op, "title_id", titleID, "author", author.Username)
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}
	if _, err := s.reviews.GetByAuthorAndTitle(ctx, author.ID, titleID); err == nil {
		log.Info("review already exists")
		return nil, ErrReviewAlreadyExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		log.Error(err.Error())
		return nil, err
	}
	review, err := s.reviews.Insert(ctx, titleID, author.ID, text, score)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("review already exists")
			return nil, ErrReviewAlreadyExists
		}
		log.Error(err.Error())
		return nil, err
	}
	return review, nil
}

// UpdateReview edits text and score only; author and title are fixed at
// creation, so no uniqueness re-check is needed.
func (s *ReviewService) UpdateReview(ctx context.Context, titleID, id int64, text *string, score *int) (*models.Review, error) {
	const op = "reviews.ReviewService.UpdateReview"
	log := s.log.With("op", op, "title_id", titleID, "id", id)
	review, err := s.GetReview(ctx, titleID, id)
	if err != nil {
		return nil, err
	}
	newText := review.Text
	newScore := review.Score
	if text != nil {
		newText = *text
	}
	if score != nil {
		newScore = *score
	}
	updated, err := s.reviews.Update(ctx, id, newText, newScore)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, titleID, id int64) error {
	const op = "reviews.ReviewService.DeleteReview"
	log := s.log.With("op", op, "title_id", titleID, "id", id)
	if err := s.checkTitle(ctx, titleID); err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, titleID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("review not found")
			return ErrReviewNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
