package reviews

import (
	"context"
	"errors"

	"reviewhub/proj/internal/domain/filters"
	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"
)

// checkReview verifies the title/review pair from the request path.
func (s *ReviewService) checkReview(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.GetReview(ctx, titleID, reviewID); err != nil {
		return err
	}
	return nil
}

func (s *ReviewService) GetComment(ctx context.Context, titleID, reviewID, id int64) (*models.Comment, error) {
	const op = "reviews.ReviewService.GetComment"
	log := s.log.With("op", op, "review_id", reviewID, "id", id)
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.comments.Get(ctx, reviewID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("comment not found")
			return nil, ErrCommentNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return comment, nil
}

func (s *ReviewService) ListComments(ctx context.Context, titleID, reviewID int64, f filters.Filters) ([]models.Comment, filters.Metadata, error) {
	const op = "reviews.ReviewService.ListComments"
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, filters.Metadata{}, err
	}
	comments, total, err := s.comments.ListForReview(ctx, reviewID, f)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, filters.Metadata{}, err
	}
	return comments, filters.CalculateMetadata(total, f.Page, f.PageSize), nil
}

func (s *ReviewService) CreateComment(ctx context.Context, titleID, reviewID int64, author *models.User, text string) (*models.Comment, error) {
	const op = "reviews.ReviewService.CreateComment"
	log := s.log.With("op", op, "review_id", reviewID, "author", author.Username)
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.comments.Insert(ctx, reviewID, author.ID, text)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return comment, nil
}

func (s *ReviewService) UpdateComment(ctx context.Context, titleID, reviewID, id int64, text string) (*models.Comment, error) {
	const op = "reviews.ReviewService.UpdateComment"
	log := s.log.With("op", op, "review_id", reviewID, "id", id)
	if _, err := s.GetComment(ctx, titleID, reviewID, id); err != nil {
		return nil, err
	}
	comment, err := s.comments.Update(ctx, id, text)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return comment, nil
}

func (s *ReviewService) DeleteComment(ctx context.Context, titleID, reviewID, id int64) error {
	const op = "reviews.ReviewService.DeleteComment"
	log := s.log.With("op", op, "review_id", reviewID, "id", id)
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, reviewID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("comment not found")
			return ErrCommentNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
