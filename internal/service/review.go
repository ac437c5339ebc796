package service

import (
	"context"

	"github.com/Skotchmaster/bookstore/internal/events"
	"github.com/Skotchmaster/bookstore/internal/models"
	"github.com/Skotchmaster/bookstore/internal/repo"
	"github.com/Skotchmaster/bookstore/internal/transport"
	"github.com/google/uuid"
)

type ReviewService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func validRating(r int) bool {
	return r >= 1 && r <= 5
}

func (s *ReviewService) ListForBook(ctx context.Context, bookID uuid.UUID) ([]models.Review, error) {
	return s.Repo.ListReviewsByBook(ctx, bookID)
}

func (s *ReviewService) Create(ctx context.Context, userID, bookID uuid.UUID, req transport.ReviewRequest) (*models.Review, error) {
	if _, err := s.Repo.GetBook(ctx, bookID); err != nil {
		if repo.IsNotFound(err) {
			return nil, fail(ErrNotFound, "Book not found")
		}
		return nil, err
	}

	reviewed, err := s.Repo.HasReviewed(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, fail(ErrConflict, "You have already reviewed this book")
	}

	if !validRating(req.Rating) {
		return nil, fail(ErrValidation, "Rating must be between 1 and 5")
	}

	review := &models.Review{
		UserID:  userID,
		BookID:  bookID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := s.Repo.CreateReview(ctx, review); err != nil {
		// the unique (user, book) index closes the check-then-insert window
		if repo.IsDuplicate(err) {
			return nil, fail(ErrConflict, "You have already reviewed this book")
		}
		return nil, err
	}

	created, err := s.Repo.GetReview(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.TopicReviews, created.ID.String(), events.ReviewCreated, created)
	return created, nil
}

// owned loads a review and checks authorship as two separate steps.
func (s *ReviewService) owned(ctx context.Context, userID, id uuid.UUID, action string) (*models.Review, error) {
	review, err := s.Repo.GetReview(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fail(ErrNotFound, "Review not found")
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, fail(ErrForbidden, "You are not authorized to %s this review", action)
	}
	return review, nil
}

func (s *ReviewService) Update(ctx context.Context, userID, id uuid.UUID, req transport.PatchReviewRequest) (*models.Review, error) {
	if _, err := s.owned(ctx, userID, id, "update"); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Rating != nil {
		if !validRating(*req.Rating) {
			return nil, fail(ErrValidation, "Rating must be between 1 and 5")
		}
		fields["rating"] = *req.Rating
	}
	if req.Comment != nil {
		fields["comment"] = *req.Comment
	}
	if len(fields) > 0 {
		if err := s.Repo.UpdateReview(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	updated, err := s.Repo.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.TopicReviews, id.String(), events.ReviewUpdated, updated)
	return updated, nil
}

func (s *ReviewService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	review, err := s.owned(ctx, userID, id, "delete")
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteReview(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.Events, events.TopicReviews, id.String(), events.ReviewDeleted, map[string]any{
		"id":     review.ID,
		"bookId": review.BookID,
		"userId": review.UserID,
	})
	return nil
}
