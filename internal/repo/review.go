package repo

import (
	"context"

	"github.com/Skotchmaster/bookstore/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func withReviewer(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name") })
}

func (r *GormRepo) ListReviewsByBook(ctx context.Context, bookID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := withReviewer(r.DB.WithContext(ctx)).
		Where("book_id = ?", bookID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormRepo) GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := withReviewer(r.DB.WithContext(ctx)).Where("id = ?", id).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *GormRepo) HasReviewed(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Review{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormRepo) CreateReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Omit("User").Create(review).Error
}

func (r *GormRepo) UpdateReview(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.DB.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Updates(fields).Error
}

func (r *GormRepo) DeleteReview(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Review{}).Error
}
