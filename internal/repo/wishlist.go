package repo

import (
	"context"

	"github.com/Skotchmaster/bookstore/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *GormRepo) GetWishlistByUser(ctx context.Context, userID uuid.UUID) (*models.Wishlist, error) {
	var wl models.Wishlist
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&wl).Error; err != nil {
		return nil, err
	}
	return &wl, nil
}

func (r *GormRepo) GetWishlistWithItems(ctx context.Context, userID uuid.UUID) (*models.Wishlist, error) {
	var wl models.Wishlist
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Book").
		Where("user_id = ?", userID).
		First(&wl).Error
	if err != nil {
		return nil, err
	}
	return &wl, nil
}

func (r *GormRepo) CreateWishlist(ctx context.Context, wl *models.Wishlist) error {
	return r.DB.WithContext(ctx).Omit("Items").Create(wl).Error
}

// GetOrCreateWishlist returns the user's wishlist, creating an empty one on first use.
func (r *GormRepo) GetOrCreateWishlist(ctx context.Context, userID uuid.UUID) (*models.Wishlist, error) {
	wl, err := r.GetWishlistByUser(ctx, userID)
	if err == nil {
		return wl, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}

	wl = &models.Wishlist{UserID: userID}
	if err := r.CreateWishlist(ctx, wl); err != nil {
		if IsDuplicate(err) {
			return r.GetWishlistByUser(ctx, userID)
		}
		return nil, err
	}
	return wl, nil
}

func (r *GormRepo) WishlistHasBook(ctx context.Context, wishlistID, bookID uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.WishlistItem{}).
		Where("wishlist_id = ? AND book_id = ?", wishlistID, bookID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormRepo) CreateWishlistItem(ctx context.Context, item *models.WishlistItem) error {
	return r.DB.WithContext(ctx).Omit("Book").Create(item).Error
}

// DeleteWishlistItem removes an item only if it belongs to the given wishlist.
func (r *GormRepo) DeleteWishlistItem(ctx context.Context, wishlistID, itemID uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND wishlist_id = ?", itemID, wishlistID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
