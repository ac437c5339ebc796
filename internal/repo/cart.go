package repo

import (
	"context"

	"github.com/Skotchmaster/bookstore/internal/models"
	"github.com/google/uuid"
)

func (r *GormRepo) GetCartByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetOrCreateCart returns the user's cart, creating an empty one on first use.
func (r *GormRepo) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := r.GetCartByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}

	cart = &models.Cart{UserID: userID}
	if err := r.DB.WithContext(ctx).Omit("Items").Create(cart).Error; err != nil {
		// lost a race with a concurrent first request
		if IsDuplicate(err) {
			return r.GetCartByUser(ctx, userID)
		}
		return nil, err
	}
	return cart, nil
}

func (r *GormRepo) CreateCart(ctx context.Context, cart *models.Cart) error {
	return r.DB.WithContext(ctx).Omit("Items").Create(cart).Error
}

func (r *GormRepo) ListCartItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.DB.WithContext(ctx).
		Preload("Book").
		Where("cart_id = ?", cartID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) FindCartItemByBook(ctx context.Context, cartID, bookID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.forUpdate(r.DB.WithContext(ctx)).
		Where("cart_id = ? AND book_id = ?", cartID, bookID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetCartItem loads an item only if it belongs to the given cart.
func (r *GormRepo) GetCartItem(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).
		Preload("Book").
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) CreateCartItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Omit("Book").Create(item).Error
}

func (r *GormRepo) SetCartItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return r.DB.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

func (r *GormRepo) DeleteCartItem(ctx context.Context, itemID uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("id = ?", itemID).Delete(&models.CartItem{}).Error
}

func (r *GormRepo) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// ClearCartByUser empties the user's cart if one exists.
func (r *GormRepo) ClearCartByUser(ctx context.Context, userID uuid.UUID) error {
	sub := r.DB.Model(&models.Cart{}).Select("id").Where("user_id = ?", userID)
	return r.DB.WithContext(ctx).Where("cart_id IN (?)", sub).Delete(&models.CartItem{}).Error
}
