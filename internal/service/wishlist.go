package service

import (
	"context"

	"github.com/Skotchmaster/bookstore/internal/models"
	"github.com/Skotchmaster/bookstore/internal/repo"
	"github.com/Skotchmaster/bookstore/internal/transport"
	"github.com/google/uuid"
)

type WishlistService struct {
	Repo *repo.GormRepo
}

// Get returns the wishlist without creating it; registration is what creates one.
func (s *WishlistService) Get(ctx context.Context, userID uuid.UUID) (*transport.WishlistView, error) {
	wl, err := s.Repo.GetWishlistWithItems(ctx, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fail(ErrNotFound, "Wishlist not found. You can create a wishlist by adding books.")
		}
		return nil, err
	}

	view := &transport.WishlistView{ID: wl.ID, Items: make([]transport.WishlistLine, 0, len(wl.Items))}
	for _, item := range wl.Items {
		view.Items = append(view.Items, transport.WishlistLine{ID: item.ID, Book: item.Book})
	}
	return view, nil
}

func (s *WishlistService) Add(ctx context.Context, userID, bookID uuid.UUID) (*transport.WishlistLine, error) {
	if bookID == uuid.Nil {
		return nil, fail(ErrValidation, "Book ID is required")
	}

	book, err := s.Repo.GetBook(ctx, bookID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fail(ErrNotFound, "Book not found")
		}
		return nil, err
	}

	wl, err := s.Repo.GetOrCreateWishlist(ctx, userID)
	if err != nil {
		return nil, err
	}

	exists, err := s.Repo.WishlistHasBook(ctx, wl.ID, book.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fail(ErrConflict, "Book already in wishlist")
	}

	item := &models.WishlistItem{WishlistID: wl.ID, BookID: book.ID}
	if err := s.Repo.CreateWishlistItem(ctx, item); err != nil {
		if repo.IsDuplicate(err) {
			return nil, fail(ErrConflict, "Book already in wishlist")
		}
		return nil, err
	}
	return &transport.WishlistLine{ID: item.ID, Book: book}, nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	wl, err := s.Repo.GetWishlistByUser(ctx, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return fail(ErrNotFound, "Wishlist not found")
		}
		return err
	}
	if err := s.Repo.DeleteWishlistItem(ctx, wl.ID, itemID); err != nil {
		if repo.IsNotFound(err) {
			return fail(ErrNotFound, "Item not found in wishlist")
		}
		return err
	}
	return nil
}
