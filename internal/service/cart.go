package service

import (
	"context"

	"github.com/Skotchmaster/bookstore/internal/models"
	"github.com/Skotchmaster/bookstore/internal/repo"
	"github.com/Skotchmaster/bookstore/internal/transport"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartService struct {
	Repo *repo.GormRepo
}

func cartLine(item models.CartItem) transport.CartLine {
	line := transport.CartLine{ID: item.ID, Quantity: item.Quantity, Book: item.Book, Subtotal: decimal.Zero}
	if item.Book != nil {
		line.Subtotal = item.Book.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	}
	return line
}

// GetCart returns the user's cart with computed subtotals, creating it on first use.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*transport.CartView, error) {
	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.ListCartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	view := &transport.CartView{ID: cart.ID, Items: make([]transport.CartLine, 0, len(items)), TotalPrice: decimal.Zero}
	for _, item := range items {
		line := cartLine(item)
		view.TotalPrice = view.TotalPrice.Add(line.Subtotal)
		view.Items = append(view.Items, line)
	}
	return view, nil
}

func (s *CartService) AddToCart(ctx context.Context, userID uuid.UUID, req transport.AddToCartRequest) (*transport.CartLine, error) {
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity <= 0 {
		return nil, fail(ErrValidation, "Quantity must be greater than 0")
	}
	if req.BookID == uuid.Nil {
		return nil, fail(ErrValidation, "Book ID is required")
	}

	book, err := s.Repo.GetBook(ctx, req.BookID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fail(ErrNotFound, "Book not found")
		}
		return nil, err
	}

	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	var itemID uuid.UUID
	err = s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		// stock checks run against the locked row only
		locked, err := tx.LockBooks(ctx, []uuid.UUID{book.ID})
		if err != nil {
			return err
		}
		current, ok := locked[book.ID]
		if !ok {
			return fail(ErrNotFound, "Book not found")
		}
		if quantity > current.Stock {
			return fail(ErrInsufficientStock, "Not enough stock available")
		}

		existing, err := tx.FindCartItemByBook(ctx, cart.ID, book.ID)
		switch {
		case err == nil:
			if quantity > current.Stock-existing.Quantity {
				return fail(ErrInsufficientStock, "Not enough stock available")
			}
			itemID = existing.ID
			return tx.SetCartItemQuantity(ctx, existing.ID, existing.Quantity+quantity)
		case repo.IsNotFound(err):
			item := &models.CartItem{CartID: cart.ID, BookID: book.ID, Quantity: quantity}
			if err := tx.CreateCartItem(ctx, item); err != nil {
				return err
			}
			itemID = item.ID
			return nil
		default:
			return err
		}
	})
	if err != nil {
		if repo.IsDuplicate(err) {
			return nil, fail(ErrConflict, "Book is already being added to cart")
		}
		return nil, err
	}

	item, err := s.Repo.GetCartItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	line := cartLine(*item)
	return &line, nil
}

// ownedItem resolves an item through the caller's cart so ids from other
// carts are reported as missing.
func (s *CartService) ownedItem(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error) {
	cart, err := s.Repo.GetCartByUser(ctx, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fail(ErrNotFound, "Cart not found")
		}
		return nil, err
	}
	item, err := s.Repo.GetCartItem(ctx, cart.ID, itemID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fail(ErrNotFound, "Item not found in cart")
		}
		return nil, err
	}
	return item, nil
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*transport.CartLine, error) {
	if quantity <= 0 {
		return nil, fail(ErrValidation, "Quantity must be greater than 0")
	}

	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if item.Book == nil || item.Book.Stock < quantity {
		return nil, fail(ErrInsufficientStock, "Not enough stock available")
	}

	if err := s.Repo.SetCartItemQuantity(ctx, item.ID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity

	line := cartLine(*item)
	return &line, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}
	return s.Repo.DeleteCartItem(ctx, item.ID)
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.Repo.GetCartByUser(ctx, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return fail(ErrNotFound, "Cart not found")
		}
		return err
	}
	return s.Repo.ClearCart(ctx, cart.ID)
}
