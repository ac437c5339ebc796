package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/Skotchmaster/bookstore/internal/events"
	"github.com/Skotchmaster/bookstore/internal/models"
	"github.com/Skotchmaster/bookstore/internal/repo"
	"github.com/Skotchmaster/bookstore/internal/transport"
	"github.com/Skotchmaster/bookstore/pkg/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *OrderService) List(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID)
}

func (s *OrderService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Order, error) {
	order, err := s.Repo.GetUserOrder(ctx, id, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fail(ErrNotFound, "Order not found")
		}
		return nil, err
	}
	return order, nil
}

func stockError(b models.Book, requested int) error {
	return fail(ErrInsufficientStock, "Not enough stock for book \"%s\". Available: %d, Requested: %d", b.Title, b.Stock, requested)
}

// Create places an order. Stock validation, the order rows, the stock
// decrements and the optional cart clear commit or roll back together.
func (s *OrderService) Create(ctx context.Context, userID uuid.UUID, req transport.CreateOrderRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.create")

	if len(req.Items) == 0 {
		return nil, fail(ErrValidation, "Order must contain at least one item")
	}

	// requested quantities per book; a book may appear on several lines
	requested := make(map[uuid.UUID]int, len(req.Items))
	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, it := range req.Items {
		if it.BookID == uuid.Nil {
			return nil, fail(ErrValidation, "Book ID is required for every item")
		}
		if it.Quantity <= 0 {
			return nil, fail(ErrValidation, "Quantity must be greater than 0")
		}
		if _, seen := requested[it.BookID]; !seen {
			ids = append(ids, it.BookID)
		}
		if requested[it.BookID] > math.MaxInt-it.Quantity {
			return nil, fail(ErrValidation, "Quantity is too large")
		}
		requested[it.BookID] += it.Quantity
	}

	order := &models.Order{
		UserID:          userID,
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.OrderStatusPending,
		TotalAmount:     decimal.Zero,
	}

	err := s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		books, err := tx.LockBooks(ctx, ids)
		if err != nil {
			return err
		}

		for _, it := range req.Items {
			book, ok := books[it.BookID]
			if !ok {
				return fail(ErrNotFound, "Book with ID %s not found", it.BookID)
			}
			if it.Quantity > book.Stock || book.Stock < requested[it.BookID] {
				return stockError(book, requested[it.BookID])
			}
		}

		order.Items = make([]models.OrderItem, 0, len(req.Items))
		for _, it := range req.Items {
			book := books[it.BookID]
			order.Items = append(order.Items, models.OrderItem{
				BookID:   book.ID,
				Quantity: it.Quantity,
				Price:    book.Price,
			})
			order.TotalAmount = order.TotalAmount.Add(book.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}

		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		for _, id := range ids {
			if err := tx.DecrementStock(ctx, id, requested[id]); err != nil {
				if errors.Is(err, repo.ErrNotEnoughStock) {
					return stockError(books[id], requested[id])
				}
				return err
			}
		}

		if req.ClearCart {
			return tx.ClearCartByUser(ctx, userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.Repo.GetOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	l.Info("order_created", "order_id", created.ID, "total", created.TotalAmount.String())
	publish(ctx, s.Events, events.TopicOrders, created.ID.String(), events.OrderCreated, created)
	return created, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	st := models.OrderStatus(status)
	if !st.Valid() {
		names := make([]string, 0, len(models.OrderStatuses))
		for _, v := range models.OrderStatuses {
			names = append(names, string(v))
		}
		return nil, fail(ErrValidation, "Invalid status. Must be one of: %s", strings.Join(names, ", "))
	}

	if err := s.Repo.SetOrderStatus(ctx, id, st); err != nil {
		if repo.IsNotFound(err) {
			return nil, fail(ErrNotFound, "Order not found")
		}
		return nil, err
	}

	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.TopicOrders, id.String(), events.OrderStatusUpdated, map[string]any{
		"id":     order.ID,
		"status": order.Status,
	})
	return order, nil
}

// Cancel moves a PENDING or PROCESSING order to CANCELLED and returns each
// line's quantity to the book's current stock.
func (s *OrderService) Cancel(ctx context.Context, userID, id uuid.UUID) (*models.Order, error) {
	err := s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		order, err := tx.LockUserOrder(ctx, id, userID)
		if err != nil {
			if repo.IsNotFound(err) {
				return fail(ErrNotFound, "Order not found")
			}
			return err
		}
		if !order.Status.Cancellable() {
			return fail(ErrConflict, "Cannot cancel order with status %s", order.Status)
		}

		if err := tx.SetOrderStatus(ctx, order.ID, models.OrderStatusCancelled); err != nil {
			return err
		}
		for _, item := range order.Items {
			if err := tx.IncrementStock(ctx, item.BookID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.TopicOrders, id.String(), events.OrderCancelled, map[string]any{
		"id":     order.ID,
		"status": order.Status,
	})
	return order, nil
}
