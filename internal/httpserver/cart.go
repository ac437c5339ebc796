package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/bookstore/internal/service"
	"github.com/Skotchmaster/bookstore/internal/transport"
	"github.com/Skotchmaster/bookstore/pkg/logging"
	"github.com/labstack/echo/v4"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	cart, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return fromService(l, "get_cart", err, "Error retrieving cart")
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"cart": cart}))
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_to_cart")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_to_cart", "Invalid request body", err)
	}

	item, err := h.Svc.AddToCart(ctx, userID, req)
	if err != nil {
		return fromService(l, "add_to_cart", err, "Error adding to cart")
	}

	l.Info("add_to_cart_success", "item_id", item.ID, "quantity", item.Quantity)
	return c.JSON(http.StatusCreated, envelope(map[string]any{"message": "Book added to cart", "item": item}))
}

func (h *CartHTTP) UpdateCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_cart_item")

	userID, err := GetID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "update_cart_item", "Invalid item id", err)
	}

	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_cart_item", "Invalid request body", err)
	}

	item, err := h.Svc.UpdateItem(ctx, userID, itemID, req.Quantity)
	if err != nil {
		return fromService(l, "update_cart_item", err, "Error updating cart item")
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"message": "Cart item updated", "item": item}))
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_from_cart")

	userID, err := GetID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "remove_from_cart", "Invalid item id", err)
	}

	if err := h.Svc.RemoveItem(ctx, userID, itemID); err != nil {
		return fromService(l, "remove_from_cart", err, "Error removing from cart")
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"message": "Item removed from cart"}))
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear_cart")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Clear(ctx, userID); err != nil {
		return fromService(l, "clear_cart", err, "Error clearing cart")
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"message": "Cart cleared successfully"}))
}
