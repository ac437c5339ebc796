package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/bookstore/internal/service"
	"github.com/Skotchmaster/bookstore/internal/transport"
	"github.com/Skotchmaster/bookstore/pkg/logging"
	"github.com/labstack/echo/v4"
)

type WishlistHTTP struct {
	Svc *service.WishlistService
}

func (h *WishlistHTTP) GetWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.get_wishlist")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	wl, err := h.Svc.Get(ctx, userID)
	if err != nil {
		return fromService(l, "get_wishlist", err, "Error retrieving wishlist")
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"wishlist": wl}))
}

func (h *WishlistHTTP) AddToWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.add_to_wishlist")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	var req transport.AddToWishlistRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_to_wishlist", "Invalid request body", err)
	}

	item, err := h.Svc.Add(ctx, userID, req.BookID)
	if err != nil {
		return fromService(l, "add_to_wishlist", err, "Error adding to wishlist")
	}
	return c.JSON(http.StatusCreated, envelope(map[string]any{"message": "Book added to wishlist", "item": item}))
}

func (h *WishlistHTTP) RemoveFromWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.remove_from_wishlist")

	userID, err := GetID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "remove_from_wishlist", "Invalid item id", err)
	}

	if err := h.Svc.Remove(ctx, userID, itemID); err != nil {
		return fromService(l, "remove_from_wishlist", err, "Error removing from wishlist")
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"message": "Book removed from wishlist"}))
}
