package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/bookstore/internal/service"
	"github.com/Skotchmaster/bookstore/internal/transport"
	"github.com/Skotchmaster/bookstore/pkg/logging"
	"github.com/labstack/echo/v4"
)

type ReviewHTTP struct {
	Svc *service.ReviewService
}

func (h *ReviewHTTP) ListForBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.list_for_book")

	bookID, err := pathID(c, "bookId")
	if err != nil {
		return badRequest(l, "list_reviews", "Invalid book id", err)
	}

	reviews, err := h.Svc.ListForBook(ctx, bookID)
	if err != nil {
		return fromService(l, "list_reviews", err, "Error retrieving reviews")
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"count": len(reviews), "reviews": reviews}))
}

func (h *ReviewHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.create")

	userID, err := GetID(c)
	if err != nil {
		return err
	}
	bookID, err := pathID(c, "bookId")
	if err != nil {
		return badRequest(l, "create_review", "Invalid book id", err)
	}

	var req transport.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_review", "Invalid request body", err)
	}

	review, err := h.Svc.Create(ctx, userID, bookID, req)
	if err != nil {
		return fromService(l, "create_review", err, "Error creating review")
	}
	return c.JSON(http.StatusCreated, envelope(map[string]any{"message": "Review created successfully", "review": review}))
}

func (h *ReviewHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.update")

	userID, err := GetID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "update_review", "Invalid review id", err)
	}

	var req transport.PatchReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_review", "Invalid request body", err)
	}

	review, err := h.Svc.Update(ctx, userID, id, req)
	if err != nil {
		return fromService(l, "update_review", err, "Error updating review")
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"message": "Review updated successfully", "review": review}))
}

func (h *ReviewHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.delete")

	userID, err := GetID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "delete_review", "Invalid review id", err)
	}

	if err := h.Svc.Delete(ctx, userID, id); err != nil {
		return fromService(l, "delete_review", err, "Error deleting review")
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"message": "Review deleted successfully"}))
}
