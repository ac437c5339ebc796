package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/bookstore/internal/service"
	"github.com/Skotchmaster/bookstore/internal/transport"
	"github.com/Skotchmaster/bookstore/pkg/logging"
	"github.com/labstack/echo/v4"
)

type BookHTTP struct {
	Svc *service.CatalogService
}

func (h *BookHTTP) ListBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.list_books")

	books, err := h.Svc.ListBooks(ctx)
	if err != nil {
		return fromService(l, "list_books", err, "Error retrieving books")
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"count": len(books), "books": books}))
}

func (h *BookHTTP) NewReleases(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.new_releases")

	books, err := h.Svc.NewReleases(ctx)
	if err != nil {
		return fromService(l, "new_releases", err, "Error retrieving books")
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"count": len(books), "books": books}))
}

func (h *BookHTTP) GetBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.get_book")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "get_book", "Invalid book id", err)
	}

	book, err := h.Svc.GetBook(ctx, id)
	if err != nil {
		return fromService(l, "get_book", err, "Error retrieving book")
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"book": book}))
}

func (h *BookHTTP) SearchBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.search_books")

	books, err := h.Svc.Search(ctx, c.QueryParam("query"))
	if err != nil {
		return fromService(l, "search_books", err, "Error searching books")
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"count": len(books), "books": books}))
}

func (h *BookHTTP) CreateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.create_book")

	var req transport.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_book", "Invalid request body", err)
	}

	book, err := h.Svc.CreateBook(ctx, req)
	if err != nil {
		return fromService(l, "create_book", err, "Error creating book")
	}

	l.Info("create_book_success", "book_id", book.ID)
	return c.JSON(http.StatusCreated, envelope(map[string]any{"message": "Book created successfully", "book": book}))
}

func (h *BookHTTP) UpdateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.update_book")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "update_book", "Invalid book id", err)
	}

	var req transport.PatchBookRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_book", "Invalid request body", err)
	}

	book, err := h.Svc.PatchBook(ctx, id, req)
	if err != nil {
		return fromService(l, "update_book", err, "Error updating book")
	}
	return c.JSON(http.StatusOK, envelope(map[string]any{"message": "Book updated successfully", "book": book}))
}
