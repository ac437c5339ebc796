package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/bookstore/internal/events"
	"github.com/Skotchmaster/bookstore/internal/models"
	"github.com/Skotchmaster/bookstore/internal/repo"
	"github.com/Skotchmaster/bookstore/internal/transport"
	"github.com/Skotchmaster/bookstore/pkg/logging"
	"github.com/google/uuid"
)

const newReleasesLimit = 4

// BookIndex is an external full text index over the catalog.
type BookIndex interface {
	IndexBook(ctx context.Context, b models.Book) error
	SearchIDs(ctx context.Context, query string) ([]uuid.UUID, error)
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Index  BookIndex
	Events events.Publisher
}

func (s *CatalogService) ListBooks(ctx context.Context) ([]models.Book, error) {
	return s.Repo.ListBooks(ctx)
}

func (s *CatalogService) NewReleases(ctx context.Context) ([]models.Book, error) {
	return s.Repo.NewReleases(ctx, newReleasesLimit)
}

func (s *CatalogService) GetBook(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	book, err := s.Repo.GetBookWithReviews(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fail(ErrNotFound, "Book not found")
		}
		return nil, err
	}
	return book, nil
}

// Search matches query case-insensitively against title, author and
// description. The index is used when configured; the database answers
// otherwise or when the index is unreachable.
func (s *CatalogService) Search(ctx context.Context, query string) ([]models.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fail(ErrValidation, "Search query is required")
	}

	if s.Index != nil {
		ids, err := s.Index.SearchIDs(ctx, query)
		if err == nil {
			return s.Repo.BooksByIDs(ctx, ids)
		}
		logging.FromContext(ctx).Warn("search_index_error", "error", err)
	}
	return s.Repo.SearchBooks(ctx, query)
}

func validateBook(b *models.Book) error {
	if strings.TrimSpace(b.Title) == "" || strings.TrimSpace(b.Author) == "" {
		return fail(ErrValidation, "Title and author are required")
	}
	if b.Price.IsNegative() {
		return fail(ErrValidation, "Price cannot be negative")
	}
	if b.Stock < 0 {
		return fail(ErrValidation, "Stock cannot be negative")
	}
	return nil
}

func (s *CatalogService) CreateBook(ctx context.Context, req transport.CreateBookRequest) (*models.Book, error) {
	book := &models.Book{
		Title:       strings.TrimSpace(req.Title),
		Author:      strings.TrimSpace(req.Author),
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Price:       req.Price.Round(2),
		Stock:       req.Stock,
	}
	if err := validateBook(book); err != nil {
		return nil, err
	}

	if err := s.Repo.CreateBook(ctx, book); err != nil {
		return nil, err
	}

	s.syncIndex(ctx, *book)
	publish(ctx, s.Events, events.TopicBooks, book.ID.String(), events.BookCreated, book)
	return book, nil
}

func (s *CatalogService) PatchBook(ctx context.Context, id uuid.UUID, req transport.PatchBookRequest) (*models.Book, error) {
	current, err := s.Repo.GetBook(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fail(ErrNotFound, "Book not found")
		}
		return nil, err
	}

	fields := map[string]any{}
	if req.Title != nil {
		current.Title = strings.TrimSpace(*req.Title)
		fields["title"] = current.Title
	}
	if req.Author != nil {
		current.Author = strings.TrimSpace(*req.Author)
		fields["author"] = current.Author
	}
	if req.Description != nil {
		current.Description = *req.Description
		fields["description"] = current.Description
	}
	if req.Category != nil {
		current.Category = *req.Category
		fields["category"] = current.Category
	}
	if req.ImageURL != nil {
		current.ImageURL = *req.ImageURL
		fields["image_url"] = current.ImageURL
	}
	if req.Price != nil {
		current.Price = req.Price.Round(2)
		fields["price"] = current.Price
	}
	if req.Stock != nil {
		current.Stock = *req.Stock
		fields["stock"] = current.Stock
	}
	if err := validateBook(current); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return current, nil
	}

	book, err := s.Repo.UpdateBook(ctx, id, fields)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fail(ErrNotFound, "Book not found")
		}
		return nil, err
	}

	s.syncIndex(ctx, *book)
	publish(ctx, s.Events, events.TopicBooks, book.ID.String(), events.BookUpdated, book)
	return book, nil
}

func (s *CatalogService) syncIndex(ctx context.Context, b models.Book) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexBook(ctx, b); err != nil {
		logging.FromContext(ctx).Warn("search_index_error", "book_id", b.ID, "error", err)
	}
}
