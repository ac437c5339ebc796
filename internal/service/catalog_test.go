package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Skotchmaster/bookstore/internal/events"
	"github.com/Skotchmaster/bookstore/internal/models"
	"github.com/Skotchmaster/bookstore/internal/testutil"
	"github.com/Skotchmaster/bookstore/internal/transport"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	ids     []uuid.UUID
	err     error
	indexed []uuid.UUID
}

func (f *fakeIndex) IndexBook(_ context.Context, b models.Book) error {
	f.indexed = append(f.indexed, b.ID)
	return nil
}

func (f *fakeIndex) SearchIDs(context.Context, string) ([]uuid.UUID, error) {
	return f.ids, f.err
}

func TestCatalogService_Search(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	testutil.Book(t, env.Repo, "The Hobbit", "14.99", 40)
	rings := testutil.Book(t, env.Repo, "The Lord of the Rings", "24.99", 35)
	testutil.Book(t, env.Repo, "1984", "10.99", 75)

	_, err := env.Catalog.Search(ctx, "   ")
	requireKind(t, err, ErrValidation, "Search query is required")

	books, err := env.Catalog.Search(ctx, "the")
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "The Hobbit", books[0].Title)

	env.Catalog.Index = &fakeIndex{ids: []uuid.UUID{rings.ID}}
	books, err = env.Catalog.Search(ctx, "anything")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, rings.ID, books[0].ID)

	env.Catalog.Index = &fakeIndex{err: errors.New("index down")}
	books, err = env.Catalog.Search(ctx, "1984")
	require.NoError(t, err)
	require.Len(t, books, 1)
}

func TestCatalogService_GetBook(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	book := testutil.Book(t, env.Repo, "The Hobbit", "14.99", 40)

	_, err := env.Catalog.GetBook(ctx, uuid.New())
	requireKind(t, err, ErrNotFound, "Book not found")

	got, err := env.Catalog.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Hobbit", got.Title)
	assert.Empty(t, got.Reviews)
}

func TestCatalogService_CreateAndPatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	idx := &fakeIndex{}
	env.Catalog.Index = idx

	_, err := env.Catalog.CreateBook(ctx, transport.CreateBookRequest{Title: "Untitled"})
	requireKind(t, err, ErrValidation, "Title and author are required")

	_, err = env.Catalog.CreateBook(ctx, transport.CreateBookRequest{
		Title: "Dune", Author: "Frank Herbert", Price: decimal.RequireFromString("-1"),
	})
	requireKind(t, err, ErrValidation, "Price cannot be negative")

	book, err := env.Catalog.CreateBook(ctx, transport.CreateBookRequest{
		Title: "Dune", Author: "Frank Herbert", Price: decimal.RequireFromString("18.50"), Stock: 12,
	})
	require.NoError(t, err)

	stock := -3
	_, err = env.Catalog.PatchBook(ctx, book.ID, transport.PatchBookRequest{Stock: &stock})
	requireKind(t, err, ErrValidation, "Stock cannot be negative")

	stock = 20
	patched, err := env.Catalog.PatchBook(ctx, book.ID, transport.PatchBookRequest{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 20, patched.Stock)
	assert.Equal(t, "Dune", patched.Title)

	_, err = env.Catalog.PatchBook(ctx, uuid.New(), transport.PatchBookRequest{Stock: &stock})
	requireKind(t, err, ErrNotFound, "Book not found")

	assert.Equal(t, []uuid.UUID{book.ID, book.ID}, idx.indexed)
	assert.Equal(t, []string{events.BookCreated, events.BookUpdated}, env.Events.Types())
}
