// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/Skotchmaster/bookstore/internal/models"
	"github.com/Skotchmaster/bookstore/internal/repo"
	"github.com/Skotchmaster/bookstore/pkg/db"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory sqlite database that lives as long as t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	ctx := context.Background()
	gdb, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	require.NoError(t, gdb.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, repo.Migrate(ctx, gdb))
	return gdb
}

func NewRepo(t testing.TB) *repo.GormRepo {
	t.Helper()
	return repo.New(NewDB(t))
}

func Book(t testing.TB, r *repo.GormRepo, title, price string, stock int) *models.Book {
	t.Helper()

	b := &models.Book{
		Title:       title,
		Author:      "Author of " + title,
		Description: "About " + title,
		Price:       decimal.RequireFromString(price),
		Category:    "Fiction",
		Stock:       stock,
	}
	require.NoError(t, r.CreateBook(context.Background(), b))
	return b
}

func User(t testing.TB, r *repo.GormRepo, name, email string) *models.User {
	t.Helper()

	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "$2a$10$not.a.real.hash.just.a.fixture.value.for.tests.only",
	}
	require.NoError(t, r.CreateUser(context.Background(), u))
	return u
}

func Stock(t testing.TB, r *repo.GormRepo, bookID uuid.UUID) int {
	t.Helper()

	b, err := r.GetBook(context.Background(), bookID)
	require.NoError(t, err)
	return b.Stock
}

func RandomID() string {
	return uuid.NewString()
}
