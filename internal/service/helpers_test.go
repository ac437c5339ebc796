package service

import (
	"errors"
	"testing"

	"github.com/Skotchmaster/bookstore/internal/events"
	"github.com/Skotchmaster/bookstore/internal/repo"
	"github.com/Skotchmaster/bookstore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	Repo     *repo.GormRepo
	Events   *events.Recorder
	Auth     *AuthService
	Catalog  *CatalogService
	Reviews  *ReviewService
	Cart     *CartService
	Wishlist *WishlistService
	Orders   *OrderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	r := testutil.NewRepo(t)
	rec := &events.Recorder{}
	return &testEnv{
		Repo:     r,
		Events:   rec,
		Auth:     &AuthService{Repo: r, JWTSecret: []byte("test-jwt-secret"), Events: rec},
		Catalog:  &CatalogService{Repo: r, Events: rec},
		Reviews:  &ReviewService{Repo: r, Events: rec},
		Cart:     &CartService{Repo: r},
		Wishlist: &WishlistService{Repo: r},
		Orders:   &OrderService{Repo: r, Events: rec},
	}
}

func requireKind(t *testing.T, err error, kind error, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kind), "want %v, got %v", kind, err)
	assert.Equal(t, msg, Message(err))
}

func intp(v int) *int { return &v }
