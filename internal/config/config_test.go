package config

import (
	"testing"
	"time"

	pkgconfig "github.com/Skotchmaster/bookstore/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_SQLite(t *testing.T) {
	cfg := ServiceConfig{Config: pkgconfig.Config{DatabaseDriver: "sqlite", DatabaseURL: ":memory:"}}

	gdb, err := InitDB(t.Context(), cfg)
	require.NoError(t, err)

	for _, table := range []string{"users", "books", "reviews", "carts", "cart_items", "wishlists", "wishlist_items", "orders", "order_items"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}
}

func TestTokenTTL(t *testing.T) {
	cfg := ServiceConfig{Config: pkgconfig.Config{TokenTTLHours: 24}}
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL())
}
