package seed_test

import (
	"context"
	"io"
	"testing"

	"github.com/Skotchmaster/bookstore/internal/models"
	"github.com/Skotchmaster/bookstore/internal/seed"
	"github.com/Skotchmaster/bookstore/internal/testutil"
	pkg_hash "github.com/Skotchmaster/bookstore/pkg/hash"
	"github.com/Skotchmaster/bookstore/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_LoadsDemoData(t *testing.T) {
	r := testutil.NewRepo(t)
	ctx := context.Background()
	l := logging.NewWithWriter(io.Discard, "error")

	require.NoError(t, seed.Run(ctx, r, l))

	books, err := r.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 8)

	john, err := r.GetUserByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.True(t, pkg_hash.CheckPassword(john.PasswordHash, seed.DemoPassword))
	assert.Equal(t, models.RoleUser, john.Role)

	admin, err := r.GetUserByEmail(ctx, seed.AdminEmail)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	cart, err := r.GetCartByUser(ctx, john.ID)
	require.NoError(t, err)
	items, err := r.ListCartItems(ctx, cart.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	wl, err := r.GetWishlistWithItems(ctx, john.ID)
	require.NoError(t, err)
	assert.Len(t, wl.Items, 2)

	orders, err := r.ListOrders(ctx, john.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusDelivered, orders[0].Status)
	assert.Len(t, orders[0].Items, 2)
	assert.Equal(t, "31.97", orders[0].TotalAmount.StringFixed(2))

	var reviews int64
	require.NoError(t, r.DB.Model(&models.Review{}).Count(&reviews).Error)
	assert.EqualValues(t, 5, reviews)
}

func TestRun_IsRepeatable(t *testing.T) {
	r := testutil.NewRepo(t)
	ctx := context.Background()
	l := logging.NewWithWriter(io.Discard, "error")

	require.NoError(t, seed.Run(ctx, r, l))
	require.NoError(t, seed.Run(ctx, r, l))

	var users int64
	require.NoError(t, r.DB.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 3, users)
}
