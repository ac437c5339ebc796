package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus(t *testing.T) {
	tests := []struct {
		status      OrderStatus
		valid       bool
		cancellable bool
	}{
		{OrderStatusPending, true, true},
		{OrderStatusProcessing, true, true},
		{OrderStatusShipped, true, false},
		{OrderStatusDelivered, true, false},
		{OrderStatusCancelled, true, false},
		{"pending", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.Valid())
			assert.Equal(t, tt.cancellable, tt.status.Cancellable())
		})
	}
}

func TestBeforeCreate_Defaults(t *testing.T) {
	u := &User{}
	require.NoError(t, u.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, RoleUser, u.Role)

	id := uuid.New()
	o := &Order{ID: id}
	require.NoError(t, o.BeforeCreate(nil))
	assert.Equal(t, id, o.ID)
	assert.Equal(t, OrderStatusPending, o.Status)
}

func TestUserJSON_HidesPassword(t *testing.T) {
	raw, err := json.Marshal(User{Name: "Ann", Email: "ann@example.com", PasswordHash: "secret-hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-hash")
	assert.Contains(t, string(raw), `"email":"ann@example.com"`)
}

func TestBookJSON_PriceIsNumber(t *testing.T) {
	raw, err := json.Marshal(Book{Title: "Dune", Price: decimal.RequireFromString("12.50")})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price":12.5`)
}
