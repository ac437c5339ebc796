package tokens

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-jwt-secret")

func TestIssue_SetsExpectedClaims(t *testing.T) {
	t.Parallel()

	id := uuid.NewString()
	token, exp, err := Issue(secret, id, "john@example.com", "user", 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Parse(token, secret)
	require.NoError(t, err)

	assert.Equal(t, id, claims.ID)
	assert.Equal(t, id, claims.Subject)
	assert.Equal(t, "john@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, 5*time.Second)
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	expired, _, err := Issue(secret, uuid.NewString(), "a@b.c", "user", -time.Minute)
	require.NoError(t, err)

	otherSecret, _, err := Issue([]byte("other"), uuid.NewString(), "a@b.c", "user", time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, AccessClaims{ID: "x"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "expired", token: expired},
		{name: "wrong secret", token: otherSecret},
		{name: "alg none", token: none},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims, err := Parse(tt.token, secret)
			require.Error(t, err)
			assert.Nil(t, claims)
		})
	}

	_, err = Parse(expired, secret)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}
