package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Skotchmaster/bookstore/pkg/tokens"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-jwt-secret")

func run(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (echo.Context, error, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return c, err, called
}

func issue(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	tok, _, err := tokens.Issue(secret, "3f1c6d1e-1111-4a55-9a2d-7e0e7c1d0a01", "john@example.com", role, ttl)
	require.NoError(t, err)
	return tok
}

func assertHTTPError(t *testing.T, err error, code int, msg string) {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, code, he.Code)
	assert.Equal(t, msg, he.Message)
}

func TestRequireAuth(t *testing.T) {
	m := NewBearerAuth(secret)

	tests := []struct {
		name   string
		header string
		code   int
		msg    string
	}{
		{name: "missing header", header: "", code: http.StatusUnauthorized, msg: "No token, authorization denied"},
		{name: "wrong scheme", header: "Basic abc", code: http.StatusUnauthorized, msg: "No token, authorization denied"},
		{name: "garbage token", header: "Bearer nope", code: http.StatusUnauthorized, msg: "Token is not valid"},
		{name: "expired token", header: "Bearer " + issue(t, "user", -time.Minute), code: http.StatusUnauthorized, msg: "Token is not valid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err, called := run(t, m.RequireAuth, tt.header)
			assert.False(t, called)
			assertHTTPError(t, err, tt.code, tt.msg)
		})
	}

	t.Run("valid token sets principal", func(t *testing.T) {
		c, err, called := run(t, m.RequireAuth, "bearer "+issue(t, "user", time.Hour))
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, "3f1c6d1e-1111-4a55-9a2d-7e0e7c1d0a01", c.Get(CtxUserID))
		assert.Equal(t, "john@example.com", c.Get(CtxEmail))
		assert.Equal(t, "user", c.Get(CtxRole))
	})
}

func TestRequireAdmin(t *testing.T) {
	m := NewBearerAuth(secret)

	_, err, called := run(t, m.RequireAdmin, "Bearer "+issue(t, "user", time.Hour))
	assert.False(t, called)
	assertHTTPError(t, err, http.StatusForbidden, "Admin access required")

	_, err, called = run(t, m.RequireAdmin, "Bearer "+issue(t, RoleAdmin, time.Hour))
	require.NoError(t, err)
	assert.True(t, called)
}
