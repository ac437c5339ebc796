package loggingmw

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bookstore/pkg/logging"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := logging.NewWithWriter(&buf, "debug")

	e := echo.New()
	e.Use(RequestLogger(base))
	e.GET("/ok", func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Debug("inside")
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/missing", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "Book not found")
	})

	tests := []struct {
		path   string
		status int
		level  string
	}{
		{path: "/ok", status: http.StatusOK, level: "INFO"},
		{path: "/missing", status: http.StatusNotFound, level: "WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			buf.Reset()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set(echo.HeaderXRequestID, "rid-1")
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)
			require.Equal(t, tt.status, rec.Code)

			lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
			var last map[string]any
			require.NoError(t, json.Unmarshal(lines[len(lines)-1], &last))

			assert.Equal(t, "request completed", last["msg"])
			assert.Equal(t, tt.level, last["level"])
			assert.Equal(t, float64(tt.status), last["status"])
			assert.Equal(t, "rid-1", last["request_id"])
			assert.Equal(t, tt.path, last["route"])
		})
	}
}
