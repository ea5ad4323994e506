package loggingmw_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	loggingmw "github.com/letteringshop/storefront/internal/middleware/logging"
	"github.com/letteringshop/storefront/pkg/logging"
)

func newLoggedEcho(buf *bytes.Buffer) *echo.Echo {
	base := slog.New(slog.NewJSONHandler(buf, nil))

	e := echo.New()
	e.Use(middleware.RequestID())
	e.Use(loggingmw.RequestLogger(base))
	return e
}

func TestRequestLogger_InjectsScopedLoggerIntoContext(t *testing.T) {
	var buf bytes.Buffer
	e := newLoggedEcho(&buf)

	e.GET("/ping", func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Info("handler_hit")
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	out := buf.String()
	assert.Contains(t, out, `"msg":"handler_hit"`)
	assert.Contains(t, out, `"method":"GET"`)
	assert.Contains(t, out, `"path":"/ping"`)
	assert.Contains(t, out, `"request_id"`)
}

func TestRequestLogger_PropagatesClientRequestID(t *testing.T) {
	var buf bytes.Buffer
	e := newLoggedEcho(&buf)

	e.GET("/ping", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "rid-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Contains(t, buf.String(), `"request_id":"rid-123"`)
}

func TestRequestLogger_EmitsCompletionLinePerStatus(t *testing.T) {
	var buf bytes.Buffer
	e := newLoggedEcho(&buf)

	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/missing", func(c echo.Context) error { return c.NoContent(http.StatusNotFound) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Contains(t, buf.String(), `"level":"INFO","msg":"http_request"`)

	buf.Reset()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Contains(t, buf.String(), `"level":"WARN","msg":"http_request"`)
	assert.Contains(t, buf.String(), `"status":404`)
}
