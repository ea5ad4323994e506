package loggingmw

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/letteringshop/storefront/pkg/logging"
)

// RequestLogger scopes the base logger to the request (method, route,
// request id) and injects it into the request context, so handlers pick it
// up through logging.FromContext. It also emits one completion line per
// request.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// The request id middleware runs first and writes the
			// generated id to the response header.
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = c.Request().Header.Get(echo.HeaderXRequestID)
			}

			l := base.With(
				"method", c.Request().Method,
				"path", c.Path(),
				"remote_ip", c.RealIP(),
			)
			if rid != "" {
				l = l.With("request_id", rid)
			}

			c.SetRequest(c.Request().WithContext(logging.IntoContext(c.Request().Context(), l)))

			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
				status = c.Response().Status
			}
			dur := time.Since(start)

			switch {
			case err != nil || status >= 500:
				l.Error("http_request", "status", status, "duration_ms", dur.Milliseconds(), "error", errString(err))
			case status >= 400:
				l.Warn("http_request", "status", status, "duration_ms", dur.Milliseconds())
			default:
				l.Info("http_request", "status", status, "duration_ms", dur.Milliseconds(), "bytes", c.Response().Size)
			}
			return nil
		}
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
