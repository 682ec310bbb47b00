package apperr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// GlobalErrorHandler maps application errors to HTTP responses. Client
// payloads carry a short message only; full detail stays in the log.
func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ie *InvalidInputError
		if errors.As(err, &ie) {
			_ = c.JSON(http.StatusBadRequest, map[string]string{"error": ie.Message})
			return
		}

		if errors.Is(err, ErrNotFound) {
			_ = c.JSON(http.StatusNotFound, map[string]string{"error": "not found or expired"})
			return
		}

		var ce *CorruptError
		if errors.As(err, &ce) {
			slog.Error("corrupt share record", "key", ce.Key, "error", ce.Err)
			_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "stored record could not be read"})
			return
		}

		var ue *UpstreamError
		if errors.As(err, &ue) {
			slog.Error("upstream generation failure", "error", err)
			_ = c.JSON(http.StatusBadGateway, map[string]string{"error": ue.Message})
			return
		}

		var se *StoreError
		if errors.As(err, &se) {
			slog.Error("store unavailable", "error", se.Err)
			_ = c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "temporarily unavailable"})
			return
		}

		// Cancellation is a no-op from the user's perspective; the
		// client that cancelled is no longer listening anyway.
		if errors.Is(err, context.Canceled) {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, map[string]string{"error": fmt.Sprintf("%v", he.Message)})
			return
		}

		slog.Error("unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
