package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindermate/notification-scheduler/internal/app"
	"github.com/mindermate/notification-scheduler/internal/observability/logging"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// handleError maps application errors onto HTTP statuses. Shared by every
// handler so the error body shape stays uniform across the API.
func handleError(c *gin.Context, err error) {
	var validationErr *app.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: validationErr.Message,
			Field:   validationErr.Field,
		})

		return
	}

	if errors.Is(err, app.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "resource not found",
			Field:   "",
		})

		return
	}

	if errors.Is(err, app.ErrNotConfigured) {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "not_configured",
			Message: err.Error(),
			Field:   "",
		})

		return
	}

	// The client only sees the generic body, so the cause is logged here
	// under the request ID the middleware stamped on the context.
	slog.Error("request failed with internal error",
		"request_id", logging.RequestIDFromContext(c.Request.Context()),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "an internal error occurred",
		Field:   "",
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
		Field:   "",
	})
}
