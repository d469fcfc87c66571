package middleware

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"

	"github.com/mindermate/notification-scheduler/internal/observability/logging"
	"github.com/mindermate/notification-scheduler/internal/observability/tracing"
)

type GinConfig struct {
	// SkipPaths are paths that skip observability
	SkipPaths  []string
	TracerName string
}

func Gin(cfg GinConfig) gin.HandlerFunc {
	skipSet := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skipSet[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, skip := skipSet[c.Request.URL.Path]; skip {
			c.Next()

			return
		}

		start := time.Now()

		requestID := logging.ValidateAndExtractRequestID(c.Request.Header.Get("x-request-id"))
		ctx := logging.WithRequestID(c.Request.Context(), requestID)

		ctx = tracing.ExtractFromHTTPRequest(ctx, c.Request)

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		tracer := otel.Tracer(cfg.TracerName)

		ctx, span := tracer.Start(ctx, fmt.Sprintf("%s %s", c.Request.Method, path))
		defer span.End()

		c.Request = c.Request.WithContext(ctx)

		c.Header("x-request-id", requestID)

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		slog.LogAttrs(ctx, slog.LevelInfo, "request completed",
			slog.String("event", "http.request.finish"),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("remote_addr", c.ClientIP()),
			slog.String("request_id", requestID),
			slog.Int("status", status),
			slog.Duration("duration", duration),
		)
	}
}
