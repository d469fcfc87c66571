package logging

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// ValidateAndExtractRequestID returns the incoming request ID when it is a
// well-formed UUID, otherwise a freshly generated one. Callers must never
// echo arbitrary caller-controlled strings into logs.
func ValidateAndExtractRequestID(incoming string) string {
	if incoming != "" {
		if _, err := uuid.Parse(incoming); err == nil {
			return incoming
		}
	}

	return uuid.NewString()
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}

	return ""
}
