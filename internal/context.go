package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextUserKey ctxKey = "userID"

// UserIDFromContext returns the authenticated user's id, or "" for an
// anonymous request. The auth middleware stores it alongside the full user;
// the logging middleware reads it to tag response logs without importing the
// auth domain.
func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if userID, ok := ctx.Value(ContextUserKey).(string); ok {
		return userID
	}
	return ""
}

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextUserKey, userID)
}

// WithTimeout bounds a blocking call, defaulting to 5 seconds when the caller
// passes a zero or negative duration.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
