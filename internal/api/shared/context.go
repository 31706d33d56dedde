package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is the type of keys this package stores in a request context.
type ContextKey string

const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a trace ID (32 hex characters)
	TraceIDLength = 16
)

// SetTraceID adds a fresh trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, newTraceID(rand.Reader))
}

// GetTraceID retrieves the trace ID from the context, or "" if there is none.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// newTraceID reads TraceIDLength bytes from r and hex-encodes them. If r
// fails it falls back to a random UUID with the dashes removed, which has
// the same length.
func newTraceID(r io.Reader) string {
	b := make([]byte, TraceIDLength)
	if _, err := io.ReadFull(r, b); err != nil {
		slog.Error("failed to generate random trace ID",
			"error", err,
			"fallback", "uuid")
		return strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return hex.EncodeToString(b)
}
