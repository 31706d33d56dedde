package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx), "Expected empty trace ID in original context")

	ctxWithTrace := SetTraceID(ctx)
	traceID := GetTraceID(ctxWithTrace)
	assert.Len(t, traceID, 32, "Expected trace ID length to be 32 hex characters (16 bytes)")

	assert.Empty(t, GetTraceID(ctx), "Expected original context to remain unchanged")
}

func TestGetTraceIDWithInvalidContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx), "Expected empty trace ID when context has invalid type")
}

func TestNewTraceIDUniqueness(t *testing.T) {
	const iterations = 1000
	seen := make(map[string]bool, iterations)

	for i := 0; i < iterations; i++ {
		id := newTraceID(rand.Reader)
		_, err := hex.DecodeString(id)
		require.NoError(t, err, "Expected valid hex string")
		assert.False(t, seen[id], "Expected all trace IDs to be unique")
		seen[id] = true
	}
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("simulated rand failure")
}

func TestNewTraceIDFallback(t *testing.T) {
	tests := []struct {
		name   string
		reader io.Reader
	}{
		{"read error", failingReader{}},
		{"short read", io.LimitReader(rand.Reader, TraceIDLength/2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := newTraceID(tt.reader)
			assert.Len(t, id, 32)
			_, err := hex.DecodeString(id)
			assert.NoError(t, err, "Expected valid hex string")
		})
	}
}
