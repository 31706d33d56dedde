package generation_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/scry-study/internal/platform/logger"
)

// mockCompleter records the prompt it receives and answers with a fixed reply.
type mockCompleter struct {
	CompleteFn func(ctx context.Context, prompt string) (string, error)
	prompts    []string
}

func (m *mockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.CompleteFn(ctx, prompt)
}

func replyWith(text string, err error) *mockCompleter {
	return &mockCompleter{
		CompleteFn: func(ctx context.Context, prompt string) (string, error) {
			return text, err
		},
	}
}

func testLogger(t *testing.T) (*slog.Logger, *logger.TestLogBuffer) {
	t.Helper()
	return logger.NewTestLogger(t)
}
