package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-study/internal/api/shared"
	"github.com/phrazzld/scry-study/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context and stores a logger
// tagged with it, so handlers and services log with the same trace_id.
// Apply it early in the middleware chain.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := logger.FromContext(ctx).With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		log.DebugContext(ctx, "request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
