package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/viant/mcpx/logging"
)

// InjectLogger injects logger into every request context; handlers retrieve
// it with LoggerFromContext.
func InjectLogger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		if logger == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(logging.IntoContext(r.Context(), logger)))
		})
	}
}

// LoggerFromContext returns the request-scoped logger or slog.Default().
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}
