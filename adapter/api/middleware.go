package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/taskflow/taskflow/pkg/observability"
)

type contextKey string

const ownerIDCtxKey contextKey = "owner_id"

// withOwnerID stores the authenticated user's id in the context.
func withOwnerID(ctx context.Context, ownerID uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerIDCtxKey, ownerID)
}

// ownerIDFromContext extracts the authenticated user's id.
func ownerIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ownerIDCtxKey).(uuid.UUID)
	return id, ok
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogging tags every request with an id and logs its outcome.
func requestLogging(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ctx := observability.WithRequestID(r.Context(), r.Header.Get("X-Request-ID"))
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r.WithContext(ctx))

		logger.InfoContext(ctx, "request handled",
			"method", r.Method,
			"path", r.URL.Path,
			observability.StatusKey, recorder.status,
			observability.DurationKey, time.Since(start).Milliseconds(),
		)
	})
}
