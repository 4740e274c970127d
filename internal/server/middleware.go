package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/benchavg/internal/logging"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

type ctxKey int

const (
	requestIDKey ctxKey = iota
	errorCodeKey
)

// RequestIDFrom returns the request id stored in ctx, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID reuses the caller's X-Request-ID or assigns a new UUID, and
// echoes it on the response.
func (s *Service) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// codeHolder lets handlers report the error code back to the logger.
type codeHolder struct {
	code string
}

func setCode(r *http.Request, code string) {
	if h, ok := r.Context().Value(errorCodeKey).(*codeHolder); ok {
		h.code = code
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		holder := &codeHolder{}
		r = r.WithContext(context.WithValue(r.Context(), errorCodeKey, holder))

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		id := RequestIDFrom(r.Context())
		logging.Debug("request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", elapsed,
		)
		s.recordEvent(Event{
			RequestID:  id,
			Method:     r.Method,
			Path:       r.URL.Path,
			Status:     rec.status,
			Code:       holder.code,
			DurationMS: float64(elapsed.Microseconds()) / 1000,
			Timestamp:  start,
		})
	})
}
