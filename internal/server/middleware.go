package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// requestIDHeader is the header carrying the per-request correlation ID.
const requestIDHeader = "X-Request-ID"

// statusRecorder captures the status code written by a handler so the
// logging middleware can report it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withRequestID attaches a request ID to every request, reusing the caller's
// if one was sent and minting a fresh UUID otherwise. The ID is echoed back
// in the response.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// withLogging emits one structured log line per handled request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		s.log.Info("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", r.Header.Get(requestIDHeader),
		)
	})
}

// withInFlightLimit caps the number of requests handled concurrently. When
// the cap is reached further requests are rejected immediately with 503
// rather than queued, keeping latency bounded under overload. A max of 0
// disables the limiter.
func (s *Server) withInFlightLimit(next http.Handler, max int) http.Handler {
	if max <= 0 {
		return next
	}
	sem := semaphore.NewWeighted(int64(max))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !sem.TryAcquire(1) {
			s.writeError(w, "", http.StatusServiceUnavailable, "OVERLOADED",
				"Too many concurrent requests, try again later")
			return
		}
		defer sem.Release(1)
		next.ServeHTTP(w, r)
	})
}
