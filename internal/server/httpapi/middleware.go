package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/R3gret/ITPM-Backend/internal/common"
	"github.com/R3gret/ITPM-Backend/internal/logging"
	"github.com/R3gret/ITPM-Backend/internal/server/ratelimit"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestIDFromContext returns the id assigned by the logging middleware.
func RequestIDFromContext(ctx context.Context) string {
	return logging.RequestID(ctx)
}

// requestLogger assigns a request id and logs one line per request.
func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			id := r.Header.Get(requestIDHeader)
			if id == "" || len(id) > 64 {
				id = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, id)
			r = r.WithContext(logging.WithRequestID(r.Context(), id))

			rw := newStatusRecorder(w)
			next.ServeHTTP(rw, r)

			logger.Info(r.Context(), "request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.status,
				"duration", time.Since(start).String(),
			)
		})
	}
}

// recoverer turns a panic into a 500 and logs the stack.
func recoverer(ew *errorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					if p == http.ErrAbortHandler {
						panic(p)
					}
					ew.logger.Error(r.Context(), "panic recovered",
						"panic", fmt.Sprint(p),
						"stack", string(debug.Stack()),
					)
					ew.internal(w, r, fmt.Errorf("panic: %v", p))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// limitByClient rejects requests once the client key has used up its
// budget. A limiter backend failure is logged and the request let through.
func limitByClient(name string, l ratelimit.Limiter, window time.Duration, key ratelimit.ClientKeyFunc, ew *errorWriter, m *Metrics) func(http.Handler) http.Handler {
	retryAfter := strconv.Itoa(int(window.Round(time.Second).Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := key(r)
			d, err := l.Allow(r.Context(), client)
			if err != nil {
				ew.logger.Warn(r.Context(), "rate limiter unavailable", "limiter", name, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			if !d.Allowed {
				m.limited(name)
				ew.logger.Info(r.Context(), "rate limited", "limiter", name, "client", client)
				w.Header().Set("Retry-After", retryAfter)
				ew.write(w, r, common.ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
