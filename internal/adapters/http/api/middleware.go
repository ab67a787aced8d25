package api

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/okian/bestxi/pkg/metrics"
	"golang.org/x/time/rate"
)

// HeaderRequestID carries the per-request correlation id.
const HeaderRequestID = "X-Request-ID"

const corsMaxAge = 300

type requestIDKey struct{}

// MetricsMiddleware records request count and latency for endpoint, plus the
// error breakdown for any 4xx or 5xx answer.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		elapsed := float64(time.Since(start).Milliseconds())
		code := strconv.Itoa(rec.status)
		metrics.RecordHTTPRequest(endpoint, r.Method, code)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, code, elapsed)

		if rec.status < http.StatusBadRequest {
			return
		}
		class, severity := classifyStatus(rec.status)
		metrics.RecordErrorByEndpoint(endpoint, r.Method, class)
		metrics.RecordErrorByType(class, severity)
		metrics.RecordErrorLatency("http", class, elapsed)
	}
}

// classifyStatus buckets an error status into the classes the dashboard
// charts. Selector refusals (422) are the caller's problem; upstream
// trouble (503, 504) is ours.
func classifyStatus(status int) (class, severity string) {
	switch status {
	case http.StatusTooManyRequests:
		return "rate_limit", "low"
	case http.StatusNotFound:
		return "not_found", "low"
	case http.StatusUnprocessableEntity:
		return "unselectable", "medium"
	case http.StatusServiceUnavailable:
		return "unavailable", "high"
	case http.StatusGatewayTimeout:
		return "timeout", "high"
	}
	if status >= http.StatusInternalServerError {
		return "server_error", "high"
	}
	return "client_error", "medium"
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rec *statusRecorder) WriteHeader(code int) {
	if !rec.wroteHeader {
		rec.status = code
		rec.wroteHeader = true
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	rec.wroteHeader = true
	n, err := rec.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("write response: %w", err)
	}
	return n, nil
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rec *statusRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

// RequestIDMiddleware propagates an incoming X-Request-ID or mints a new one,
// echoes it on the response and stores it in the request context.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the request id stored by RequestIDMiddleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RateLimitMiddleware rejects requests beyond the limiter's budget with 429.
func RateLimitMiddleware(next http.HandlerFunc, limiter *rate.Limiter, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			metrics.RecordRateLimited(endpoint)
			retry := 1.0
			if l := float64(limiter.Limit()); l > 0 {
				retry = math.Max(1, math.Ceil(1/l))
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(retry)))
			writeError(w, http.StatusTooManyRequests, kindRateLimited, ErrRateLimited)
			return
		}
		next(w, r)
	}
}

// CORSMiddleware allows browser clients from origins to call read-only routes.
func CORSMiddleware(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", HeaderRequestID},
		ExposedHeaders: []string{HeaderPitchType, HeaderPitchSource, HeaderRequestID},
		MaxAge:         corsMaxAge,
	})
}
