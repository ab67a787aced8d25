package api

import (
	"math"
	"time"

	"github.com/okian/bestxi/pkg/logger"
	"golang.org/x/time/rate"
)

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithRateLimit caps GET /best-xi to rps requests per second with the given
// burst. A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		if burst <= 0 {
			burst = int(math.Max(1, math.Ceil(rps)))
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithRequestTimeout bounds the time spent selecting a lineup.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// WithCORSOrigins sets the origins allowed to call the API from a browser.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
