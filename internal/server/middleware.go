package server

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/claimsight/claimsight/internal/metrics"
	"github.com/claimsight/claimsight/internal/worker"
)

// RequestID assigns a request id, honoring one supplied by the client.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Set("request_id", rid)
			c.Response().Header().Set(echo.HeaderXRequestID, rid)
			return next(c)
		}
	}
}

// Logger emits one structured log line per request.
func Logger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			rid, _ := c.Get("request_id").(string)

			err := next(c)

			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}

			evt.
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Msg("request")

			return err
		}
	}
}

// Recovery converts handler panics into 500 responses.
func Recovery(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					var stack [4096]byte
					n := runtime.Stack(stack[:], false)

					logger.Error().
						Str("request_id", fmt.Sprintf("%v", c.Get("request_id"))).
						Str("panic", fmt.Sprintf("%v", r)).
						Str("stack", string(stack[:n])).
						Msg("panic recovered")

					err = echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
				}
			}()
			return next(c)
		}
	}
}

// Metrics tracks request counts, durations, and errors per endpoint.
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			method := c.Request().Method
			endpoint := metricEndpoint(c.Request().URL.Path)

			m.Requests.WithLabelValues(method, endpoint).Inc()

			err := next(c)

			m.RequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
			if err != nil {
				m.Errors.WithLabelValues(method, endpoint, fmt.Sprintf("%T", err)).Inc()
			}
			return err
		}
	}
}

// metricEndpoint collapses request paths to a fixed label set so
// variable segments never explode metric cardinality.
func metricEndpoint(path string) string {
	switch {
	case strings.HasPrefix(path, "/extract"):
		return "extract"
	case strings.HasPrefix(path, "/ask"):
		return "ask"
	case strings.HasPrefix(path, "/health"):
		return "health"
	case strings.HasPrefix(path, "/metrics"):
		return "metrics"
	case path == "/":
		return "root"
	default:
		return "unknown"
	}
}

// RateLimit rejects clients that exceed their per-IP token bucket.
func RateLimit(requestsPerSecond float64, burst int) echo.MiddlewareFunc {
	limiter := worker.NewLimiter(requestsPerSecond, burst)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(c.RealIP()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
