package ratelimit

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"estategate/pkg/platform/httputil"
	"estategate/pkg/requestcontext"
)

// Limiter decides whether a keyed request may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
}

// Metrics counts throttling decisions.
type Metrics struct {
	Rejections prometheus.Counter
}

// NewMetrics registers the rate limit metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Rejections: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "estategate_ratelimit_rejections_total",
			Help: "Total number of requests rejected by the verification rate limit",
		}),
	}
}

func (m *Metrics) incRejections() {
	if m == nil {
		return
	}
	m.Rejections.Inc()
}

// Middleware applies a Limiter per client IP.
type Middleware struct {
	limiter Limiter
	logger  *slog.Logger
	metrics *Metrics
}

// NewMiddleware builds the middleware. metrics may be nil.
func NewMiddleware(limiter Limiter, logger *slog.Logger, metrics *Metrics) *Middleware {
	return &Middleware{limiter: limiter, logger: logger, metrics: metrics}
}

type exceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"error_description"`
	RetryAfter int    `json:"retry_after"`
}

// PerClientIP rejects requests over the limit with 429. Limiter errors let
// the request through.
func (m *Middleware) PerClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)

		result, err := m.limiter.Allow(ctx, ip)
		if err != nil {
			m.logger.ErrorContext(ctx, "failed to check rate limit", "error", err, "client_ip", ip)
			next.ServeHTTP(w, r)
			return
		}

		// Add headers regardless of outcome
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			m.metrics.incRejections()
			m.logger.WarnContext(ctx, "verification rate limit exceeded",
				"request_id", requestcontext.RequestID(ctx),
				"client_ip", ip,
				"retry_after", result.RetryAfter,
			)
			w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
			httputil.WriteJSON(w, http.StatusTooManyRequests, exceededResponse{
				Error:      "rate_limit_exceeded",
				Message:    "Too many verification attempts. Please try again later.",
				RetryAfter: result.RetryAfter,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
