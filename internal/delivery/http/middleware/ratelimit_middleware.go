package middleware

import (
	"log/slog"
	"sync"
	"time"

	"plateful/config"
	"plateful/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const limiterCleanupInterval = 5 * time.Minute

// RateLimitMiddleware throttles the credential-guessing surface. Buckets are
// keyed by client IP; non-auth routes are not limited here.
type RateLimitMiddleware struct {
	limiters    sync.Map // map[string]*rate.Limiter
	rate        rate.Limit
	burst       int
	mu          sync.Mutex
	lastCleanup time.Time
	logger      *slog.Logger
}

// NewRateLimitMiddleware is the constructor for RateLimitMiddleware.
func NewRateLimitMiddleware(cfg *config.Config, logger *slog.Logger) *RateLimitMiddleware {
	perMinute := 10
	burst := 10
	if cfg.RateLimit != nil {
		if cfg.RateLimit.AuthPerMinute > 0 {
			perMinute = cfg.RateLimit.AuthPerMinute
		}
		if cfg.RateLimit.AuthBurst > 0 {
			burst = cfg.RateLimit.AuthBurst
		}
	}

	return &RateLimitMiddleware{
		rate:        rate.Limit(float64(perMinute) / 60.0),
		burst:       burst,
		lastCleanup: time.Now(),
		logger:      logger,
	}
}

// LimitAuth is the middleware function applied to the auth route group.
func (m *RateLimitMiddleware) LimitAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.RealIP()
		if key == "" {
			return next(c)
		}

		if !m.getLimiter(key).Allow() {
			m.logger.Warn("auth rate limit exceeded",
				slog.String("ip", key),
				slog.String("path", c.Request().URL.Path))

			return response.TooManyRequests(c, "RATE_LIMITED", "too many attempts, please try again later")
		}

		return next(c)
	}
}

// getLimiter retrieves or creates the limiter for the given key.
func (m *RateLimitMiddleware) getLimiter(key string) *rate.Limiter {
	if limiter, ok := m.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(m.rate, m.burst)
	actual, _ := m.limiters.LoadOrStore(key, limiter)

	m.maybeCleanup()

	return actual.(*rate.Limiter)
}

// maybeCleanup drops limiters with full buckets. A full bucket means the key
// has been idle long enough to refill, so the entry is safe to recreate on
// demand.
func (m *RateLimitMiddleware) maybeCleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if time.Since(m.lastCleanup) < limiterCleanupInterval {
		return
	}
	m.lastCleanup = time.Now()

	m.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(m.burst) {
			m.limiters.Delete(key)
		}

		return true
	})
}
