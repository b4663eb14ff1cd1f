package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"plateful/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateLimitedRequest(t *testing.T, m *RateLimitMiddleware, ip string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := m.LimitAuth(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	return rec
}

func testRateLimitMiddleware(t *testing.T, perMinute, burst int) *RateLimitMiddleware {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRateLimitMiddleware(&config.Config{
		RateLimit: &config.RateLimitConfig{
			AuthPerMinute: perMinute,
			AuthBurst:     burst,
		},
	}, logger)
}

func TestRateLimitMiddleware_AllowsWithinBurst(t *testing.T) {
	m := testRateLimitMiddleware(t, 10, 3)

	for i := 0; i < 3; i++ {
		rec := rateLimitedRequest(t, m, "203.0.113.7")
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimitMiddleware_RejectsBeyondBurst(t *testing.T) {
	m := testRateLimitMiddleware(t, 1, 2)

	assert.Equal(t, http.StatusOK, rateLimitedRequest(t, m, "203.0.113.7").Code)
	assert.Equal(t, http.StatusOK, rateLimitedRequest(t, m, "203.0.113.7").Code)

	rec := rateLimitedRequest(t, m, "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "RATE_LIMITED")
}

func TestRateLimitMiddleware_BucketsArePerIP(t *testing.T) {
	m := testRateLimitMiddleware(t, 1, 1)

	assert.Equal(t, http.StatusOK, rateLimitedRequest(t, m, "203.0.113.7").Code)
	assert.Equal(t, http.StatusTooManyRequests, rateLimitedRequest(t, m, "203.0.113.7").Code)

	// A different client still has a full bucket.
	assert.Equal(t, http.StatusOK, rateLimitedRequest(t, m, "198.51.100.4").Code)
}
