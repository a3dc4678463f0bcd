package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubLimiter struct {
	result *redis_rate.Result
	err    error
	keys   []string
}

func (s *stubLimiter) Allow(_ context.Context, key string, _ redis_rate.Limit) (*redis_rate.Result, error) {
	s.keys = append(s.keys, key)
	return s.result, s.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func rateLimitedEngine(limiter Allower) *gin.Engine {
	r := gin.New()
	r.Use(RateLimit(limiter, redis_rate.PerMinute(10), "auth", zerolog.Nop()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimitAllows(t *testing.T) {
	limiter := &stubLimiter{result: &redis_rate.Result{Allowed: 1, Remaining: 9}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:5555"

	rateLimitedEngine(limiter).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "9", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, []string{"ratelimit:auth:203.0.113.7"}, limiter.keys)
}

func TestRateLimitRejects(t *testing.T) {
	limiter := &stubLimiter{result: &redis_rate.Result{Allowed: 0, RetryAfter: 1500 * time.Millisecond}}
	w := httptest.NewRecorder()

	rateLimitedEngine(limiter).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "RATE_LIMIT_EXCEEDED")
}

func TestRateLimitFailsOpen(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}
	w := httptest.NewRecorder()

	rateLimitedEngine(limiter).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
