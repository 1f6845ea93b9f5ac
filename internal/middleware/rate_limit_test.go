package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func rateLimitRouter(limiter *RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return router
}

func pingFrom(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_AllowsBurst(t *testing.T) {
	router := rateLimitRouter(NewRateLimiter(1, 2))

	for i := 0; i < 2; i++ {
		w := pingFrom(router, "1.2.3.4:1234")
		assert.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
		assert.Contains(t, w.Body.String(), "pong", "request %d", i+1)
	}
}

func TestRateLimiter_RejectsWhenBurstExhausted(t *testing.T) {
	router := rateLimitRouter(NewRateLimiter(1, 2))

	pingFrom(router, "1.2.3.4:1234")
	pingFrom(router, "1.2.3.4:1234")
	w := pingFrom(router, "1.2.3.4:1234")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
	assert.NotContains(t, w.Body.String(), "pong")
}

func TestRateLimiter_TracksClientsSeparately(t *testing.T) {
	router := rateLimitRouter(NewRateLimiter(1, 1))

	first := pingFrom(router, "1.2.3.4:1234")
	assert.Equal(t, http.StatusOK, first.Code)

	blocked := pingFrom(router, "1.2.3.4:1234")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)

	// A different client has its own bucket.
	other := pingFrom(router, "5.6.7.8:999")
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestRateLimiter_RefillsOverTime(t *testing.T) {
	// One token every 10ms, burst of one.
	router := rateLimitRouter(NewRateLimiter(rate.Every(10*time.Millisecond), 1))

	first := pingFrom(router, "1.2.3.4:1234")
	assert.Equal(t, http.StatusOK, first.Code)

	blocked := pingFrom(router, "1.2.3.4:1234")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)

	time.Sleep(50 * time.Millisecond)

	refilled := pingFrom(router, "1.2.3.4:1234")
	assert.Equal(t, http.StatusOK, refilled.Code)
}
