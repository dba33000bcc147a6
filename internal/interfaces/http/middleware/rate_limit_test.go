package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
)

func TestRateLimit_FailsOpenAndLogsWhenRedisUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Nothing listens on this port, so every Redis call fails fast.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		ReadTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	log, hook := test.NewNullLogger()
	cfg := &config.Config{Security: config.SecurityConfig{RateLimitPerMinute: 100}}

	router := gin.New()
	router.Use(RateLimit(cfg, client, log))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code, "limiter must fail open")

	require.NotEmpty(t, hook.Entries, "limiter fault must be logged")
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "rate limiter unavailable")
}
