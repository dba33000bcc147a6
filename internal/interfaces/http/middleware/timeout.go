// internal/interfaces/http/middleware/timeout.go
package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout caps how long a request may run by attaching a deadline to the
// request context. Handlers and the repositories behind them propagate the
// context, so a stalled database or Redis call fails with
// context.DeadlineExceeded instead of holding the connection open. The
// handler stays on the request goroutine and remains the only writer to the
// response.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
