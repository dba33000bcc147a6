// internal/interfaces/http/middleware/logger.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger emits one structured line per request through the shared
// application logger. Status buckets map to levels so 5xx responses stand
// out in the stream without a separate error pipeline.
func Logger(log *logrus.Logger) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		entry := log.WithFields(logrus.Fields{
			"request_id":    param.Keys["request_id"],
			"method":        param.Method,
			"path":          param.Path,
			"status_code":   param.StatusCode,
			"latency_ms":    param.Latency.Milliseconds(),
			"client_ip":     param.ClientIP,
			"response_size": param.BodySize,
		})

		if param.ErrorMessage != "" {
			entry = entry.WithField("error", param.ErrorMessage)
		}

		switch {
		case param.StatusCode >= 500:
			entry.Error("request failed")
		case param.StatusCode >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request served")
		}

		return ""
	})
}
