package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/caremate/caremate-api/pkg/logger"
)

// Logger emits one structured line per handled request.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		fields := []interface{}{
			"request_id", c.GetString(ContextRequestID),
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if len(c.Errors) > 0 {
			log.Error(c.Errors.Last().Err, "request failed", fields...)
			return
		}
		log.Info("request handled", fields...)
	}
}
