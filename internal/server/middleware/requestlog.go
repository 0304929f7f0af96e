package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"mission-tracker/backend/internal/logger"
)

// RequestLog attaches a request-scoped logger to the context and emits one
// line per request with method, path, status, and latency.
func RequestLog(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := log.With("method", c.Request.Method, "path", c.Request.URL.Path)
		c.Request = c.Request.WithContext(logger.ContextWith(c.Request.Context(), reqLog))

		c.Next()

		status := c.Writer.Status()
		fields := []any{"status", status, "duration", time.Since(start)}
		if status >= 500 {
			reqLog.Error("request completed", fields...)
			return
		}
		reqLog.Info("request completed", fields...)
	}
}
