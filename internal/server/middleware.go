package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/renato0307/roomsched/internal/logging"
)

// requestLogger logs one line per request to the application logger
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		if c.Writer.Status() >= 500 {
			logging.Logger.Error("HTTP request", attrs...)
			return
		}
		logging.Logger.Debug("HTTP request", attrs...)
	}
}
