package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HarishP23/OneStop/internal/logger"
)

// RequestLogger logs every served request through the structured logger
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		logger.HTTPLog(c.Request.Method, path, c.Writer.Status(), time.Since(start), c.Writer.Size(), c.ClientIP())
	}
}
