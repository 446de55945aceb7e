package http_metrics_middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/humanbelnik/filmorate/internal/metrics"
)

// Instrument records count and latency of every request under its route template.
func Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.RecordHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
