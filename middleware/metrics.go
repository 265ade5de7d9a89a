package middleware

import (
	"time"

	"blog-api/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency labelled by the matched route
// template, so ids in the path do not create new series.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		done := metrics.TrackInFlight()
		defer done()

		start := time.Now()
		c.Next()
		metrics.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
