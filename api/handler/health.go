package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/gridiron/models"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// PoolStatter reports browser pool usage.
type PoolStatter interface {
	Stats() models.PoolStats
}

// Health returns a handler for GET /api/v1/health. The status degrades when
// more than 80% of browser pages are busy. pool may be nil when the server
// runs without a browser.
func Health(pool PoolStatter, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stats models.PoolStats
		if pool != nil {
			stats = pool.Stats()
		}
		status := "healthy"
		if stats.MaxPages > 0 && stats.ActivePages > int(float64(stats.MaxPages)*0.8) {
			status = "degraded"
		}
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:    status,
			Uptime:    time.Since(startTime).Round(time.Second).String(),
			PoolStats: stats,
			Version:   Version,
		})
	}
}
