package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/gridiron/api/handler"
	"github.com/use-agent/gridiron/api/middleware"
	"github.com/use-agent/gridiron/batch"
	"github.com/use-agent/gridiron/config"
	"github.com/use-agent/gridiron/metrics"
)

// Deps are the services the routes are wired to. Pool and Metrics may be nil.
type Deps struct {
	Config    *config.Config
	Runner    handler.Runner
	Batches   *batch.Manager
	Pool      handler.PoolStatter
	Metrics   *metrics.Metrics
	StartTime time.Time
}

// NewRouter creates the Gin engine.
//
//	Global:  Recovery -> Logger
//	API:     Auth (if enabled) -> RateLimit
//
// Health and metrics stay outside auth so probes and scrapers always work.
func NewRouter(d Deps) *gin.Engine {
	gin.SetMode(d.Config.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	v1 := r.Group("/api/v1")
	v1.GET("/health", handler.Health(d.Pool, d.StartTime))

	protected := v1.Group("")
	if d.Config.Auth.Enabled {
		protected.Use(middleware.Auth(d.Config.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(d.Config.RateLimit))

	protected.GET("/pages", handler.Pages())
	protected.POST("/parse", handler.Parse(d.Runner))
	protected.POST("/tables", handler.Tables())
	if d.Batches != nil {
		protected.POST("/batch", handler.PostBatch(d.Batches))
		protected.GET("/batch/:id", handler.GetBatch(d.Batches))
	}
	return r
}
