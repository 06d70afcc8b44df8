// Package routers builds the public and private HTTP routers.
package routers

import (
	"time"

	ut "github.com/go-playground/universal-translator"

	"github.com/gin-gonic/gin"

	"github.com/ForkFiesta/note-graph-service/internal/app"
	"github.com/ForkFiesta/note-graph-service/internal/middleware"
	"github.com/ForkFiesta/note-graph-service/internal/routers/api_router"
	"github.com/ForkFiesta/note-graph-service/pkg/limiter"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/note",
		FillInterval: time.Second,
		Capacity:     50,
		Quantum:      50,
	},
)

// NewRouter builds the public API router
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(gin.Logger())
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header))
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		noteHandler := api_router.NewNoteHandler(appContainer)
		graphHandler := api_router.NewGraphHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)

		api.GET("/health", healthHandler.Check)
		api.GET("/version", versionHandler.ServerVersion)

		api.GET("/note", noteHandler.Get)
		api.POST("/note", noteHandler.CreateOrUpdate)
		api.DELETE("/note", noteHandler.Delete)
		api.GET("/notes", noteHandler.List)

		api.GET("/graph/backlinks", graphHandler.Backlinks)
		api.GET("/graph/outlinks", graphHandler.Outlinks)
		api.GET("/graph/dangling", graphHandler.Dangling)
		api.GET("/graph/resolve", graphHandler.Resolve)
		api.GET("/graph/stats", graphHandler.Stats)
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
