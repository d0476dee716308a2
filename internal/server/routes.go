// Package server configures the HTTP server and routes.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fleveque/store-context/internal/config"
	"github.com/fleveque/store-context/internal/handler"
	"github.com/fleveque/store-context/internal/middleware"
)

// Deps are the collaborators the routes need. Dependencies are passed
// explicitly; each handler gets exactly what it uses.
type Deps struct {
	Lookups        handler.StoreLookuper
	PrimaryModel   string
	SearchProvider string
	SearchModel    string
}

// RegisterRoutes sets up all HTTP routes on the Gin engine.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps, logger *zap.Logger) {
	healthHandler := handler.NewHealthHandler(deps.PrimaryModel, deps.SearchProvider, deps.SearchModel)
	lookupHandler := handler.NewLookupHandler(deps.Lookups, cfg.Batch.Parallelism, logger)

	r.GET("/healthz", healthHandler.Healthz)

	api := r.Group("/api/v1")
	api.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	{
		api.GET("/stores/lookup", lookupHandler.Lookup)
		api.POST("/stores/lookup", lookupHandler.Batch)
		// Gin skips group middleware for unmatched routes, so preflight
		// needs a route of its own for CORS to answer it.
		api.OPTIONS("/stores/lookup", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}
}
