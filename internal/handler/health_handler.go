// Package handler contains HTTP request handlers.
// In Gin, a handler is any function with signature func(*gin.Context).
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness along with which models back each stage,
// so a misconfigured fallback is visible without issuing a lookup.
type HealthHandler struct {
	primaryModel   string
	searchProvider string
	searchModel    string
}

// NewHealthHandler creates a HealthHandler. searchProvider is "none" when
// the web-search stage is disabled.
func NewHealthHandler(primaryModel, searchProvider, searchModel string) *HealthHandler {
	return &HealthHandler{
		primaryModel:   primaryModel,
		searchProvider: searchProvider,
		searchModel:    searchModel,
	}
}

// Healthz responds with service status.
// Route: GET /healthz
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"service":         "store-context",
		"primary_model":   h.primaryModel,
		"search_provider": h.searchProvider,
		"search_model":    h.searchModel,
	})
}
