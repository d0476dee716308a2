package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fleveque/store-context/internal/llm"
	"github.com/fleveque/store-context/internal/model"
	"github.com/fleveque/store-context/internal/service"
)

// maxBatchSize bounds how many identifiers one batch request may carry.
const maxBatchSize = 50

// StoreLookuper is what the handler needs from the lookup service.
type StoreLookuper interface {
	Lookup(ctx context.Context, identifier string) (*model.LookupResult, error)
	LookupMany(ctx context.Context, identifiers []string, parallelism int) ([]service.BatchItem, error)
}

// LookupHandler serves store descriptions over HTTP.
type LookupHandler struct {
	lookups     StoreLookuper
	parallelism int
	logger      *zap.Logger
}

// NewLookupHandler creates a LookupHandler. parallelism bounds concurrent
// lookups within one batch request.
func NewLookupHandler(lookups StoreLookuper, parallelism int, logger *zap.Logger) *LookupHandler {
	return &LookupHandler{
		lookups:     lookups,
		parallelism: parallelism,
		logger:      logger,
	}
}

// Lookup describes a single store.
// Route: GET /api/v1/stores/lookup?q=Apple%20Store
func (h *LookupHandler) Lookup(c *gin.Context) {
	identifier := c.Query("q")

	result, err := h.lookups.Lookup(c.Request.Context(), identifier)
	if err != nil {
		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			h.logger.Warn("lookup failed",
				zap.String("identifier", identifier),
				zap.Error(err),
			)
		}
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, result)
}

type batchRequest struct {
	Identifiers []string `json:"identifiers" binding:"required,min=1"`
}

type batchResult struct {
	Identifier string              `json:"identifier"`
	Result     *model.LookupResult `json:"result,omitempty"`
	Error      gin.H               `json:"error,omitempty"`
}

// Batch describes several stores concurrently. Per-store failures are
// reported inline; the request itself succeeds.
// Route: POST /api/v1/stores/lookup  {"identifiers": ["Acme", "Globex"]}
func (h *LookupHandler) Batch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"identifiers\": [...]} with at least one entry"})
		return
	}
	if len(req.Identifiers) > maxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many identifiers", "max": maxBatchSize})
		return
	}

	items, err := h.lookups.LookupMany(c.Request.Context(), req.Identifiers, h.parallelism)
	if err != nil {
		h.logger.Warn("batch lookup cut short",
			zap.Int("identifiers", len(req.Identifiers)),
			zap.Error(err),
		)
	}

	results := make([]batchResult, 0, len(items))
	for _, item := range items {
		r := batchResult{Identifier: item.Identifier, Result: item.Result}
		if item.Err != nil {
			_, r.Error = errorResponse(item.Err)
		}
		results = append(results, r)
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// errorResponse maps a lookup error to an HTTP status and JSON body.
func errorResponse(err error) (int, gin.H) {
	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, gin.H{"error": err.Error()}
	}

	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		body := gin.H{"error": "upstream API error", "provider": apiErr.Provider}
		if apiErr.StatusCode != 0 {
			body["status_code"] = apiErr.StatusCode
		}
		if apiErr.Code != "" {
			body["code"] = apiErr.Code
		}
		return http.StatusBadGateway, body
	}

	var remoteErr *llm.RemoteError
	if errors.As(err, &remoteErr) {
		if remoteErr.Timeout() {
			return http.StatusGatewayTimeout, gin.H{"error": "upstream timed out", "provider": remoteErr.Provider}
		}
		return http.StatusBadGateway, gin.H{"error": "upstream unreachable", "provider": remoteErr.Provider}
	}

	return http.StatusInternalServerError, gin.H{"error": "internal error"}
}
