package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fleveque/store-context/internal/config"
	"github.com/fleveque/store-context/internal/model"
	"github.com/fleveque/store-context/internal/service"
)

type echoLookuper struct{}

func (echoLookuper) Lookup(_ context.Context, identifier string) (*model.LookupResult, error) {
	identifier, err := service.ValidateIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	return model.NewLookupResult(identifier, identifier+" is a store.", model.SourcePrimary), nil
}

func (e echoLookuper) LookupMany(ctx context.Context, ids []string, _ int) ([]service.BatchItem, error) {
	items := make([]service.BatchItem, len(ids))
	for i, id := range ids {
		r, err := e.Lookup(ctx, id)
		items[i] = service.BatchItem{Identifier: id, Result: r, Err: err}
	}
	return items, nil
}

func testServer() *Server {
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		LLM:    config.LLMConfig{TimeoutMs: 1000},
		Batch:  config.BatchConfig{Parallelism: 2},
		Log:    config.LogConfig{Level: "info"},
	}
	return New(cfg, Deps{Lookups: echoLookuper{}, PrimaryModel: "gpt-4o-mini", SearchProvider: "none"}, zap.NewNop())
}

func TestRoutes(t *testing.T) {
	srv := testServer()

	tests := []struct {
		method, path, body string
		status             int
		contains           string
	}{
		{"GET", "/healthz", "", http.StatusOK, `"status":"ok"`},
		{"GET", "/api/v1/stores/lookup?q=Acme", "", http.StatusOK, `"text":"Acme is a store."`},
		{"GET", "/api/v1/stores/lookup", "", http.StatusBadRequest, "invalid store identifier"},
		{"POST", "/api/v1/stores/lookup", `{"identifiers":["Acme","Globex"]}`, http.StatusOK, "Globex is a store."},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()
			srv.Router().ServeHTTP(w, req)

			require.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
}

func TestRoutes_CORSOnAPI(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest("GET", "/api/v1/stores/lookup?q=Acme", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRoutes_CORSPreflight(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest("OPTIONS", "/api/v1/stores/lookup", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
}

func TestRoutes_CORSPreflightUnknownOrigin(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest("OPTIONS", "/api/v1/stores/lookup", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
