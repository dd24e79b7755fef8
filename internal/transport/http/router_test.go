package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"fomcdots/internal/config"
	"fomcdots/internal/services"
)

func TestRouterWiring(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(RouterDeps{
		Dotplot:      services.NewDotplotService(staticSource{rows: testRows()}, nil, logger),
		Health:       services.NewHealthService("test"),
		Logger:       logger,
		ServerConfig: config.Default().Server,
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	})

	tests := []struct {
		name     string
		path     string
		expected int
	}{
		{name: "health", path: "/health", expected: http.StatusOK},
		{name: "api health", path: "/api/health", expected: http.StatusOK},
		{name: "version", path: "/api/version", expected: http.StatusOK},
		{name: "metrics", path: "/metrics", expected: http.StatusOK},
		{name: "dotplot", path: "/api/dotplot", expected: http.StatusOK},
		{name: "dotplot csv", path: "/api/dotplot/csv", expected: http.StatusOK},
		{name: "wide table", path: "/api/dotplot/wide", expected: http.StatusOK},
		{name: "unknown route", path: "/api/nope", expected: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestRouterSetsRequestID(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(RouterDeps{
		Dotplot:      services.NewDotplotService(staticSource{rows: testRows()}, nil, logger),
		Health:       services.NewHealthService("test"),
		Logger:       logger,
		ServerConfig: config.Default().Server,
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
