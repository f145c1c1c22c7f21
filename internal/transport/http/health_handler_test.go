package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screener/internal/services"
	"screener/pkg/contracts"
)

func TestHealthEndpoints(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := services.NewDatasetStore()
	handler := NewHealthHandler(services.NewHealthService(store, logger), logger)

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var status services.HealthStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, "healthy", status.Status)
		assert.Equal(t, contracts.Version, status.Version)
		assert.Zero(t, status.Sessions)
	})

	t.Run("live", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alive")
	})

	t.Run("ready", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ready")
	})

	t.Run("version", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Version(w, httptest.NewRequest(http.MethodGet, "/api/version", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), contracts.Version)
	})
}
