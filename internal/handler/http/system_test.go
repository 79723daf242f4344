package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayurbloom/catalog-service/internal/service"
	"github.com/ayurbloom/catalog-service/internal/store"
	"github.com/ayurbloom/catalog-service/internal/store/memory"
)

func TestRoot(t *testing.T) {
	router := newTestRouter(memory.New())

	rec := doRequest(t, router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "running")
}

func TestSeed_Idempotent(t *testing.T) {
	router := newTestRouter(memory.New())

	rec := doRequest(t, router, http.MethodPost, "/api/seed", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result service.SeedResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, service.SeedStatusSeeded, result.Status)
	assert.Equal(t, int64(4), result.Count)

	rec = doRequest(t, router, http.MethodPost, "/api/seed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, service.SeedStatusExists, result.Status)
	assert.Equal(t, int64(4), result.Count)
}

func TestSeed_StoreUnavailable(t *testing.T) {
	router := newTestRouter(store.Unavailable{})

	rec := doRequest(t, router, http.MethodPost, "/api/seed", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result service.SeedResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, service.SeedStatusUnavailable, result.Status)
}

func TestDiagnostics_Connected(t *testing.T) {
	router := newTestRouter(memory.New())
	seedRouter(t, router)

	rec := doRequest(t, router, http.MethodGet, "/test", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report service.Diagnostics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "ok", report.Status)
	assert.Equal(t, service.DatabaseConnected, report.Database)
	assert.Contains(t, report.Collections, "product")
}

func TestDiagnostics_Unavailable(t *testing.T) {
	router := newTestRouter(store.Unavailable{})

	rec := doRequest(t, router, http.MethodGet, "/test", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report service.Diagnostics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, service.DatabaseUnavailable, report.Database)
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(memory.New())

	rec := doRequest(t, router, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthReady_StoreDown(t *testing.T) {
	router := newTestRouter(store.Unavailable{})

	rec := doRequest(t, router, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(memory.New())

	// Generate one request so counters exist, then scrape.
	doRequest(t, router, http.MethodGet, "/", nil)

	rec := doRequest(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "http_requests_total"))
}
