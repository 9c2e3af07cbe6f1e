package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sngm3741/restaurant-recs/api/internal/config"
	"github.com/sngm3741/restaurant-recs/api/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		Addr:               ":0",
		StoreDriver:        config.StoreMemory,
		RequestTimeout:     time.Second,
		AllowedOrigins:     []string{"https://recs.example"},
		PriceRangeFallback: "n/a",
	}
}

func TestHealthz(t *testing.T) {
	srv := New(testConfig(), storage.NewMemory(), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthzDegraded(t *testing.T) {
	mem := storage.NewMemory()
	stores := storage.NewStores(mem.Driver, mem.Submissions, mem.Restaurants,
		func(context.Context) error { return errors.New("connection refused") }, nil)
	srv := New(testConfig(), stores, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "degraded")
}

func TestSubmissionFlowThroughRouter(t *testing.T) {
	srv := New(testConfig(), storage.NewMemory(), nil)
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/submissions",
		strings.NewReader(`{"restaurantName":"Gogung","category":"korean","location":"Jeonju","recommendedMenu":["bibimbap"]}`)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/submissions/"+created.Data.ID+"/approve", nil))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var approved struct {
		Data struct {
			ID         string `json:"id"`
			PriceRange string `json:"priceRange"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &approved))
	assert.Equal(t, "n/a", approved.Data.PriceRange)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/restaurants/"+approved.Data.ID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/submissions/"+created.Data.ID+"/approve", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv := New(testConfig(), storage.NewMemory(), nil)

	req := httptest.NewRequest(http.MethodOptions, "/submissions", nil)
	req.Header.Set("Origin", "https://recs.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "https://recs.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
