package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"smarttravel/internal/api/controllers"
	"smarttravel/internal/config"
	"smarttravel/internal/models/request_models"
	"smarttravel/internal/models/response_models"
)

type stubItinerary struct{}

func (stubItinerary) GenerateTour(context.Context, request_models.TripRequest) (response_models.TourResult, error) {
	return response_models.TourResult{GeneratedBy: response_models.GeneratedByFallback}, nil
}

type stubFlights struct{}

func (stubFlights) SearchFlights(context.Context, request_models.FlightSearchRequest) (response_models.FlightSearchResult, error) {
	return response_models.FlightSearchResult{}, nil
}

func newTestRouter(cfg config.AppConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg.Debug = true
	return ProvideRouter(cfg, zap.NewNop(),
		controllers.NewRecommendationController(stubItinerary{}),
		controllers.NewFlightController(stubFlights{}),
		controllers.NewHealthController(cfg, nil))
}

func TestRouter_PublicRoutes(t *testing.T) {
	r := newTestRouter(config.AppConfig{APIKey: "secret"})

	for _, path := range []string{"/", "/health", "/metrics"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Trace-ID"), path)
	}
}

func TestRouter_APIRequiresKey(t *testing.T) {
	r := newTestRouter(config.AppConfig{APIKey: "secret"})
	body := `{"city_name": "Hue", "hotels": [{"id": "h1"}]}`

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "secret")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"generated_by":"fallback"`)
}

func TestRouter_FlightsOpenWithoutCredentials(t *testing.T) {
	r := newTestRouter(config.AppConfig{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/flights?from=SGN&to=HAN&date=2025-11-02", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
