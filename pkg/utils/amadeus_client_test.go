package utils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAmadeusTestServer(t *testing.T, api http.HandlerFunc) *AmadeusClient {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "id", r.PostForm.Get("client_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":1799}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		api(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return NewAmadeusClient(AmadeusConfig{ClientID: "id", ClientSecret: "secret", BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func TestAmadeusClient_SearchFlightOffers(t *testing.T) {
	client := newAmadeusTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/shopping/flight-offers", r.URL.Path)
		assert.Equal(t, "SGN", r.URL.Query().Get("originLocationCode"))
		assert.Equal(t, "HAN", r.URL.Query().Get("destinationLocationCode"))
		assert.Equal(t, "2025-11-02", r.URL.Query().Get("departureDate"))
		assert.Equal(t, "1", r.URL.Query().Get("adults"))
		assert.Equal(t, "100", r.URL.Query().Get("max"))
		_, _ = w.Write([]byte(`{"data":[{"itineraries":[{"segments":[{"departure":{"iataCode":"SGN","at":"2025-11-02T08:00:00"},"arrival":{"iataCode":"HAN","at":"2025-11-02T10:10:00"},"carrierCode":"VN","number":"210"}]}],"price":{"total":"89.50","currency":"USD"}}]}`))
	})

	offers, err := client.SearchFlightOffers(context.Background(), FlightOfferQuery{Origin: "SGN", Destination: "HAN", DepartureDate: "2025-11-02"})
	require.NoError(t, err)
	require.Len(t, offers, 1)
	seg := offers[0].Itineraries[0].Segments[0]
	assert.Equal(t, "VN", seg.CarrierCode)
	assert.Equal(t, "2025-11-02T08:00:00", seg.Departure.At)
	assert.Equal(t, "89.50", offers[0].Price.Total)
}

func TestAmadeusClient_ServerError(t *testing.T) {
	client := newAmadeusTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"errors":[{"status":500}]}`))
	})

	_, err := client.SearchFlightOffers(context.Background(), FlightOfferQuery{Origin: "SGN", Destination: "HAN", DepartureDate: "2025-11-02"})

	var apiErr *AmadeusError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.ErrorIs(t, err, ErrFlightProviderUnavailable)
}

func TestAmadeusClient_AirlineName(t *testing.T) {
	client := newAmadeusTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/reference-data/airlines", r.URL.Path)
		switch r.URL.Query().Get("airlineCodes") {
		case "VN":
			_, _ = w.Write([]byte(`{"data":[{"businessName":"VIETNAM AIRLINES","commonName":"VIETNAM AIR"}]}`))
		case "VJ":
			_, _ = w.Write([]byte(`{"data":[{"businessName":"","commonName":"VIETJET"}]}`))
		default:
			_, _ = w.Write([]byte(`{"data":[]}`))
		}
	})

	name, err := client.AirlineName(context.Background(), "VN")
	require.NoError(t, err)
	assert.Equal(t, "VIETNAM AIRLINES", name)

	name, err = client.AirlineName(context.Background(), "VJ")
	require.NoError(t, err)
	assert.Equal(t, "VIETJET", name)

	name, err = client.AirlineName(context.Background(), "ZZ")
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestAmadeusClient_SearchLocations(t *testing.T) {
	client := newAmadeusTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "CITY,AIRPORT", r.URL.Query().Get("subType"))
		assert.Equal(t, "Hue", r.URL.Query().Get("keyword"))
		_, _ = w.Write([]byte(`{"data":[{"subType":"AIRPORT","name":"PHU BAI","iataCode":"HUI"}]}`))
	})

	locs, err := client.SearchLocations(context.Background(), "Hue")
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, "HUI", locs[0].IATACode)
}

func TestAmadeusClient_NotConfigured(t *testing.T) {
	client := NewAmadeusClient(AmadeusConfig{})

	assert.False(t, client.Configured())
	_, err := client.SearchLocations(context.Background(), "Hue")
	assert.ErrorIs(t, err, ErrFlightProviderUnavailable)
}
