package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ─── Wire types ───────────────────────────────────────────────────────────────

type FlightOffer struct {
	Itineraries            []FlightItinerary `json:"itineraries"`
	Price                  FlightPrice       `json:"price"`
	NumberOfBookableSeats  int               `json:"numberOfBookableSeats,omitempty"`
	ValidatingAirlineCodes []string          `json:"validatingAirlineCodes,omitempty"`
}

type FlightItinerary struct {
	Duration string          `json:"duration,omitempty"`
	Segments []FlightSegment `json:"segments"`
}

type FlightSegment struct {
	Departure   FlightEndpoint `json:"departure"`
	Arrival     FlightEndpoint `json:"arrival"`
	CarrierCode string         `json:"carrierCode"`
	Number      string         `json:"number"`
	Aircraft    *FlightAircraft `json:"aircraft,omitempty"`
	Duration    string          `json:"duration,omitempty"`
}

type FlightAircraft struct {
	Code string `json:"code"`
}

type FlightEndpoint struct {
	IATACode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

type FlightPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type AmadeusLocation struct {
	SubType  string `json:"subType"`
	Name     string `json:"name"`
	IATACode string `json:"iataCode"`
}

type FlightOfferQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	Adults        int
	Max           int
}

// AmadeusError carries the HTTP status of a failed Amadeus call.
type AmadeusError struct {
	StatusCode int
	Body       string
}

func (e *AmadeusError) Error() string {
	return fmt.Sprintf("amadeus error (%d): %s", e.StatusCode, e.Body)
}

func (e *AmadeusError) Unwrap() error { return ErrFlightProviderUnavailable }

// ─── Client ───────────────────────────────────────────────────────────────────

type AmadeusConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	Timeout      time.Duration
}

type AmadeusClient struct {
	baseURL    string
	configured bool
	httpClient *http.Client
}

// NewAmadeusClient builds a client whose transport fetches and refreshes the
// OAuth2 client-credentials token on demand.
func NewAmadeusClient(cfg AmadeusConfig) *AmadeusClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://test.api.amadeus.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	creds := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     baseURL + "/v1/security/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	base := &http.Client{Timeout: timeout}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	httpClient := creds.Client(ctx)
	httpClient.Timeout = timeout

	return &AmadeusClient{
		baseURL:    baseURL,
		configured: cfg.ClientID != "" && cfg.ClientSecret != "",
		httpClient: httpClient,
	}
}

func (c *AmadeusClient) Configured() bool { return c.configured }

// SearchLocations queries cities and airports matching keyword.
func (c *AmadeusClient) SearchLocations(ctx context.Context, keyword string) ([]AmadeusLocation, error) {
	q := url.Values{}
	q.Set("keyword", keyword)
	q.Set("subType", "CITY,AIRPORT")
	q.Set("page[limit]", "5")

	var out struct {
		Data []AmadeusLocation `json:"data"`
	}
	if err := c.get(ctx, "/v1/reference-data/locations", q, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *AmadeusClient) SearchFlightOffers(ctx context.Context, query FlightOfferQuery) ([]FlightOffer, error) {
	adults := max(query.Adults, 1)
	limit := query.Max
	if limit <= 0 {
		limit = 100
	}
	q := url.Values{}
	q.Set("originLocationCode", query.Origin)
	q.Set("destinationLocationCode", query.Destination)
	q.Set("departureDate", query.DepartureDate)
	q.Set("adults", strconv.Itoa(adults))
	q.Set("max", strconv.Itoa(limit))

	var out struct {
		Data []FlightOffer `json:"data"`
	}
	if err := c.get(ctx, "/v2/shopping/flight-offers", q, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// AirlineName returns the business name of an airline, or its common name.
func (c *AmadeusClient) AirlineName(ctx context.Context, code string) (string, error) {
	q := url.Values{}
	q.Set("airlineCodes", code)

	var out struct {
		Data []struct {
			BusinessName string `json:"businessName"`
			CommonName   string `json:"commonName"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/v1/reference-data/airlines", q, &out); err != nil {
		return "", err
	}
	if len(out.Data) == 0 {
		return "", nil
	}
	if out.Data[0].BusinessName != "" {
		return out.Data[0].BusinessName, nil
	}
	return out.Data[0].CommonName, nil
}

func (c *AmadeusClient) get(ctx context.Context, path string, query url.Values, into interface{}) error {
	if !c.configured {
		return fmt.Errorf("%w: amadeus credentials not configured", ErrFlightProviderUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFlightProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &AmadeusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("failed to parse amadeus response: %w", err)
	}
	return nil
}
