package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smarttravel/internal/models/request_models"
	"smarttravel/internal/models/response_models"
	mem "smarttravel/pkg/memcache"
	"smarttravel/pkg/utils"
)

type fakeFlightProvider struct {
	unconfigured bool
	offers       []utils.FlightOffer
	err          error
	names        map[string]string
	queries      []utils.FlightOfferQuery
	nameLookups  int
}

func (f *fakeFlightProvider) Configured() bool { return !f.unconfigured }

func (f *fakeFlightProvider) SearchFlightOffers(_ context.Context, q utils.FlightOfferQuery) ([]utils.FlightOffer, error) {
	f.queries = append(f.queries, q)
	return f.offers, f.err
}

func (f *fakeFlightProvider) AirlineName(_ context.Context, code string) (string, error) {
	f.nameLookups++
	return f.names[code], nil
}

var bangkok = LoadFlightLocation(DefaultFlightTimezone)

func newTestFlightService(p *fakeFlightProvider) *FlightService {
	svc := NewFlightService(p, NewIATAResolver(nil, zap.NewNop()), mem.NewAirlineNameCache(time.Hour), bangkok, zap.NewNop()).(*FlightService)
	svc.now = func() time.Time { return time.Date(2025, 11, 1, 9, 0, 0, 0, bangkok) }
	return svc
}

func offerAt(carrier, number, dep string) utils.FlightOffer {
	return utils.FlightOffer{
		Itineraries: []utils.FlightItinerary{{Segments: []utils.FlightSegment{{
			Departure:   utils.FlightEndpoint{IATACode: "SGN", At: dep},
			Arrival:     utils.FlightEndpoint{IATACode: "HAN", At: dep},
			CarrierCode: carrier,
			Number:      number,
		}}}},
		Price: utils.FlightPrice{Total: "80.00", Currency: "USD"},
	}
}

func TestMockOffers(t *testing.T) {
	day := time.Date(2025, 11, 2, 0, 0, 0, 0, bangkok)

	offers := MockOffers("SGN", "HAN", day, 2)
	require.Len(t, offers, 5)

	wantHours := []string{"06", "10", "14", "18", "22"}
	wantPrices := []string{"200.00", "650.00", "1100.00", "1550.00", "2000.00"}
	wantCarriers := []string{"VN", "BL", "VJ", "QH", "VN"}
	for i, o := range offers {
		seg := o.Itineraries[0].Segments[0]
		assert.Equal(t, "2025-11-02T"+wantHours[i]+":00:00+07:00", seg.Departure.At)
		assert.Equal(t, wantPrices[i], o.Price.Total)
		assert.Equal(t, wantCarriers[i], seg.CarrierCode)
		assert.Equal(t, "USD", o.Price.Currency)
	}
	seg := offers[1].Itineraries[0].Segments[0]
	assert.Equal(t, "2025-11-02T12:48:00+07:00", seg.Arrival.At)
	assert.Equal(t, "PT2H48M", seg.Duration)
	assert.Equal(t, "1001", seg.Number)
}

func TestFilterOffers(t *testing.T) {
	day := time.Date(2025, 11, 2, 0, 0, 0, 0, bangkok)
	offers := []utils.FlightOffer{
		offerAt("VN", "1", "2025-11-02T06:00:00"),
		offerAt("VN", "2", "2025-11-01T23:30:00Z"), // 06:30 local
		offerAt("VN", "3", "2025-11-02T12:00:00+07:00"),
		offerAt("VN", "4", "2025-11-02T13:01:00+07:00"),
		offerAt("VN", "5", "2025-11-03T08:00:00+07:00"),
		offerAt("VN", "6", "not a time"),
		{},
	}

	t.Run("with target time", func(t *testing.T) {
		target := time.Date(2025, 11, 2, 10, 0, 0, 0, bangkok)
		kept := FilterOffers(offers, FlightFilter{Date: day, Target: &target, Location: bangkok})

		var numbers []string
		for _, o := range kept {
			numbers = append(numbers, o.Itineraries[0].Segments[0].Number)
		}
		assert.Equal(t, []string{"1", "2", "3"}, numbers)
	})

	t.Run("after now", func(t *testing.T) {
		now := time.Date(2025, 11, 2, 6, 15, 0, 0, bangkok)
		kept := FilterOffers(offers, FlightFilter{Date: day, Location: bangkok, Now: now})

		var numbers []string
		for _, o := range kept {
			numbers = append(numbers, o.Itineraries[0].Segments[0].Number)
		}
		assert.Equal(t, []string{"2", "3", "4"}, numbers)
	})
}

func TestSimplifyOffers_StopsAndCachedNames(t *testing.T) {
	p := &fakeFlightProvider{names: map[string]string{"VN": "VIETNAM AIRLINES"}}
	svc := newTestFlightService(p)

	connecting := utils.FlightOffer{
		Itineraries: []utils.FlightItinerary{{Segments: []utils.FlightSegment{
			{
				Departure:   utils.FlightEndpoint{IATACode: "SGN", At: "2025-11-02T08:00:00"},
				Arrival:     utils.FlightEndpoint{IATACode: "DAD", At: "2025-11-02T09:20:00"},
				CarrierCode: "VN", Number: "120",
			},
			{
				Departure:   utils.FlightEndpoint{IATACode: "DAD", At: "2025-11-02T10:30:00"},
				Arrival:     utils.FlightEndpoint{IATACode: "HAN", At: "2025-11-02T11:50:00"},
				CarrierCode: "VN", Number: "170",
			},
		}}},
		Price: utils.FlightPrice{Total: "120.40", Currency: "EUR"},
	}

	flights := svc.SimplifyOffers(context.Background(), []utils.FlightOffer{connecting, offerAt("VN", "7", "2025-11-02T15:00:00")})
	require.Len(t, flights, 2)

	f := flights[0]
	assert.Equal(t, "VIETNAM AIRLINES", f.Airline)
	assert.Equal(t, "VN120", f.FlightCode)
	assert.Equal(t, "SGN", f.DepIATA)
	assert.Equal(t, "HAN", f.ArrIATA)
	assert.Equal(t, "Tan Son Nhat International Airport", f.DepAirport)
	assert.Equal(t, "2025-11-02T11:50:00", f.ArrTime)
	assert.Equal(t, "120.40", f.Price)
	assert.Equal(t, "EUR", f.Currency)
	require.Len(t, f.Stops, 1)
	assert.Equal(t, response_models.FlightStop{
		IATA:      "DAD",
		Name:      "Da Nang International Airport",
		Arrival:   "2025-11-02T09:20:00",
		Departure: "2025-11-02T10:30:00",
	}, f.Stops[0])

	assert.Empty(t, flights[1].Stops)
	assert.Equal(t, 1, p.nameLookups)
}

func TestGroupByAirline(t *testing.T) {
	grouped := GroupByAirline([]response_models.SimplifiedFlight{
		{Airline: "A", FlightCode: "A1"},
		{Airline: "B", FlightCode: "B1"},
		{Airline: "A", FlightCode: "A2"},
	})

	require.Len(t, grouped, 2)
	assert.Equal(t, []string{"A1", "A2"}, []string{grouped["A"][0].FlightCode, grouped["A"][1].FlightCode})
}

func TestSearchFlights_MockOnServerError(t *testing.T) {
	p := &fakeFlightProvider{err: &utils.AmadeusError{StatusCode: http.StatusInternalServerError}}
	svc := newTestFlightService(p)

	res, err := svc.SearchFlights(context.Background(), request_models.FlightSearchRequest{
		From: "Hồ Chí Minh", To: "hanoi", Date: "2025-11-02", Adults: 1,
	})
	require.NoError(t, err)

	require.Len(t, p.queries, 1)
	assert.Equal(t, "SGN", p.queries[0].Origin)
	assert.Equal(t, "HAN", p.queries[0].Destination)
	assert.Equal(t, "2025-11-02", p.queries[0].DepartureDate)

	assert.Equal(t, response_models.FlightSourceMock, res.Source)
	assert.Equal(t, 5, res.Total)
	assert.Len(t, res.Airlines["Vietnam Airlines"], 2)
	assert.Len(t, res.Airlines["Bamboo Airways"], 1)
	assert.Equal(t, 0, p.nameLookups)
}

func TestSearchFlights_ProviderErrorGivesEmptyResult(t *testing.T) {
	p := &fakeFlightProvider{err: &utils.AmadeusError{StatusCode: http.StatusBadRequest}}
	svc := newTestFlightService(p)

	res, err := svc.SearchFlights(context.Background(), request_models.FlightSearchRequest{From: "SGN", To: "HAN", Date: "2025-11-02"})
	require.NoError(t, err)

	assert.Equal(t, response_models.FlightSourceUnavailable, res.Source)
	assert.Zero(t, res.Total)
	assert.Empty(t, res.Airlines)
}

func TestSearchFlights_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		req     request_models.FlightSearchRequest
		p       *fakeFlightProvider
		wantErr error
	}{
		{"bad date", request_models.FlightSearchRequest{From: "SGN", To: "HAN", Date: "02/11/2025"}, &fakeFlightProvider{}, utils.ErrInvalidDate},
		{"bad time", request_models.FlightSearchRequest{From: "SGN", To: "HAN", Date: "2025-11-02", Time: "9am"}, &fakeFlightProvider{}, utils.ErrInvalidInput},
		{"not configured", request_models.FlightSearchRequest{From: "SGN", To: "HAN", Date: "2025-11-02"}, &fakeFlightProvider{unconfigured: true}, utils.ErrFlightProviderUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestFlightService(tt.p)

			_, err := svc.SearchFlights(context.Background(), tt.req)

			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Empty(t, tt.p.queries)
		})
	}
}
