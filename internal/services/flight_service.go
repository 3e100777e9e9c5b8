package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"smarttravel/internal/models/request_models"
	"smarttravel/internal/models/response_models"
	"smarttravel/pkg/logger"
	mem "smarttravel/pkg/memcache"
	"smarttravel/pkg/metrics"
	"smarttravel/pkg/utils"
)

const DefaultFlightTimezone = "Asia/Bangkok"

type FlightProvider interface {
	Configured() bool
	SearchFlightOffers(ctx context.Context, query utils.FlightOfferQuery) ([]utils.FlightOffer, error)
	AirlineName(ctx context.Context, code string) (string, error)
}

type FlightServiceInterface interface {
	SearchFlights(ctx context.Context, req request_models.FlightSearchRequest) (response_models.FlightSearchResult, error)
}

type FlightService struct {
	provider FlightProvider
	resolver IATAResolverInterface
	names    mem.NameCache
	loc      *time.Location
	log      *zap.Logger
	now      func() time.Time
}

func NewFlightService(
	provider FlightProvider,
	resolver IATAResolverInterface,
	names mem.NameCache,
	loc *time.Location,
	log *zap.Logger,
) FlightServiceInterface {
	if loc == nil {
		loc = LoadFlightLocation(DefaultFlightTimezone)
	}
	return &FlightService{
		provider: provider,
		resolver: resolver,
		names:    names,
		loc:      loc,
		log:      log,
		now:      time.Now,
	}
}

// LoadFlightLocation falls back to a fixed UTC+7 zone when name is unknown.
func LoadFlightLocation(name string) *time.Location {
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.FixedZone("UTC+7", 7*60*60)
}

func (s *FlightService) SearchFlights(ctx context.Context, req request_models.FlightSearchRequest) (response_models.FlightSearchResult, error) {
	log := logger.For(ctx, s.log)

	day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(req.Date), s.loc)
	if err != nil {
		return response_models.FlightSearchResult{}, fmt.Errorf("%w: %q", utils.ErrInvalidDate, req.Date)
	}
	filter := FlightFilter{Date: day, Location: s.loc, Now: s.now()}
	if t := strings.TrimSpace(req.Time); t != "" {
		clock, err := time.Parse("15:04", t)
		if err != nil {
			return response_models.FlightSearchResult{}, fmt.Errorf("%w: time must be HH:MM", utils.ErrInvalidInput)
		}
		target := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, s.loc)
		filter.Target = &target
	}
	if !s.provider.Configured() {
		return response_models.FlightSearchResult{}, fmt.Errorf("%w: amadeus credentials not configured", utils.ErrFlightProviderUnavailable)
	}

	from := s.resolver.ResolveIATA(ctx, req.From)
	to := s.resolver.ResolveIATA(ctx, req.To)
	adults := max(req.Adults, 1)

	offers, source := s.FetchOffers(ctx, from, to, day, adults)
	metrics.RecordFlightSearch(source)

	filtered := FilterOffers(offers, filter)
	flights := s.SimplifyOffers(ctx, filtered)

	log.Info("flight search",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("date", day.Format("2006-01-02")),
		zap.String("source", source),
		zap.Int("offers", len(offers)),
		zap.Int("kept", len(flights)),
	)

	return response_models.FlightSearchResult{
		From:     from,
		To:       to,
		Date:     day.Format("2006-01-02"),
		Source:   source,
		Total:    len(flights),
		Airlines: GroupByAirline(flights),
	}, nil
}

// FetchOffers queries the provider. A 500 from Amadeus is answered with mock
// offers; any other failure yields no offers.
func (s *FlightService) FetchOffers(ctx context.Context, from, to string, day time.Time, adults int) ([]utils.FlightOffer, string) {
	offers, err := s.provider.SearchFlightOffers(ctx, utils.FlightOfferQuery{
		Origin:        from,
		Destination:   to,
		DepartureDate: day.Format("2006-01-02"),
		Adults:        adults,
		Max:           100,
	})
	if err == nil {
		return offers, response_models.FlightSourceAmadeus
	}

	var apiErr *utils.AmadeusError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusInternalServerError {
		logger.For(ctx, s.log).Warn("amadeus returned 500, serving mock offers", zap.String("from", from), zap.String("to", to))
		for _, a := range mockAirlines {
			if _, ok := s.names.Get(a.code); !ok {
				s.names.Set(a.code, a.name)
			}
		}
		return MockOffers(from, to, day, adults), response_models.FlightSourceMock
	}

	logger.For(ctx, s.log).Error("flight offer search failed", zap.Error(err))
	return nil, response_models.FlightSourceUnavailable
}

var mockAirlines = []struct{ code, name string }{
	{"VN", "Vietnam Airlines"},
	{"BL", "Pacific Airlines"},
	{"VJ", "VietJet Air"},
	{"QH", "Bamboo Airways"},
}

// MockOffers returns five deterministic offers spread over day, priced
// 100 to 1000 USD per adult.
func MockOffers(from, to string, day time.Time, adults int) []utils.FlightOffer {
	adults = max(adults, 1)
	offers := make([]utils.FlightOffer, 0, 5)
	for idx := 0; idx < 5; idx++ {
		airline := mockAirlines[idx%len(mockAirlines)]

		hour := 6 + idx*4
		if hour > 22 {
			hour = 6 + idx*2
		}
		durationMin := 150 + idx*18

		dep := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
		arr := dep.Add(time.Duration(durationMin) * time.Minute)
		price := (100 + float64(idx)*225) * float64(adults)

		offers = append(offers, utils.FlightOffer{
			Itineraries: []utils.FlightItinerary{{
				Segments: []utils.FlightSegment{{
					Departure:   utils.FlightEndpoint{IATACode: from, At: dep.Format(time.RFC3339)},
					Arrival:     utils.FlightEndpoint{IATACode: to, At: arr.Format(time.RFC3339)},
					CarrierCode: airline.code,
					Number:      fmt.Sprintf("%d", 1000+idx),
					Aircraft:    &utils.FlightAircraft{Code: "320"},
					Duration:    fmt.Sprintf("PT%dH%dM", durationMin/60, durationMin%60),
				}},
			}},
			Price:                  utils.FlightPrice{Total: fmt.Sprintf("%.2f", price), Currency: "USD"},
			NumberOfBookableSeats:  9,
			ValidatingAirlineCodes: []string{airline.code},
		})
	}
	return offers
}

type FlightFilter struct {
	// Date is midnight of the requested day in Location.
	Date     time.Time
	Target   *time.Time
	Location *time.Location
	Now      time.Time
}

// FilterOffers keeps offers whose first departure falls on the requested
// day. With a target time, departures later than target+3h are dropped;
// without one, only departures after Now are kept.
func FilterOffers(offers []utils.FlightOffer, f FlightFilter) []utils.FlightOffer {
	loc := f.Location
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := f.Date.Date()

	var kept []utils.FlightOffer
	for _, offer := range offers {
		seg, ok := firstSegment(offer)
		if !ok || seg.Departure.At == "" {
			continue
		}
		dep, err := parseFlightTime(seg.Departure.At, loc)
		if err != nil {
			continue
		}
		dep = dep.In(loc)

		if dy, dm, dd := dep.Date(); dy != y || dm != m || dd != d {
			continue
		}
		if f.Target != nil {
			if dep.After(f.Target.Add(3 * time.Hour)) {
				continue
			}
		} else if !dep.After(f.Now) {
			continue
		}
		kept = append(kept, offer)
	}
	return kept
}

// parseFlightTime accepts RFC3339 and the offset-less local times Amadeus
// returns, which are read in loc.
func parseFlightTime(at string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, at); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", at, loc)
}

func firstSegment(offer utils.FlightOffer) (utils.FlightSegment, bool) {
	if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
		return utils.FlightSegment{}, false
	}
	return offer.Itineraries[0].Segments[0], true
}

func (s *FlightService) SimplifyOffers(ctx context.Context, offers []utils.FlightOffer) []response_models.SimplifiedFlight {
	out := make([]response_models.SimplifiedFlight, 0, len(offers))
	for _, offer := range offers {
		if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
			continue
		}
		segments := offer.Itineraries[0].Segments
		first, last := segments[0], segments[len(segments)-1]

		stops := make([]response_models.FlightStop, 0, len(segments)-1)
		for i, seg := range segments[:len(segments)-1] {
			stops = append(stops, response_models.FlightStop{
				IATA:      seg.Arrival.IATACode,
				Name:      AirportName(seg.Arrival.IATACode),
				Arrival:   seg.Arrival.At,
				Departure: segments[i+1].Departure.At,
			})
		}

		out = append(out, response_models.SimplifiedFlight{
			Airline:    s.airlineName(ctx, first.CarrierCode),
			FlightCode: first.CarrierCode + first.Number,
			DepIATA:    first.Departure.IATACode,
			ArrIATA:    last.Arrival.IATACode,
			DepAirport: AirportName(first.Departure.IATACode),
			ArrAirport: AirportName(last.Arrival.IATACode),
			DepTime:    first.Departure.At,
			ArrTime:    last.Arrival.At,
			Price:      offer.Price.Total,
			Currency:   offer.Price.Currency,
			Stops:      stops,
		})
	}
	return out
}

// airlineName resolves a carrier code through the cache, then Amadeus. Only
// successful lookups are cached; failures fall back to the code.
func (s *FlightService) airlineName(ctx context.Context, code string) string {
	code = strings.ToUpper(code)
	if name, ok := s.names.Get(code); ok {
		return name
	}
	name, err := s.provider.AirlineName(ctx, code)
	if err != nil {
		logger.For(ctx, s.log).Debug("airline lookup failed", zap.String("code", code), zap.Error(err))
		return code
	}
	if name == "" {
		name = code
	}
	s.names.Set(code, name)
	return name
}

func GroupByAirline(flights []response_models.SimplifiedFlight) map[string][]response_models.SimplifiedFlight {
	grouped := make(map[string][]response_models.SimplifiedFlight)
	for _, f := range flights {
		grouped[f.Airline] = append(grouped[f.Airline], f)
	}
	return grouped
}
