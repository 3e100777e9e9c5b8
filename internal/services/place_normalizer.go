package services

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"

	"smarttravel/internal/models/request_models"
	"smarttravel/pkg/utils"
)

// NormalizePrice coerces a raw avg_price into USD. It never fails: blanks,
// "-", nulls, unparseable and non-finite values all become 0.
func NormalizePrice(raw interface{}) float64 {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		f, _ = v.Float64()
	case string:
		f = parsePriceString(v)
	}
	if utils.IsNonFinite(f) {
		return 0
	}
	return f
}

func parsePriceString(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Sc, r) || unicode.IsSpace(r) || r == ',' {
			return -1
		}
		return r
	}, s)
	if cleaned == "" || cleaned == "-" {
		return 0
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return f
}

// NormalizePlace resolves id (id, then place_id), flattens the name and
// coerces the price. The input is not modified.
func NormalizePlace(p request_models.PlaceData) request_models.NormalizedPlace {
	id := strings.TrimSpace(string(p.ID))
	if id == "" {
		id = strings.TrimSpace(string(p.PlaceID))
	}

	return request_models.NormalizedPlace{
		ID:        id,
		Name:      strings.TrimSpace(p.Name.Text),
		Category:  p.Category,
		Rating:    finiteOrZero(float64(p.Rating)),
		Reviews:   int(p.Reviews),
		Latitude:  copyFloat(p.Latitude),
		Longitude: copyFloat(p.Longitude),
		AvgPrice:  NormalizePrice(p.AvgPrice),
	}
}

func NormalizePlaces(places []request_models.PlaceData) []request_models.NormalizedPlace {
	out := make([]request_models.NormalizedPlace, 0, len(places))
	for _, p := range places {
		out = append(out, NormalizePlace(p))
	}
	return out
}

// NormalizeModes lower-cases, trims and de-duplicates transport modes,
// keeping first-seen order.
func NormalizeModes(modes []string) []string {
	out := make([]string, 0, len(modes))
	seen := make(map[string]struct{}, len(modes))
	for _, m := range modes {
		m = strings.ToLower(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// NormalizeRequest splits a trip request into candidate places and
// preferences. A transport mode both liked and disliked counts as liked.
func NormalizeRequest(req request_models.TripRequest) (request_models.CandidatePlaces, request_models.Preferences) {
	candidates := request_models.CandidatePlaces{
		Activities:  NormalizePlaces(req.Activities),
		Restaurants: NormalizePlaces(req.Restaurants),
		Hotels:      NormalizePlaces(req.Hotels),
		Transport:   NormalizeModes(req.Transport),
	}

	liked := NormalizeModes(req.LikedTransport)
	likedSet := make(map[string]struct{}, len(liked))
	for _, m := range liked {
		likedSet[m] = struct{}{}
	}
	disliked := make([]string, 0, len(req.DislikedTransport))
	for _, m := range NormalizeModes(req.DislikedTransport) {
		if _, ok := likedSet[m]; !ok {
			disliked = append(disliked, m)
		}
	}

	prefs := request_models.Preferences{
		LikedActivities:     NormalizePlaces(req.LikedActivities),
		DislikedActivities:  NormalizePlaces(req.DislikedActivities),
		LikedRestaurants:    NormalizePlaces(req.LikedRestaurants),
		DislikedRestaurants: NormalizePlaces(req.DislikedRestaurants),
		LikedHotels:         NormalizePlaces(req.LikedHotels),
		DislikedHotels:      NormalizePlaces(req.DislikedHotels),
		LikedTransport:      liked,
		DislikedTransport:   disliked,
	}
	return candidates, prefs
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func finiteOrZero(f float64) float64 {
	if utils.IsNonFinite(f) {
		return 0
	}
	return f
}
