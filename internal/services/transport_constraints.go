package services

import (
	"math/rand"
	"slices"
	"strings"
	"sync"
	"time"

	"smarttravel/internal/models/request_models"
	"smarttravel/internal/models/response_models"
)

// TransportEnforcer rewrites transfer modes to honour transport preferences
// and refreshes transfer distance, time and cost.
type TransportEnforcer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewTransportEnforcer uses rng for picking among liked modes; nil seeds
// from the clock.
func NewTransportEnforcer(rng *rand.Rand) *TransportEnforcer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &TransportEnforcer{rng: rng}
}

// Enforce returns a corrected copy of days. Non-transfer entries are left
// as they are. Running it on its own output changes nothing.
func (e *TransportEnforcer) Enforce(
	days []response_models.DaySchedule,
	prefs request_models.Preferences,
	places request_models.CandidatePlaces,
) []response_models.DaySchedule {
	liked := lowerAll(prefs.LikedTransport)
	disliked := lowerAll(prefs.DislikedTransport)

	out := make([]response_models.DaySchedule, 0, len(days))
	for _, day := range days {
		entries := slices.Clone(day.Activities)
		if entries == nil {
			entries = []response_models.ActivityEntry{}
		}
		for i := range entries {
			if !entries[i].IsTransfer() {
				continue
			}
			current := strings.ToLower(strings.TrimSpace(entries[i].Mode()))
			mode := e.chooseMode(current, liked, disliked, places.Transport)
			entries[i] = enrichTransfer(entries, i, mode, mode != current, places)
		}
		out = append(out, response_models.DaySchedule{Day: day.Day, Activities: entries})
	}
	return out
}

func (e *TransportEnforcer) chooseMode(current string, liked, disliked, available []string) string {
	switch {
	case len(liked) > 0:
		if slices.Contains(liked, current) {
			return current
		}
		e.mu.Lock()
		defer e.mu.Unlock()
		return liked[e.rng.Intn(len(liked))]
	case current == "", slices.Contains(disliked, current):
		return defaultMode(disliked, available)
	default:
		return current
	}
}

var substituteModes = []string{"grab", "bus", "metro", "walk"}

// defaultMode is taxi unless the traveller dislikes taxis, in which case the
// first acceptable mode from the destination's transport list (then a fixed
// list) is used.
func defaultMode(disliked, available []string) string {
	if !slices.Contains(disliked, DefaultTransitMode) {
		return DefaultTransitMode
	}
	for _, m := range append(lowerAll(available), substituteModes...) {
		if !slices.Contains(disliked, m) {
			return m
		}
	}
	return DefaultTransitMode
}

// enrichTransfer sets the mode and, when the mode changed or no distance is
// known, recomputes distance from neighbouring coordinates (or the mode's
// fallback distance). Travel time and cost always follow the final distance.
func enrichTransfer(
	entries []response_models.ActivityEntry,
	i int,
	mode string,
	rewritten bool,
	places request_models.CandidatePlaces,
) response_models.ActivityEntry {
	entry := entries[i]
	entry.TransportMode = &mode

	if rewritten || entry.DistanceKM == nil {
		distance := FallbackDistance(mode)
		if d, ok := neighbourDistance(entries, i, places); ok {
			distance = d
		} else if entry.DistanceKM != nil && *entry.DistanceKM > 0 {
			distance = *entry.DistanceKM
		}
		distance = roundTo(distance, 2)
		entry.DistanceKM = &distance
	} else {
		d := *entry.DistanceKM
		entry.DistanceKM = &d
	}

	minutes := TravelTime(*entry.DistanceKM, mode, isRushHour(entry.StartTime))
	entry.TravelTimeMin = &minutes
	entry.Cost = TransportCost(*entry.DistanceKM, mode)
	return entry
}

func neighbourDistance(entries []response_models.ActivityEntry, i int, places request_models.CandidatePlaces) (float64, bool) {
	if i == 0 || i == len(entries)-1 {
		return 0, false
	}
	from, ok := placeOf(entries[i-1], places)
	if !ok {
		return 0, false
	}
	to, ok := placeOf(entries[i+1], places)
	if !ok {
		return 0, false
	}
	return Haversine(*from.Latitude, *from.Longitude, *to.Latitude, *to.Longitude), true
}

func placeOf(entry response_models.ActivityEntry, places request_models.CandidatePlaces) (request_models.NormalizedPlace, bool) {
	if entry.IsTransfer() || entry.PlaceID == nil {
		return request_models.NormalizedPlace{}, false
	}
	p, ok := places.Lookup(*entry.PlaceID)
	if !ok || !p.HasCoordinates() {
		return request_models.NormalizedPlace{}, false
	}
	return p, true
}

// isRushHour is true for departures in 07:00-09:00 or 17:00-19:00.
func isRushHour(startTime string) bool {
	t, err := time.Parse("15:04", strings.TrimSpace(startTime))
	if err != nil {
		return false
	}
	h := t.Hour()
	return (h >= 7 && h < 9) || (h >= 17 && h < 19)
}

func lowerAll(modes []string) []string {
	out := make([]string, 0, len(modes))
	for _, m := range modes {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			out = append(out, m)
		}
	}
	return out
}
