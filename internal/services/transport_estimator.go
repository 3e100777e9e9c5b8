package services

import (
	"math"
	"strings"
	"sync"
)

const (
	earthRadiusKm      = 6371.0
	defaultSpeedKmh    = 30.0
	defaultCostPerKm   = 1.0
	rushHourSlowdown   = 0.8
	baseBufferMin      = 10
	motorBufferMin     = 5
	longTripBufferMin  = 10
	longTripKm         = 20.0
	minTravelMin       = 5
	minMotorisedCost   = 1.0
	DefaultTransitMode = "taxi"
)

type transportProfile struct {
	speedKmh float64
	// rushHour modes lose 20% speed in peak traffic.
	rushHour bool
	// motorBuffer modes add boarding/parking time on top of the base buffer.
	motorBuffer bool
	costPerKm   float64
	// fixedCost modes are priced per trip, not per km.
	fixedCost bool
}

var transportProfiles = sync.OnceValue(func() map[string]transportProfile {
	return map[string]transportProfile{
		"walk":       {speedKmh: 4, costPerKm: 0, fixedCost: true},
		"bike":       {speedKmh: 12, costPerKm: 2, fixedCost: true},
		"bicycle":    {speedKmh: 12, costPerKm: 2, fixedCost: true},
		"scooter":    {speedKmh: 25, rushHour: true, motorBuffer: true, costPerKm: 0.5},
		"motorcycle": {speedKmh: 25, rushHour: true, motorBuffer: true, costPerKm: 0.5},
		"motorbike":  {speedKmh: 25, rushHour: true, costPerKm: 0.5},
		"taxi":       {speedKmh: 30, rushHour: true, motorBuffer: true, costPerKm: 1.2},
		"grab":       {speedKmh: 30, rushHour: true, motorBuffer: true, costPerKm: 1.0},
		"uber":       {speedKmh: 30, rushHour: true, costPerKm: 1.0},
		"bus":        {speedKmh: 25, motorBuffer: true, costPerKm: 0.3},
		"metro":      {speedKmh: 35, motorBuffer: true, costPerKm: 0.4},
		"subway":     {speedKmh: 35, costPerKm: 0.4},
		"train":      {speedKmh: 40, costPerKm: 0.5},
		"car":        {speedKmh: 30, rushHour: true, motorBuffer: true, costPerKm: 1.0},
		"ojek":       {speedKmh: 25, costPerKm: 0.4},
		"grabbike":   {speedKmh: 25, costPerKm: 0.4},
		"rickshaw":   {speedKmh: 10, costPerKm: 0.6},
		"cyclo":      {speedKmh: 10, costPerKm: 0.6},
		"tricycle":   {speedKmh: 15, costPerKm: 0.5},
		"ferry":      {speedKmh: 20, costPerKm: 2.0},
		"boat":       {speedKmh: 20, costPerKm: 2.0},
		"ship":       {speedKmh: 25, costPerKm: 3.0},
	}
})

func lookupProfile(mode string) (transportProfile, bool) {
	p, ok := transportProfiles()[strings.ToLower(strings.TrimSpace(mode))]
	return p, ok
}

// Haversine returns the great-circle distance in km.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// TravelTime estimates door-to-door minutes for a leg, never less than 5.
func TravelTime(distanceKm float64, mode string, rushHour bool) int {
	speed := defaultSpeedKmh
	profile, known := lookupProfile(mode)
	if known {
		speed = profile.speedKmh
		if rushHour && profile.rushHour {
			speed *= rushHourSlowdown
		}
	}

	buffer := baseBufferMin
	if known && profile.motorBuffer {
		buffer += motorBufferMin
	}
	if distanceKm > longTripKm {
		buffer += longTripBufferMin
	}

	total := int(math.Ceil(distanceKm/speed*60 + float64(buffer)))
	if total < minTravelMin {
		return minTravelMin
	}
	return total
}

// TransportCost prices a leg in USD. Fixed-price modes ignore distance; the
// rest are per km, rounded to one decimal with a $1 floor.
func TransportCost(distanceKm float64, mode string) float64 {
	rate := defaultCostPerKm
	if profile, ok := lookupProfile(mode); ok {
		if profile.fixedCost {
			return profile.costPerKm
		}
		rate = profile.costPerKm
	}
	return roundTo(math.Max(rate*distanceKm, minMotorisedCost), 1)
}

// FallbackDistance is the assumed leg length when no coordinates are known.
func FallbackDistance(mode string) float64 {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "walk":
		return 1.0
	case "bike", "bicycle":
		return 3.0
	case "scooter", "motorcycle", "taxi", "grab":
		return 5.0
	default:
		return 8.0
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
