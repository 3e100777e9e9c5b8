package services

import (
	"smarttravel/internal/models/response_models"
)

const (
	fallbackDistanceKm = 5.0
	fallbackTravelMin  = 30
	fallbackLegCost    = 6.0
	FallbackReason     = "Gemini AI unavailable"
)

type FallbackInput struct {
	UserID      string
	Destination string
	Days        int
	Guests      int
	Budget      float64
	Reason      string
}

// BuildFallbackTour returns the fixed one-transfer-per-day itinerary used when
// generation or parsing fails.
func BuildFallbackTour(in FallbackInput) response_models.TourResult {
	days := max(in.Days, 1)
	schedule := make([]response_models.DaySchedule, 0, days)
	for d := 1; d <= days; d++ {
		mode := DefaultTransitMode
		distance := fallbackDistanceKm
		minutes := fallbackTravelMin
		schedule = append(schedule, response_models.DaySchedule{
			Day: d,
			Activities: []response_models.ActivityEntry{{
				StartTime:     "09:00",
				EndTime:       "09:30",
				Type:          response_models.ActivityTypeTransfer,
				PlaceName:     "Transfer by taxi",
				Description:   "Travel to the first destination of the day",
				TransportMode: &mode,
				DistanceKM:    &distance,
				TravelTimeMin: &minutes,
				Cost:          fallbackLegCost,
			}},
		})
	}

	reason := in.Reason
	if reason == "" {
		reason = FallbackReason
	}

	return response_models.TourResult{
		TourID:             TourID(response_models.GeneratedByFallback, in.UserID, in.Destination, days),
		UserID:             in.UserID,
		StartCity:          in.Destination,
		DestinationCity:    in.Destination,
		DurationDays:       days,
		GuestCount:         in.Guests,
		Budget:             in.Budget,
		TotalEstimatedCost: 0,
		Schedule:           schedule,
		GeneratedBy:        response_models.GeneratedByFallback,
		FallbackReason:     reason,
	}
}
