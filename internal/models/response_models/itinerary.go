package response_models

const (
	ActivityTypeActivity = "activity"
	ActivityTypeMeal     = "meal"
	ActivityTypeHotel    = "hotel"
	ActivityTypeTransfer = "transfer"
)

// Provenance tags carried in TourResult.GeneratedBy.
const (
	GeneratedByModel    = "gemini_ai"
	GeneratedByFallback = "fallback"
)

type CostBreakdown struct {
	Hotels            float64 `json:"hotels"`
	Activities        float64 `json:"activities"`
	Meals             float64 `json:"meals"`
	TransportEstimate float64 `json:"transport_estimate"`
}

type ActivityEntry struct {
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	Type          string   `json:"type"`
	PlaceID       *string  `json:"place_id"`
	PlaceName     string   `json:"place_name"`
	Description   string   `json:"description"`
	TransportMode *string  `json:"transport_mode"`
	DistanceKM    *float64 `json:"distance_km"`
	TravelTimeMin *int     `json:"travel_time_min"`
	Cost          float64  `json:"cost"`
}

func (a ActivityEntry) IsTransfer() bool {
	return a.Type == ActivityTypeTransfer
}

// Mode returns the transport mode or "" when none is set.
func (a ActivityEntry) Mode() string {
	if a.TransportMode == nil {
		return ""
	}
	return *a.TransportMode
}

type DaySchedule struct {
	Day        int             `json:"day"`
	Activities []ActivityEntry `json:"activities"`
}

// GeneratedItinerary is the decoded model output.
type GeneratedItinerary struct {
	Destination   string        `json:"destination"`
	Guests        int           `json:"guests"`
	DurationDays  int           `json:"duration_days"`
	WithinBudget  *bool         `json:"within_budget,omitempty"`
	Reason        string        `json:"reason,omitempty"`
	TotalCost     float64       `json:"total_cost"`
	CostBreakdown CostBreakdown `json:"cost_breakdown"`
	Days          []DaySchedule `json:"days"`
}

type TourResult struct {
	TourID             string         `json:"tour_id"`
	UserID             string         `json:"user_id"`
	StartCity          string         `json:"start_city"`
	DestinationCity    string         `json:"destination_city"`
	DurationDays       int            `json:"duration_days"`
	GuestCount         int            `json:"guest_count"`
	Budget             float64        `json:"budget"`
	TotalEstimatedCost float64        `json:"total_estimated_cost"`
	Schedule           []DaySchedule  `json:"schedule"`
	GeneratedBy        string         `json:"generated_by"`
	WithinBudget       *bool          `json:"within_budget,omitempty"`
	CostBreakdown      *CostBreakdown `json:"cost_breakdown,omitempty"`
	FallbackReason     string         `json:"fallback_reason,omitempty"`
}

// ActivityCount is the number of entries across all days.
func (t TourResult) ActivityCount() int {
	n := 0
	for _, d := range t.Schedule {
		n += len(d.Activities)
	}
	return n
}
