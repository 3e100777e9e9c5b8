package response_models

type TourInfo struct {
	TourID             string  `json:"tour_id"`
	UserID             string  `json:"user_id"`
	StartCity          string  `json:"start_city"`
	DestinationCity    string  `json:"destination_city"`
	DurationDays       int     `json:"duration_days"`
	GuestCount         int     `json:"guest_count"`
	CurrentDay         int     `json:"current_day"`
	Budget             float64 `json:"budget"`
	TotalEstimatedCost float64 `json:"total_estimated_cost"`
	GeneratedBy        string  `json:"generated_by"`
	WithinBudget       *bool   `json:"within_budget,omitempty"`
	FallbackReason     string  `json:"fallback_reason,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

type ItinerarySummary struct {
	TotalDays       int            `json:"total_days"`
	TotalActivities int            `json:"total_activities"`
	CostPerPerson   float64        `json:"cost_per_person"`
	BudgetUtilized  float64        `json:"budget_utilized"`
	CostBreakdown   *CostBreakdown `json:"cost_breakdown,omitempty"`
}

type RecommendationData struct {
	TourInfo  TourInfo         `json:"tour_info"`
	Itinerary []DaySchedule    `json:"itinerary"`
	Summary   ItinerarySummary `json:"summary"`
}

// NewRecommendationData shapes a tour for the HTTP envelope.
func NewRecommendationData(tour TourResult, currentDay int, createdAt string) RecommendationData {
	summary := ItinerarySummary{
		TotalDays:       tour.DurationDays,
		TotalActivities: tour.ActivityCount(),
		CostBreakdown:   tour.CostBreakdown,
	}
	if tour.GuestCount > 0 {
		summary.CostPerPerson = tour.TotalEstimatedCost / float64(tour.GuestCount)
	}
	if tour.Budget > 0 {
		summary.BudgetUtilized = tour.TotalEstimatedCost / tour.Budget * 100
	}

	return RecommendationData{
		TourInfo: TourInfo{
			TourID:             tour.TourID,
			UserID:             tour.UserID,
			StartCity:          tour.StartCity,
			DestinationCity:    tour.DestinationCity,
			DurationDays:       tour.DurationDays,
			GuestCount:         tour.GuestCount,
			CurrentDay:         currentDay,
			Budget:             tour.Budget,
			TotalEstimatedCost: tour.TotalEstimatedCost,
			GeneratedBy:        tour.GeneratedBy,
			WithinBudget:       tour.WithinBudget,
			FallbackReason:     tour.FallbackReason,
			CreatedAt:          createdAt,
		},
		Itinerary: tour.Schedule,
		Summary:   summary,
	}
}

type HealthResponse struct {
	Status    string          `json:"status"`
	Version   string          `json:"version"`
	Timestamp string          `json:"timestamp"`
	GeminiAI  map[string]bool `json:"gemini_ai"`
	Database  map[string]any  `json:"database"`
	Message   string          `json:"message,omitempty"`
}
