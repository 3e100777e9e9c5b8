package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"smarttravel/internal/models/request_models"
	"smarttravel/pkg/utils"
)

const (
	minPlaceRating     = 3.5
	relaxedPlaceRating = 3.0
)

type BudgetBreakdown struct {
	Total           float64
	PerDay          float64
	PerPerson       float64
	PerPersonPerDay float64
	Days            int
	Guests          int
}

// ComputeBudgetBreakdown splits the trip budget. Days and guests are clamped
// to at least 1.
func ComputeBudgetBreakdown(budget float64, days, guests int) BudgetBreakdown {
	days = max(days, 1)
	guests = max(guests, 1)
	return BudgetBreakdown{
		Total:           budget,
		PerDay:          budget / float64(days),
		PerPerson:       budget / float64(guests),
		PerPersonPerDay: budget / float64(days*guests),
		Days:            days,
		Guests:          guests,
	}
}

// RoomsNeeded assumes two guests per room.
func RoomsNeeded(guests int) int {
	return max(1, (guests+1)/2)
}

type PromptInput struct {
	Destination string
	Days        int
	Guests      int
	Budget      float64
	Candidates  request_models.CandidatePlaces
	Preferences request_models.Preferences
}

// BuildItineraryPrompt renders the generation prompt. Same input, same output.
func BuildItineraryPrompt(in PromptInput) string {
	b := ComputeBudgetBreakdown(in.Budget, in.Days, in.Guests)
	prefs := in.Preferences
	likedModes := compactJSON(prefs.LikedTransport)
	dislikedModes := compactJSON(prefs.DislikedTransport)

	var sb strings.Builder

	fmt.Fprintf(&sb, "You are an expert travel planner. Create a detailed, personalized %d-day itinerary for %s.\n\n", b.Days, in.Destination)

	sb.WriteString("AVAILABLE DATA (use ONLY these places):\n\n")
	fmt.Fprintf(&sb, "Activities (%d available):\n%s\n\n", len(in.Candidates.Activities), indentJSON(promptPlaces(in.Candidates.Activities)))
	fmt.Fprintf(&sb, "Restaurants (%d available):\n%s\n\n", len(in.Candidates.Restaurants), indentJSON(promptPlaces(in.Candidates.Restaurants)))
	fmt.Fprintf(&sb, "Hotels (%d available):\n%s\n\n", len(in.Candidates.Hotels), indentJSON(promptPlaces(in.Candidates.Hotels)))
	if len(in.Candidates.Transport) > 0 {
		fmt.Fprintf(&sb, "Available transport modes: %s\n\n", compactJSON(in.Candidates.Transport))
	}

	sb.WriteString("DATA NOTES:\n")
	sb.WriteString("- Each place has: id, name, category, rating, reviews, avg_price and optional latitude/longitude\n")
	sb.WriteString("- Use 'id' as the place_id in your output\n")
	sb.WriteString("- 'avg_price' is already normalized to USD\n\n")

	sb.WriteString("USER PREFERENCES:\n")
	sb.WriteString("LIKED (prioritize these):\n")
	fmt.Fprintf(&sb, "- Activities: %s\n", placeRefs(prefs.LikedActivities))
	fmt.Fprintf(&sb, "- Restaurants: %s\n", placeRefs(prefs.LikedRestaurants))
	fmt.Fprintf(&sb, "- Hotels: %s\n", placeRefs(prefs.LikedHotels))
	fmt.Fprintf(&sb, "- Transport Modes: %s\n", likedModes)
	sb.WriteString("DISLIKED (avoid these completely):\n")
	fmt.Fprintf(&sb, "- Activities: %s\n", placeRefs(prefs.DislikedActivities))
	fmt.Fprintf(&sb, "- Restaurants: %s\n", placeRefs(prefs.DislikedRestaurants))
	fmt.Fprintf(&sb, "- Hotels: %s\n", placeRefs(prefs.DislikedHotels))
	fmt.Fprintf(&sb, "- Transport Modes: %s\n\n", dislikedModes)

	sb.WriteString("BUDGET BREAKDOWN:\n")
	fmt.Fprintf(&sb, "- Total Budget: $%.2f USD for %d guests for %d days\n", b.Total, b.Guests, b.Days)
	fmt.Fprintf(&sb, "- Daily Budget: $%.2f USD per day\n", b.PerDay)
	fmt.Fprintf(&sb, "- Per Person Budget: $%.2f USD per person for the entire trip\n", b.PerPerson)
	fmt.Fprintf(&sb, "- Daily Per Person: $%.2f USD per person per day\n\n", b.PerPersonPerDay)

	sb.WriteString("PLANNING RULES:\n\n")

	sb.WriteString("1) BUDGET:\n")
	fmt.Fprintf(&sb, "- Stay WITHIN $%.2f USD in total and do not exceed $%.2f USD per day\n", b.Total, b.PerDay)
	sb.WriteString("- Hotels: price_per_night x nights x rooms_needed\n")
	sb.WriteString("- Activities and restaurants: price x guests\n")
	sb.WriteString("- Transport is recalculated after planning from real distances\n\n")

	sb.WriteString("2) GROUP SIZE:\n")
	fmt.Fprintf(&sb, "- Planning for %d people\n", b.Guests)
	fmt.Fprintf(&sb, "- Hotel rooms needed: %d (at most 2 people per room)\n\n", RoomsNeeded(b.Guests))

	sb.WriteString("3) DURATION:\n")
	fmt.Fprintf(&sb, "- Plan every day from day 1 to day %d\n", b.Days)
	sb.WriteString("- Each day should have 6-10 entries including meals, transfers and rest\n\n")

	sb.WriteString("4) MEALS & REST:\n")
	sb.WriteString("- Breakfast 07:00-08:30, Lunch 12:00-13:00, Dinner 18:30-19:30\n")
	sb.WriteString("- At least one 15-30 min rest period per day\n\n")

	sb.WriteString("5) TRANSPORT (priority order):\n")
	fmt.Fprintf(&sb, "- FIRST: use liked transport modes %s for all transfers when any are given\n", likedModes)
	fmt.Fprintf(&sb, "- NEVER use disliked transport modes %s\n", dislikedModes)
	fmt.Fprintf(&sb, "- Default mode is %q when no preference is given\n", DefaultTransitMode)
	sb.WriteString("- Use simple lower-case modes: \"taxi\", \"bus\", \"walk\", \"bike\", \"metro\"\n\n")

	sb.WriteString("6) SELECTION:\n")
	sb.WriteString("- Completely exclude every disliked item\n")
	sb.WriteString("- Prioritize liked items when they fit the budget\n")
	sb.WriteString("- Without preferences pick by highest rating, then lowest cost\n")
	fmt.Fprintf(&sb, "- Minimum rating %.1f (relax to %.1f if options are limited)\n", minPlaceRating, relaxedPlaceRating)
	sb.WriteString("- No duplicate places within the same day\n")
	sb.WriteString("- If the budget cannot be met, still return a plan with \"within_budget\": false and a \"reason\"\n\n")

	sb.WriteString("7) TRANSFERS:\n")
	sb.WriteString("- Insert a \"transfer\" entry between every two consecutive non-transfer entries\n")
	sb.WriteString("- Transfers have place_id null; distance_km and travel_time_min may be estimates or null\n\n")

	sb.WriteString("8) OUTPUT:\n")
	sb.WriteString("- Entries sorted by start_time, times in HH:MM 24h format, no overlaps\n")
	sb.WriteString("- type is one of \"activity\", \"meal\", \"hotel\", \"transfer\"\n\n")

	sb.WriteString("Return ONLY valid JSON in this EXACT format:\n")
	sb.WriteString(exampleItinerary(in.Destination, b.Guests, b.Days))
	sb.WriteString("\n")

	return sb.String()
}

func exampleItinerary(destination string, guests, days int) string {
	return fmt.Sprintf(`{
  "destination": %s,
  "guests": %d,
  "duration_days": %d,
  "within_budget": true,
  "total_cost": 0,
  "cost_breakdown": {"hotels": 0, "activities": 0, "meals": 0, "transport_estimate": 0},
  "days": [
    {
      "day": 1,
      "activities": [
        {"start_time": "09:00", "end_time": "10:30", "type": "activity", "place_id": "activity_123", "place_name": "Example Activity", "description": "What to do there", "transport_mode": null, "distance_km": null, "travel_time_min": null, "cost": 15.00},
        {"start_time": "10:30", "end_time": "10:50", "type": "transfer", "place_id": null, "place_name": "Transfer by Taxi", "description": "Moving to next location", "transport_mode": "taxi", "distance_km": 2.5, "travel_time_min": 20, "cost": 5.00},
        {"start_time": "12:00", "end_time": "13:00", "type": "meal", "place_id": "restaurant_456", "place_name": "Example Restaurant", "description": "Lunch", "transport_mode": null, "distance_km": null, "travel_time_min": null, "cost": 25.00}
      ]
    }
  ]
}`, compactJSON(destination), guests, days)
}

func placeRefs(places []request_models.NormalizedPlace) string {
	refs := make([]map[string]string, 0, len(places))
	for _, p := range places {
		refs = append(refs, map[string]string{"id": p.ID, "name": p.Name})
	}
	return compactJSON(refs)
}

// promptPlaces zeroes non-finite numbers so a single bad place cannot make a
// whole candidate list unencodable.
func promptPlaces(places []request_models.NormalizedPlace) []request_models.NormalizedPlace {
	out := make([]request_models.NormalizedPlace, len(places))
	for i, p := range places {
		p.Rating = finiteOrZero(p.Rating)
		p.AvgPrice = finiteOrZero(p.AvgPrice)
		if p.Latitude != nil && utils.IsNonFinite(*p.Latitude) {
			p.Latitude = nil
		}
		if p.Longitude != nil && utils.IsNonFinite(*p.Longitude) {
			p.Longitude = nil
		}
		out[i] = p
	}
	return out
}

func indentJSON(v interface{}) string {
	return encodeJSON(v, "  ")
}

func compactJSON(v interface{}) string {
	return encodeJSON(v, "")
}

func encodeJSON(v interface{}, indent string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return strings.TrimRight(buf.String(), "\n")
}
