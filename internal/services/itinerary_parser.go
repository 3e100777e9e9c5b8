package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"smarttravel/internal/models/response_models"
	"smarttravel/pkg/utils"
)

type rawObject = map[string]json.RawMessage

// StripCodeFence removes a leading ```json (or bare ```) fence and a trailing
// ``` fence around a model response.
func StripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(s, "```json"):
		s = s[len("```json"):]
	case strings.HasPrefix(s, "```JSON"):
		s = s[len("```JSON"):]
	case strings.HasPrefix(s, "```"):
		s = s[len("```"):]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseGeneratedItinerary decodes model output. Only broken JSON or a
// non-object document is an error; everything below the top level is read
// leniently and malformed days or entries are dropped.
func ParseGeneratedItinerary(text string) (response_models.GeneratedItinerary, error) {
	var top rawObject
	if err := json.Unmarshal([]byte(StripCodeFence(text)), &top); err != nil {
		return response_models.GeneratedItinerary{}, fmt.Errorf("%w: %v", utils.ErrParse, err)
	}
	if top == nil {
		return response_models.GeneratedItinerary{}, fmt.Errorf("%w: top level is null", utils.ErrParse)
	}

	it := response_models.GeneratedItinerary{
		Destination:   looseString(top["destination"]),
		Guests:        looseInt(top["guests"]),
		DurationDays:  looseInt(top["duration_days"]),
		Reason:        looseString(top["reason"]),
		TotalCost:     looseFloat(top["total_cost"]),
		CostBreakdown: parseCostBreakdown(top["cost_breakdown"]),
		Days:          parseDays(top["days"]),
	}
	if b, ok := utils.LooseBool(top["within_budget"]); ok {
		it.WithinBudget = &b
	}
	return it, nil
}

func parseCostBreakdown(raw json.RawMessage) response_models.CostBreakdown {
	var obj rawObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return response_models.CostBreakdown{}
	}
	return response_models.CostBreakdown{
		Hotels:            looseFloat(obj["hotels"]),
		Activities:        looseFloat(obj["activities"]),
		Meals:             looseFloat(obj["meals"]),
		TransportEstimate: looseFloat(obj["transport_estimate"]),
	}
}

func parseDays(raw json.RawMessage) []response_models.DaySchedule {
	days := []response_models.DaySchedule{}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return days
	}

	for i, item := range items {
		var obj rawObject
		if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
			continue
		}
		day := response_models.DaySchedule{
			Day:        i + 1,
			Activities: parseActivities(obj["activities"]),
		}
		if n, ok := utils.LooseFloat(obj["day"]); ok {
			day.Day = int(n)
		}
		days = append(days, day)
	}
	return days
}

func parseActivities(raw json.RawMessage) []response_models.ActivityEntry {
	entries := []response_models.ActivityEntry{}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return entries
	}

	for _, item := range items {
		var obj rawObject
		if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
			continue
		}
		entries = append(entries, parseActivity(obj))
	}
	return entries
}

func parseActivity(obj rawObject) response_models.ActivityEntry {
	a := response_models.ActivityEntry{
		StartTime:   looseString(obj["start_time"]),
		EndTime:     looseString(obj["end_time"]),
		Type:        strings.ToLower(strings.TrimSpace(looseString(obj["type"]))),
		PlaceName:   looseString(obj["place_name"]),
		Description: looseString(obj["description"]),
		Cost:        looseFloat(obj["cost"]),
	}
	if id := strings.TrimSpace(looseString(obj["place_id"])); id != "" {
		a.PlaceID = &id
	}
	if mode := strings.TrimSpace(looseString(obj["transport_mode"])); mode != "" {
		a.TransportMode = &mode
	}
	if d, ok := utils.LooseFloat(obj["distance_km"]); ok {
		a.DistanceKM = &d
	}
	if m, ok := utils.LooseFloat(obj["travel_time_min"]); ok {
		minutes := int(math.Round(m))
		a.TravelTimeMin = &minutes
	}
	return a
}

func looseString(raw json.RawMessage) string {
	s, _ := utils.LooseString(raw)
	return s
}

func looseFloat(raw json.RawMessage) float64 {
	f, _ := utils.LooseFloat(raw)
	return f
}

func looseInt(raw json.RawMessage) int {
	return int(looseFloat(raw))
}
