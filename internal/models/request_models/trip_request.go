package request_models

import (
	"encoding/json"
	"strings"

	"smarttravel/pkg/utils"
)

type TripRequest struct {
	CityName          string `json:"destination_city_name"`
	CityNameAlias     string `json:"city_name"`
	DestinationCityID string `json:"destination_city_id"`

	GuestCount   int     `json:"guest_count" binding:"min=1,max=20"`
	DurationDays int     `json:"duration_days" binding:"min=1,max=30"`
	TargetBudget float64 `json:"target_budget" binding:"min=0"`
	UserID       string  `json:"user_id"`
	CurrentDay   int     `json:"current_day" binding:"min=1,max=30"`

	Activities  []PlaceData `json:"activities"`
	Restaurants []PlaceData `json:"restaurants"`
	Hotels      []PlaceData `json:"hotels"`
	Transport   []string    `json:"transport"`

	LikedActivities     []PlaceData `json:"liked_activities"`
	DislikedActivities  []PlaceData `json:"disliked_activities"`
	LikedRestaurants    []PlaceData `json:"liked_restaurants"`
	DislikedRestaurants []PlaceData `json:"disliked_restaurants"`
	LikedHotels         []PlaceData `json:"liked_hotels"`
	DislikedHotels      []PlaceData `json:"disliked_hotels"`
	LikedTransport      []string    `json:"liked_transport"`
	DislikedTransport   []string    `json:"disliked_transport"`
}

// NewTripRequest returns a request pre-filled with defaults; binding JSON on
// top of it only overrides the fields the caller sent.
func NewTripRequest() TripRequest {
	return TripRequest{
		GuestCount:   1,
		DurationDays: 3,
		TargetBudget: 1000,
		CurrentDay:   1,
	}
}

// DestinationName picks the first non-blank of destination_city_name,
// city_name and the legacy destination_city_id.
func (r *TripRequest) DestinationName() string {
	for _, v := range []string{r.CityName, r.CityNameAlias, r.DestinationCityID} {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// FillEmptyLists replaces JSON nulls with empty lists.
func (r *TripRequest) FillEmptyLists() {
	for _, l := range []*[]PlaceData{
		&r.Activities, &r.Restaurants, &r.Hotels,
		&r.LikedActivities, &r.DislikedActivities,
		&r.LikedRestaurants, &r.DislikedRestaurants,
		&r.LikedHotels, &r.DislikedHotels,
	} {
		if *l == nil {
			*l = []PlaceData{}
		}
	}
	for _, l := range []*[]string{&r.Transport, &r.LikedTransport, &r.DislikedTransport} {
		if *l == nil {
			*l = []string{}
		}
	}
}

// HasCandidates reports whether at least one candidate place was supplied.
func (r *TripRequest) HasCandidates() bool {
	return len(r.Activities) > 0 || len(r.Restaurants) > 0 || len(r.Hotels) > 0
}

// PlaceData is a candidate place exactly as the caller sent it.
type PlaceData struct {
	ID        utils.FlexString `json:"id,omitempty"`
	PlaceID   utils.FlexString `json:"place_id,omitempty"`
	Name      PlaceName        `json:"name"`
	Category  string           `json:"category,omitempty"`
	Rating    utils.FlexFloat  `json:"rating"`
	Reviews   utils.FlexInt    `json:"reviews"`
	Latitude  *float64         `json:"latitude,omitempty"`
	Longitude *float64         `json:"longitude,omitempty"`
	AvgPrice  interface{}      `json:"avg_price,omitempty"`
}

// PlaceName accepts either "Name" or {"text": "Name", "languageCode": "en"}.
type PlaceName struct {
	Text         string
	LanguageCode string
	structured   bool
}

func NewPlaceName(text string) PlaceName {
	return PlaceName{Text: text}
}

func (n *PlaceName) UnmarshalJSON(data []byte) error {
	if s, ok := utils.LooseString(data); ok {
		*n = PlaceName{Text: s}
		return nil
	}
	var obj struct {
		Text         string `json:"text"`
		LanguageCode string `json:"languageCode"`
		LangSnake    string `json:"language_code"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		*n = PlaceName{}
		return nil
	}
	lang := obj.LanguageCode
	if lang == "" {
		lang = obj.LangSnake
	}
	*n = PlaceName{Text: obj.Text, LanguageCode: lang, structured: true}
	return nil
}

func (n PlaceName) MarshalJSON() ([]byte, error) {
	if !n.structured {
		return json.Marshal(n.Text)
	}
	return json.Marshal(struct {
		Text         string `json:"text"`
		LanguageCode string `json:"languageCode,omitempty"`
	}{n.Text, n.LanguageCode})
}
