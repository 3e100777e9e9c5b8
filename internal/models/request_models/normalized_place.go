package request_models

// NormalizedPlace is the canonical form every later stage works with.
type NormalizedPlace struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Rating    float64  `json:"rating"`
	Reviews   int      `json:"reviews"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	AvgPrice  float64  `json:"avg_price"`
}

func (p NormalizedPlace) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// CandidatePlaces groups the places the itinerary may draw from.
type CandidatePlaces struct {
	Activities  []NormalizedPlace `json:"activities"`
	Restaurants []NormalizedPlace `json:"restaurants"`
	Hotels      []NormalizedPlace `json:"hotels"`
	Transport   []string          `json:"transport"`
}

// Lookup finds a place by id across all candidate lists.
func (c CandidatePlaces) Lookup(id string) (NormalizedPlace, bool) {
	if id == "" {
		return NormalizedPlace{}, false
	}
	for _, list := range [][]NormalizedPlace{c.Activities, c.Restaurants, c.Hotels} {
		for _, p := range list {
			if p.ID == id {
				return p, true
			}
		}
	}
	return NormalizedPlace{}, false
}

// Preferences holds liked/disliked items per category. Transport modes are
// lower-cased and a mode present in both lists only stays in Liked.
type Preferences struct {
	LikedActivities     []NormalizedPlace `json:"liked_activities"`
	DislikedActivities  []NormalizedPlace `json:"disliked_activities"`
	LikedRestaurants    []NormalizedPlace `json:"liked_restaurants"`
	DislikedRestaurants []NormalizedPlace `json:"disliked_restaurants"`
	LikedHotels         []NormalizedPlace `json:"liked_hotels"`
	DislikedHotels      []NormalizedPlace `json:"disliked_hotels"`
	LikedTransport      []string          `json:"liked_transport"`
	DislikedTransport   []string          `json:"disliked_transport"`
}
