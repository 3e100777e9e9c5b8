package response_models

type FlightStop struct {
	IATA      string `json:"iata"`
	Name      string `json:"name"`
	Arrival   string `json:"arrival"`
	Departure string `json:"departure"`
}

type SimplifiedFlight struct {
	Airline    string       `json:"airline"`
	FlightCode string       `json:"flight_code"`
	DepIATA    string       `json:"dep_iata"`
	ArrIATA    string       `json:"arr_iata"`
	DepAirport string       `json:"dep_airport"`
	ArrAirport string       `json:"arr_airport"`
	DepTime    string       `json:"dep_time"`
	ArrTime    string       `json:"arr_time"`
	Price      string       `json:"price"`
	Currency   string       `json:"currency"`
	Stops      []FlightStop `json:"stops"`
}

const (
	FlightSourceAmadeus     = "amadeus"
	FlightSourceMock        = "mock"
	FlightSourceUnavailable = "unavailable"
)

type FlightSearchResult struct {
	From     string                        `json:"from"`
	To       string                        `json:"to"`
	Date     string                        `json:"date"`
	Source   string                        `json:"source"`
	Total    int                           `json:"total"`
	Airlines map[string][]SimplifiedFlight `json:"airlines"`
}
