package models

import "encoding/json"

type Segment struct {
	FromAirport   string `json:"from_airport"`
	FromCity      string `json:"from_city,omitempty"`
	ToAirport     string `json:"to_airport"`
	ToCity        string `json:"to_city,omitempty"`
	DepartureDate string `json:"departure_date"`
	DepartureTime string `json:"departure_time"`
	ArrivalDate   string `json:"arrival_date"`
	ArrivalTime   string `json:"arrival_time"`
	Stops         int    `json:"stops"`
}

type Price struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted"`
}

// FlightResult is a normalized itinerary from the inventory backend. It is
// immutable once fetched; the filter engine only ever reads it.
type FlightResult struct {
	ID              string          `json:"id"`
	Segments        []Segment       `json:"segments"`
	Price           Price           `json:"price"`
	Airlines        []string        `json:"airlines"`
	DurationMinutes int             `json:"duration_minutes,omitempty"`
	CabinClass      string          `json:"cabin_class,omitempty"`
	Offer           json.RawMessage `json:"offer,omitempty"`
	BestValueScore  float64         `json:"best_value_score,omitempty"`
}

// FilterBounds is the backend-reported price range for a result set. Filter
// state has to be seeded from it before any filtering happens; a zero-valued
// range would exclude every result.
type FilterBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
