package models

type TripType string

const (
	TripOneWay    TripType = "one_way"
	TripRoundTrip TripType = "round_trip"
	TripMultiCity TripType = "multi_city"
)

type FlightLeg struct {
	From          string `json:"from"`
	To            string `json:"to"`
	DepartureDate string `json:"departure_date"`
}

type SearchRequest struct {
	TripType      TripType    `json:"flight_type"`
	Origin        string      `json:"origin,omitempty"`
	Destination   string      `json:"destination,omitempty"`
	DepartureDate string      `json:"departure_date,omitempty"`
	ReturnDate    string      `json:"return_date,omitempty"`
	Legs          []FlightLeg `json:"flights,omitempty"`
	Adults        int         `json:"adults"`
	Children      int         `json:"children"`
	Infants       int         `json:"infants"`
	CabinClass    string      `json:"cabin_class"`
}

func (r *SearchRequest) Validate() error {
	switch r.TripType {
	case TripMultiCity:
		if len(r.Legs) == 0 {
			return ErrMissingParameters
		}
	default:
		if r.Origin == "" {
			return ErrMissingParameters
		}
	}
	if r.Adults <= 0 {
		r.Adults = 1
	}
	if r.Children < 0 {
		r.Children = 0
	}
	if r.Infants < 0 {
		r.Infants = 0
	}
	if r.CabinClass == "" {
		r.CabinClass = "economy"
	}
	return nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingParameters ValidationError = "missing required search parameters"
)
