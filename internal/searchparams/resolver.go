// Package searchparams turns the raw query string of a storefront search URL
// into a normalized SearchRequest plus the user's filter selections.
package searchparams

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dharmasatrya/travelfront/internal/filter"
	"github.com/dharmasatrya/travelfront/internal/models"
	"github.com/dharmasatrya/travelfront/internal/timeofday"
)

const (
	DefaultAdults   = 1
	DefaultChildren = 0
	DefaultInfants  = 0
)

// Resolve is a pure transform; it never fails. Malformed numeric values fall
// back to defaults, and validity of the resulting request is the fetcher's
// concern.
func Resolve(values url.Values) models.SearchRequest {
	req := models.SearchRequest{
		TripType:   tripType(values.Get("flight_type")),
		Adults:     intOrDefault(values.Get("adults"), DefaultAdults),
		Children:   intOrDefault(values.Get("children"), DefaultChildren),
		Infants:    intOrDefault(values.Get("infants"), DefaultInfants),
		CabinClass: values.Get("cabin_class"),
	}
	if req.CabinClass == "" {
		req.CabinClass = "economy"
	}

	switch req.TripType {
	case models.TripMultiCity:
		req.Legs = resolveLegs(values)
	case models.TripRoundTrip:
		req.Origin = values.Get("origin")
		req.Destination = values.Get("destination")
		req.DepartureDate = values.Get("departure_date")
		req.ReturnDate = values.Get("return_date")
	default:
		req.Origin = values.Get("origin")
		req.Destination = values.Get("destination")
		req.DepartureDate = values.Get("departure_date")
	}

	return req
}

func tripType(s string) models.TripType {
	switch models.TripType(s) {
	case models.TripRoundTrip:
		return models.TripRoundTrip
	case models.TripMultiCity:
		return models.TripMultiCity
	default:
		return models.TripOneWay
	}
}

// resolveLegs scans flights[0][from], flights[1][from], ... and stops at the
// first missing index. The leg count is implicit; a missing index 0 yields
// zero legs and the request fails validation downstream.
func resolveLegs(values url.Values) []models.FlightLeg {
	var legs []models.FlightLeg
	for i := 0; ; i++ {
		from := values.Get(legKey(i, "from"))
		if from == "" {
			break
		}
		legs = append(legs, models.FlightLeg{
			From:          from,
			To:            values.Get(legKey(i, "to")),
			DepartureDate: values.Get(legKey(i, "departure_date")),
		})
	}
	return legs
}

func legKey(i int, field string) string {
	return fmt.Sprintf("flights[%d][%s]", i, field)
}

func intOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// ResolveFilters reads the optional filter selection params. The price range
// is left at the given backend bounds unless the query narrows it.
func ResolveFilters(values url.Values, bounds models.FilterBounds) filter.State {
	state := filter.NewState(bounds)

	if v := values.Get("price_min"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			state.PriceMin = f
		}
	}
	if v := values.Get("price_max"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			state.PriceMax = f
		}
	}

	state.Airlines = splitList(values.Get("airlines"))

	for _, name := range splitList(values.Get("departure_times")) {
		switch b := timeofday.Bucket(name); b {
		case timeofday.Morning, timeofday.Afternoon, timeofday.Evening, timeofday.Night:
			state.DepartureTimes = append(state.DepartureTimes, b)
		}
	}

	for _, name := range splitList(values.Get("stops")) {
		switch b := filter.StopBucket(name); b {
		case filter.StopsNonstop, filter.StopsOne, filter.StopsTwoPlus:
			state.Stops = append(state.Stops, b)
		}
	}

	return state
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
