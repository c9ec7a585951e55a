package filter

import (
	"sort"
	"strings"

	"github.com/dharmasatrya/travelfront/internal/models"
	"github.com/dharmasatrya/travelfront/internal/ranking"
	"github.com/dharmasatrya/travelfront/internal/timeofday"
)

type StopBucket string

const (
	StopsNonstop StopBucket = "nonstop"
	StopsOne     StopBucket = "1stop"
	StopsTwoPlus StopBucket = "2plus"
)

// State holds the user's filter selections. The price range is always
// active; the set-valued stages only apply when non-empty.
type State struct {
	PriceMin       float64
	PriceMax       float64
	Airlines       []string
	DepartureTimes []timeofday.Bucket
	Stops          []StopBucket
}

// NewState seeds a filter state from the backend-reported price bounds.
// Building a State any other way risks a zero range that excludes everything.
func NewState(bounds models.FilterBounds) State {
	return State{
		PriceMin: bounds.Min,
		PriceMax: bounds.Max,
	}
}

// Apply returns the results that pass every active stage. The input slice is
// never mutated; a fresh slice is produced on each call.
func Apply(results []models.FlightResult, state State) []models.FlightResult {
	filtered := make([]models.FlightResult, 0, len(results))
	for _, r := range results {
		if matches(r, state) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func matches(r models.FlightResult, state State) bool {
	if r.Price.Amount < state.PriceMin || r.Price.Amount > state.PriceMax {
		return false
	}

	if len(state.Airlines) > 0 && !matchesAirline(r, state.Airlines) {
		return false
	}

	if len(state.DepartureTimes) > 0 && !matchesDepartureTime(r, state.DepartureTimes) {
		return false
	}

	if len(state.Stops) > 0 && !matchesStops(r, state.Stops) {
		return false
	}

	return true
}

func matchesAirline(r models.FlightResult, selected []string) bool {
	for _, code := range r.Airlines {
		for _, want := range selected {
			if strings.EqualFold(code, want) {
				return true
			}
		}
	}
	return false
}

// matchesDepartureTime buckets the first segment's departure clock. Results
// whose clock string cannot be parsed never match an active time filter.
func matchesDepartureTime(r models.FlightResult, selected []timeofday.Bucket) bool {
	if len(r.Segments) == 0 {
		return false
	}
	hour, _, err := timeofday.ParseClock(r.Segments[0].DepartureTime)
	if err != nil {
		return false
	}
	bucket := timeofday.BucketFor(hour)
	for _, want := range selected {
		if bucket == want {
			return true
		}
	}
	return false
}

func matchesStops(r models.FlightResult, selected []StopBucket) bool {
	if len(r.Segments) == 0 {
		return false
	}
	bucket := stopBucketFor(r.Segments[0].Stops)
	for _, want := range selected {
		if bucket == want {
			return true
		}
	}
	return false
}

func stopBucketFor(stops int) StopBucket {
	switch {
	case stops <= 0:
		return StopsNonstop
	case stops == 1:
		return StopsOne
	default:
		return StopsTwoPlus
	}
}

// Sort orders a filtered view in place and returns it. best_value scores the
// slice first; unknown keys fall back to price ascending.
func Sort(results []models.FlightResult, sortBy, sortOrder string) []models.FlightResult {
	if len(results) == 0 {
		return results
	}

	if strings.ToLower(sortBy) == "best_value" {
		results = ranking.CalculateScores(results)
	}

	ascending := strings.ToLower(sortOrder) != "desc"

	switch strings.ToLower(sortBy) {
	case "duration":
		sort.Slice(results, func(i, j int) bool {
			if ascending {
				return results[i].DurationMinutes < results[j].DurationMinutes
			}
			return results[i].DurationMinutes > results[j].DurationMinutes
		})

	case "stops":
		sort.Slice(results, func(i, j int) bool {
			si, sj := firstSegmentStops(results[i]), firstSegmentStops(results[j])
			if ascending {
				return si < sj
			}
			return si > sj
		})

	case "best_value":
		sort.Slice(results, func(i, j int) bool {
			if ascending {
				return results[i].BestValueScore < results[j].BestValueScore
			}
			return results[i].BestValueScore > results[j].BestValueScore
		})

	default:
		sort.Slice(results, func(i, j int) bool {
			if ascending {
				return results[i].Price.Amount < results[j].Price.Amount
			}
			return results[i].Price.Amount > results[j].Price.Amount
		})
	}

	return results
}

func firstSegmentStops(r models.FlightResult) int {
	if len(r.Segments) == 0 {
		return 0
	}
	return r.Segments[0].Stops
}
