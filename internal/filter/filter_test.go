package filter

import (
	"reflect"
	"testing"

	"github.com/dharmasatrya/travelfront/internal/models"
	"github.com/dharmasatrya/travelfront/internal/timeofday"
)

func result(id string, price float64, airlines []string, depTime string, stops int) models.FlightResult {
	return models.FlightResult{
		ID: id,
		Segments: []models.Segment{{
			FromAirport:   "DAC",
			ToAirport:     "DXB",
			DepartureTime: depTime,
			Stops:         stops,
		}},
		Price:    models.Price{Amount: price, Currency: "USD"},
		Airlines: airlines,
	}
}

func ids(results []models.FlightResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func TestApply_PriceBoundsInclusive(t *testing.T) {
	results := []models.FlightResult{
		result("below", 99, nil, "9:00 AM", 0),
		result("at-min", 100, nil, "9:00 AM", 0),
		result("inside", 250, nil, "9:00 AM", 0),
		result("at-max", 400, nil, "9:00 AM", 0),
		result("above", 401, nil, "9:00 AM", 0),
	}
	state := NewState(models.FilterBounds{Min: 100, Max: 400})

	got := ids(Apply(results, state))
	want := []string{"at-min", "inside", "at-max"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply = %v, want %v", got, want)
	}
}

func TestApply_EmptyAirlineSetIsNoOp(t *testing.T) {
	results := []models.FlightResult{
		result("a", 100, []string{"BG"}, "9:00 AM", 0),
		result("b", 500, []string{"EK"}, "9:00 AM", 0),
	}
	state := NewState(models.FilterBounds{Min: 0, Max: 200})

	got := ids(Apply(results, state))
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Apply = %v, want [a]", got)
	}
}

func TestApply_AirlineStage(t *testing.T) {
	results := []models.FlightResult{
		result("bg", 100, []string{"BG"}, "9:00 AM", 0),
		result("ek", 100, []string{"EK"}, "9:00 AM", 0),
		result("codeshare", 100, []string{"QR", "bg"}, "9:00 AM", 0),
	}
	state := NewState(models.FilterBounds{Min: 0, Max: 1000})
	state.Airlines = []string{"BG"}

	got := ids(Apply(results, state))
	want := []string{"bg", "codeshare"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply = %v, want %v (codes match case-insensitively, any segment airline counts)", got, want)
	}
}

func TestApply_DepartureTimeBuckets(t *testing.T) {
	results := []models.FlightResult{
		result("dawn", 100, nil, "5:59 AM", 0),
		result("morning", 100, nil, "6:00 AM", 0),
		result("noon", 100, nil, "12:00 PM", 0),
		result("midnight", 100, nil, "12:00 AM", 0),
		result("evening", 100, nil, "7:30 PM", 0),
		result("unparseable", 100, nil, "sometime", 0),
	}
	state := NewState(models.FilterBounds{Min: 0, Max: 1000})
	state.DepartureTimes = []timeofday.Bucket{timeofday.Afternoon, timeofday.Night}

	got := ids(Apply(results, state))
	// noon is afternoon (12 PM -> hour 12), midnight and 5:59 AM are night
	want := []string{"dawn", "noon", "midnight"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply = %v, want %v", got, want)
	}
}

func TestApply_StopsStage(t *testing.T) {
	results := []models.FlightResult{
		result("direct", 100, nil, "9:00 AM", 0),
		result("one", 100, nil, "9:00 AM", 1),
		result("two", 100, nil, "9:00 AM", 2),
		result("three", 100, nil, "9:00 AM", 3),
	}
	state := NewState(models.FilterBounds{Min: 0, Max: 1000})
	state.Stops = []StopBucket{StopsNonstop, StopsTwoPlus}

	got := ids(Apply(results, state))
	want := []string{"direct", "two", "three"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply = %v, want %v", got, want)
	}
}

func TestApply_StagesAreConjunctive(t *testing.T) {
	results := []models.FlightResult{
		result("passes-all", 150, []string{"BG"}, "8:00 AM", 0),
		result("wrong-airline", 150, []string{"EK"}, "8:00 AM", 0),
		result("wrong-time", 150, []string{"BG"}, "8:00 PM", 0),
		result("wrong-stops", 150, []string{"BG"}, "8:00 AM", 1),
		result("too-expensive", 999, []string{"BG"}, "8:00 AM", 0),
	}
	state := NewState(models.FilterBounds{Min: 100, Max: 500})
	state.Airlines = []string{"BG"}
	state.DepartureTimes = []timeofday.Bucket{timeofday.Morning}
	state.Stops = []StopBucket{StopsNonstop}

	got := ids(Apply(results, state))
	if !reflect.DeepEqual(got, []string{"passes-all"}) {
		t.Errorf("Apply = %v, want [passes-all]", got)
	}
}

func TestApply_Idempotent(t *testing.T) {
	results := []models.FlightResult{
		result("a", 100, []string{"BG"}, "9:00 AM", 0),
		result("b", 300, []string{"EK"}, "2:00 PM", 1),
		result("c", 700, []string{"QR"}, "11:00 PM", 2),
	}
	state := NewState(models.FilterBounds{Min: 0, Max: 500})
	state.DepartureTimes = []timeofday.Bucket{timeofday.Morning, timeofday.Afternoon}

	once := Apply(results, state)
	twice := Apply(once, state)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("apply not idempotent: first %v, second %v", ids(once), ids(twice))
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	results := []models.FlightResult{
		result("a", 100, nil, "9:00 AM", 0),
		result("b", 900, nil, "9:00 AM", 0),
	}
	snapshot := make([]models.FlightResult, len(results))
	copy(snapshot, results)

	state := NewState(models.FilterBounds{Min: 0, Max: 500})
	Apply(results, state)

	if !reflect.DeepEqual(results, snapshot) {
		t.Error("input slice was mutated")
	}
}

func TestApply_PriceAndEmptyAirlines(t *testing.T) {
	// results = [{100, BG}, {500, EK}], priceRange [0,200], no airlines
	results := []models.FlightResult{
		result("r1", 100, []string{"BG"}, "9:00 AM", 0),
		result("r2", 500, []string{"EK"}, "9:00 AM", 0),
	}
	state := NewState(models.FilterBounds{Min: 0, Max: 200})

	got := Apply(results, state)
	if len(got) != 1 || got[0].ID != "r1" || got[0].Price.Amount != 100 {
		t.Errorf("Apply = %v, want only the 100-priced result", ids(got))
	}
}

func TestSort_PriceDefault(t *testing.T) {
	results := []models.FlightResult{
		result("mid", 300, nil, "9:00 AM", 0),
		result("cheap", 100, nil, "9:00 AM", 0),
		result("pricey", 500, nil, "9:00 AM", 0),
	}

	got := ids(Sort(results, "", ""))
	want := []string{"cheap", "mid", "pricey"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sort = %v, want %v", got, want)
	}

	got = ids(Sort(results, "price", "desc"))
	want = []string{"pricey", "mid", "cheap"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sort desc = %v, want %v", got, want)
	}
}

func TestSort_BestValueScoresFirst(t *testing.T) {
	a := result("slow", 400, nil, "9:00 AM", 2)
	a.DurationMinutes = 600
	b := result("quick", 350, nil, "9:00 AM", 0)
	b.DurationMinutes = 240

	got := Sort([]models.FlightResult{a, b}, "best_value", "asc")

	if got[0].ID != "quick" {
		t.Errorf("best value first = %q, want quick", got[0].ID)
	}
	for _, r := range got {
		if r.BestValueScore == 0 {
			t.Errorf("result %q missing best value score", r.ID)
		}
	}
}
