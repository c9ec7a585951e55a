package ranking

import (
	"math"

	"github.com/dharmasatrya/travelfront/internal/models"
)

const (
	PriceWeight    = 0.5
	DurationWeight = 0.3
	StopsWeight    = 0.2
)

func CalculateScores(results []models.FlightResult) []models.FlightResult {
	if len(results) == 0 {
		return results
	}

	maxPrice := findMaxPrice(results)
	maxDuration := findMaxDuration(results)

	scored := make([]models.FlightResult, len(results))
	for i, r := range results {
		scored[i] = r
		scored[i].BestValueScore = CalculateBestValue(r, maxPrice, maxDuration)
	}

	return scored
}

// Lower score = better value
func CalculateBestValue(r models.FlightResult, maxPrice, maxDuration float64) float64 {
	priceScore := 0.0
	if maxPrice > 0 {
		priceScore = (r.Price.Amount / maxPrice) * 100
	}

	durationScore := 0.0
	if maxDuration > 0 {
		durationScore = (float64(r.DurationMinutes) / maxDuration) * 100
	}

	stopsScore := float64(totalStops(r)) * 15
	score := (priceScore * PriceWeight) + (durationScore * DurationWeight) + (stopsScore * StopsWeight)

	return math.Round(score*100) / 100
}

func totalStops(r models.FlightResult) int {
	total := 0
	for _, s := range r.Segments {
		total += s.Stops
	}
	return total
}

func findMaxPrice(results []models.FlightResult) float64 {
	maxPrice := 0.0
	for _, r := range results {
		if r.Price.Amount > maxPrice {
			maxPrice = r.Price.Amount
		}
	}
	return maxPrice
}

func findMaxDuration(results []models.FlightResult) float64 {
	maxDuration := 0.0
	for _, r := range results {
		if d := float64(r.DurationMinutes); d > maxDuration {
			maxDuration = d
		}
	}
	return maxDuration
}
