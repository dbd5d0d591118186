package filter

import (
	"math"
	"sort"
	"strings"

	"github.com/skylens/airmarket/internal/models"
)

const (
	priceWeight    = 0.5
	durationWeight = 0.3
	stopsWeight    = 0.2
)

// Apply drops records the query's filters reject and returns the rest
// scored and sorted, cheapest-equivalent first. A nil Filters only sorts.
func Apply(records []models.FlightRecord, query models.FlightQuery) []models.FlightRecord {
	filtered := applyFilters(records, query.Filters)
	scored := scoreBestValue(filtered)

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].BestValueScore < scored[j].BestValueScore
	})
	return scored
}

func applyFilters(records []models.FlightRecord, filters *models.Filters) []models.FlightRecord {
	if filters == nil {
		return records
	}

	result := make([]models.FlightRecord, 0, len(records))
	for _, r := range records {
		if matches(r, filters) {
			result = append(result, r)
		}
	}
	return result
}

func matches(r models.FlightRecord, filters *models.Filters) bool {
	if filters.MaxPrice != nil && r.Price.Amount > *filters.MaxPrice {
		return false
	}

	if filters.NonStop && r.Stops > 0 {
		return false
	}

	if len(filters.IncludeAirlines) > 0 && !containsFold(filters.IncludeAirlines, r.Airline.Code) {
		return false
	}
	if len(filters.ExcludeAirlines) > 0 && containsFold(filters.ExcludeAirlines, r.Airline.Code) {
		return false
	}

	return true
}

func containsFold(haystack []string, needle string) bool {
	for _, v := range haystack {
		if strings.EqualFold(v, needle) {
			return true
		}
	}
	return false
}

// scoreBestValue assigns the normalized price/duration/stops score the
// sort uses. Lower score means better value.
func scoreBestValue(records []models.FlightRecord) []models.FlightRecord {
	if len(records) == 0 {
		return records
	}

	var maxPrice, maxDuration float64
	for _, r := range records {
		if r.Price.Amount > maxPrice {
			maxPrice = r.Price.Amount
		}
		if d := float64(r.DurationMinutes); d > maxDuration {
			maxDuration = d
		}
	}

	result := make([]models.FlightRecord, len(records))
	for i, r := range records {
		result[i] = r

		priceScore := 0.0
		if maxPrice > 0 {
			priceScore = (r.Price.Amount / maxPrice) * 100
		}
		durationScore := 0.0
		if maxDuration > 0 {
			durationScore = (float64(r.DurationMinutes) / maxDuration) * 100
		}
		stopsScore := float64(r.Stops) * 15

		score := priceScore*priceWeight + durationScore*durationWeight + stopsScore*stopsWeight
		result[i].BestValueScore = math.Round(score*100) / 100
	}
	return result
}
