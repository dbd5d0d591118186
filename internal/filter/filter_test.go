package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylens/airmarket/internal/models"
)

func records() []models.FlightRecord {
	return []models.FlightRecord{
		{
			ID:              "f1",
			Airline:         models.Airline{Code: "QF"},
			DurationMinutes: 95,
			Stops:           0,
			Price:           models.Price{Amount: 300},
		},
		{
			ID:              "f2",
			Airline:         models.Airline{Code: "VA"},
			DurationMinutes: 240,
			Stops:           1,
			Price:           models.Price{Amount: 120},
		},
		{
			ID:              "f3",
			Airline:         models.Airline{Code: "JQ"},
			DurationMinutes: 100,
			Stops:           0,
			Price:           models.Price{Amount: 99},
		},
	}
}

func TestApplyNilFiltersOnlySorts(t *testing.T) {
	result := Apply(records(), models.FlightQuery{})

	require.Len(t, result, 3)
	for i := 1; i < len(result); i++ {
		assert.LessOrEqual(t, result[i-1].BestValueScore, result[i].BestValueScore)
	}
	// Cheap direct flight wins.
	assert.Equal(t, "f3", result[0].ID)
}

func TestApplyMaxPrice(t *testing.T) {
	maxPrice := 150.0
	query := models.FlightQuery{Filters: &models.Filters{MaxPrice: &maxPrice}}

	result := Apply(records(), query)
	require.Len(t, result, 2)
	for _, r := range result {
		assert.LessOrEqual(t, r.Price.Amount, maxPrice)
	}
}

func TestApplyNonStop(t *testing.T) {
	query := models.FlightQuery{Filters: &models.Filters{NonStop: true}}

	result := Apply(records(), query)
	require.Len(t, result, 2)
	for _, r := range result {
		assert.Equal(t, 0, r.Stops)
	}
}

func TestApplyAirlineFilters(t *testing.T) {
	include := models.FlightQuery{Filters: &models.Filters{IncludeAirlines: []string{"qf", "va"}}}
	result := Apply(records(), include)
	require.Len(t, result, 2)
	for _, r := range result {
		assert.Contains(t, []string{"QF", "VA"}, r.Airline.Code)
	}

	exclude := models.FlightQuery{Filters: &models.Filters{ExcludeAirlines: []string{"VA"}}}
	result = Apply(records(), exclude)
	require.Len(t, result, 2)
	for _, r := range result {
		assert.NotEqual(t, "VA", r.Airline.Code)
	}
}

func TestApplyCanReturnEmpty(t *testing.T) {
	maxPrice := 1.0
	query := models.FlightQuery{Filters: &models.Filters{MaxPrice: &maxPrice}}
	assert.Empty(t, Apply(records(), query))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	input := records()
	_ = Apply(input, models.FlightQuery{})

	assert.Equal(t, "f1", input[0].ID)
	assert.Zero(t, input[0].BestValueScore)
}

func TestScoreFavorsFewerStopsAtEqualPrice(t *testing.T) {
	input := []models.FlightRecord{
		{ID: "stops", DurationMinutes: 100, Stops: 2, Price: models.Price{Amount: 100}},
		{ID: "direct", DurationMinutes: 100, Stops: 0, Price: models.Price{Amount: 100}},
	}
	result := Apply(input, models.FlightQuery{})
	require.Len(t, result, 2)
	assert.Equal(t, "direct", result[0].ID)
}
