package mockdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylens/airmarket/internal/models"
)

func mockQuery() models.FlightQuery {
	return models.FlightQuery{
		Origin:        "SYD",
		Destination:   "MEL",
		DepartureDate: "2026-09-01",
		Adults:        1,
		CabinClass:    "economy",
		Currency:      "AUD",
	}
}

func TestFlightsDeterministic(t *testing.T) {
	g := NewGenerator()
	first := g.Flights(mockQuery())
	second := g.Flights(mockQuery())
	assert.Equal(t, first, second)
}

func TestFlightsVaryByQuery(t *testing.T) {
	g := NewGenerator()
	syd := g.Flights(mockQuery())

	other := mockQuery()
	other.Destination = "BNE"
	bne := g.Flights(other)

	assert.NotEqual(t, syd, bne)
}

func TestFlightsNeverEmptyAndAlwaysMock(t *testing.T) {
	g := NewGenerator()
	records := g.Flights(mockQuery())

	require.NotEmpty(t, records)
	assert.GreaterOrEqual(t, len(records), 5)
	for _, r := range records {
		assert.True(t, r.IsMock)
		assert.Equal(t, SourceName, r.Source)
		assert.Equal(t, "SYD", r.Origin)
		assert.Equal(t, "MEL", r.Destination)
		assert.Equal(t, "AUD", r.Price.Currency)
		assert.Positive(t, r.Price.Amount)
		assert.Positive(t, r.DurationMinutes)
		assert.True(t, r.ArrivalTime.After(r.DepartureTime))
	}
}

func TestFlightsHonorFilters(t *testing.T) {
	g := NewGenerator()

	maxPrice := 150.0
	query := mockQuery()
	query.Filters = &models.Filters{
		MaxPrice:        &maxPrice,
		NonStop:         true,
		IncludeAirlines: []string{"QF", "VA"},
	}

	records := g.Flights(query)
	require.NotEmpty(t, records)
	for _, r := range records {
		assert.LessOrEqual(t, r.Price.Amount, maxPrice)
		assert.Equal(t, 0, r.Stops)
		assert.Contains(t, []string{"QF", "VA"}, r.Airline.Code)
	}
}

func TestFlightsUnknownIncludeAirlines(t *testing.T) {
	g := NewGenerator()
	query := mockQuery()
	query.Filters = &models.Filters{IncludeAirlines: []string{"XX"}}

	records := g.Flights(query)
	require.NotEmpty(t, records)
	for _, r := range records {
		assert.Equal(t, "XX", r.Airline.Code)
		assert.True(t, r.IsMock)
	}
}

func TestFlightsExcludeEveryKnownAirline(t *testing.T) {
	g := NewGenerator()
	query := mockQuery()
	query.Filters = &models.Filters{
		ExcludeAirlines: []string{"QF", "VA", "JQ", "TT", "NZ", "EY", "SQ", "CX", "EK", "LA"},
	}

	records := g.Flights(query)
	require.NotEmpty(t, records)
	for _, r := range records {
		assert.NotContains(t, query.Filters.ExcludeAirlines, r.Airline.Code)
	}
}

func TestFlightsExcludeAirlines(t *testing.T) {
	g := NewGenerator()
	query := mockQuery()
	query.Filters = &models.Filters{ExcludeAirlines: []string{"QF"}}

	records := g.Flights(query)
	require.NotEmpty(t, records)
	for _, r := range records {
		assert.NotEqual(t, "QF", r.Airline.Code)
	}
}

func TestFlightsRespectsLimit(t *testing.T) {
	g := &Generator{FlightLimit: 6}
	records := g.Flights(mockQuery())
	assert.GreaterOrEqual(t, len(records), 5)
	assert.LessOrEqual(t, len(records), 6)
}

func TestAirports(t *testing.T) {
	g := NewGenerator()
	airports := g.Airports()

	require.NotEmpty(t, airports)
	codes := make(map[string]bool, len(airports))
	for _, a := range airports {
		assert.Len(t, a.IATA, 3)
		assert.Equal(t, "Australia", a.Country)
		codes[a.IATA] = true
	}
	assert.True(t, codes["SYD"])
	assert.True(t, codes["MEL"])

	// Callers get a copy, not the package table.
	airports[0].IATA = "XXX"
	assert.False(t, g.Airports()[0].IATA == "XXX")
}

func TestMarketData(t *testing.T) {
	g := NewGenerator()
	points := g.MarketData("SYD", "MEL", 14)

	require.Len(t, points, 14)
	for i, p := range points {
		assert.Equal(t, "SYD", p.Origin)
		assert.Equal(t, "MEL", p.Destination)
		assert.True(t, p.IsMock)
		assert.Equal(t, SourceName, p.Source)
		assert.Positive(t, p.SearchVolume)
		assert.LessOrEqual(t, p.BookingCount, p.SearchVolume)
		assert.LessOrEqual(t, p.MinPrice, p.AveragePrice)
		assert.GreaterOrEqual(t, p.MaxPrice, p.AveragePrice)
		if i > 0 {
			assert.Greater(t, p.Date, points[i-1].Date)
		}
	}

	again := g.MarketData("syd", "mel", 14)
	assert.Equal(t, points[0].SearchVolume, again[0].SearchVolume)
}

func TestMarketDataDefaultDays(t *testing.T) {
	g := NewGenerator()
	assert.Len(t, g.MarketData("SYD", "MEL", 0), 30)
}

func TestAirportAnalytics(t *testing.T) {
	g := NewGenerator()

	analytics, err := g.AirportAnalytics("syd", 30)
	require.NoError(t, err)
	assert.Equal(t, "SYD", analytics.Airport.IATA)
	assert.True(t, analytics.IsMock)
	assert.Equal(t, "Last 30 days", analytics.TimePeriod)
	assert.Positive(t, analytics.TotalFlights)
	require.Len(t, analytics.TopDestinations, 5)
	for _, dest := range analytics.TopDestinations {
		assert.NotEqual(t, "SYD", dest.Airport.IATA)
	}

	again, err := g.AirportAnalytics("SYD", 30)
	require.NoError(t, err)
	assert.Equal(t, analytics, again)
}

func TestAirportAnalyticsUnknownAirport(t *testing.T) {
	g := NewGenerator()
	_, err := g.AirportAnalytics("ZZZ", 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ZZZ")
}
