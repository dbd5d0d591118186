package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylens/airmarket/internal/models"
)

const aviationstackBody = `{
	"data": [
		{
			"airport_name": "Sydney Airport",
			"iata_code": "SYD",
			"city_name": "Sydney",
			"country_name": "Australia",
			"latitude": "-33.9399",
			"longitude": "151.1753",
			"timezone": "Australia/Sydney"
		},
		{
			"airport_name": "Heliport Without Code",
			"iata_code": "",
			"city_name": "Nowhere",
			"country_name": "Australia"
		}
	]
}`

func TestAviationStackFetchIsAlwaysEmpty(t *testing.T) {
	p := NewAviationStackProvider(AviationStackConfig{AccessKey: "key"})
	records, err := p.Fetch(context.Background(), models.FlightQuery{
		Origin: "SYD", Destination: "MEL", DepartureDate: "2026-09-01",
	})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAviationStackAirports(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.URL.Query().Get("access_key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(aviationstackBody))
	}))
	t.Cleanup(server.Close)

	p := NewAviationStackProvider(AviationStackConfig{AccessKey: "key", BaseURL: server.URL})
	airports, err := p.Airports(context.Background())
	require.NoError(t, err)

	// Entries without an IATA code are dropped.
	require.Len(t, airports, 1)
	assert.Equal(t, "SYD", airports[0].IATA)
	assert.Equal(t, -33.9399, airports[0].Lat)
	assert.Equal(t, "Australia/Sydney", airports[0].Timezone)
}

func TestAviationStackAirportsAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	p := NewAviationStackProvider(AviationStackConfig{AccessKey: "bad", BaseURL: server.URL})
	_, err := p.Airports(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindAuthFailure, Classify(err))
}
