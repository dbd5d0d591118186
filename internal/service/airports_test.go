package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylens/airmarket/internal/models"
)

type stubDirectory struct {
	stubProvider
	airports []models.Airport
	dirErr   error
}

func (p *stubDirectory) Airports(ctx context.Context) ([]models.Airport, error) {
	return p.airports, p.dirErr
}

func directoryFixture() []models.Airport {
	return []models.Airport{
		{IATA: "SYD", Name: "Sydney Airport", City: "Sydney", Country: "Australia"},
		{IATA: "AKL", Name: "Auckland Airport", City: "Auckland", Country: "New Zealand"},
		{IATA: "MEL", Name: "Melbourne Airport", City: "Melbourne", Country: "Australia"},
	}
}

func TestGetAirportsFromDirectoryProvider(t *testing.T) {
	rec := &alertRecorder{}
	dir := &stubDirectory{stubProvider: stubProvider{name: "aviationstack"}, airports: directoryFixture()}
	svc := newTestService(t, rec, dir)

	result, err := svc.GetAirports(context.Background(), AirportOptions{UseRealData: true})
	require.NoError(t, err)

	assert.Equal(t, "aviationstack", result.Meta.Source)
	assert.False(t, result.Meta.UsedFallback)
	assert.Len(t, result.Data, 3)
	assert.Empty(t, rec.all())
}

func TestGetAirportsFallsBackToMock(t *testing.T) {
	rec := &alertRecorder{}
	dir := &stubDirectory{stubProvider: stubProvider{name: "aviationstack"}, dirErr: errors.New("boom")}
	svc := newTestService(t, rec, dir)

	result, err := svc.GetAirports(context.Background(), AirportOptions{UseRealData: true})
	require.NoError(t, err)

	assert.Equal(t, "mock", result.Meta.Source)
	assert.True(t, result.Meta.UsedFallback)
	require.NotEmpty(t, result.Data)

	// One provider alert plus the directory fallback notice.
	assert.Len(t, rec.all(), 2)
}

func TestGetAirportsMockOnlyWhenRealDataDisabled(t *testing.T) {
	rec := &alertRecorder{}
	dir := &stubDirectory{stubProvider: stubProvider{name: "aviationstack"}, airports: directoryFixture()}
	svc := newTestService(t, rec, dir)

	result, err := svc.GetAirports(context.Background(), AirportOptions{UseRealData: false})
	require.NoError(t, err)

	assert.Equal(t, "mock", result.Meta.Source)
	assert.False(t, result.Meta.UsedFallback)
	assert.Empty(t, rec.all())
}

func TestGetAirportsSkipsNonDirectoryProviders(t *testing.T) {
	rec := &alertRecorder{}
	flightsOnly := &stubProvider{name: "rapidapi", records: realRecords("rapidapi")}
	svc := newTestService(t, rec, flightsOnly)

	result, err := svc.GetAirports(context.Background(), AirportOptions{UseRealData: true})
	require.NoError(t, err)

	// No directory-capable provider means the mock table without a fallback
	// alert: nothing actually failed.
	assert.Equal(t, "mock", result.Meta.Source)
	assert.False(t, result.Meta.UsedFallback)
	assert.Equal(t, int32(0), flightsOnly.calls.Load())
	assert.Empty(t, rec.all())
}

func TestFilterAirports(t *testing.T) {
	airports := directoryFixture()

	byIATA := filterAirports(airports, AirportOptions{IATA: "syd"})
	require.Len(t, byIATA, 1)
	assert.Equal(t, "SYD", byIATA[0].IATA)

	byCountry := filterAirports(airports, AirportOptions{Country: "australia"})
	assert.Len(t, byCountry, 2)

	bySearch := filterAirports(airports, AirportOptions{Search: "auck"})
	require.Len(t, bySearch, 1)
	assert.Equal(t, "AKL", bySearch[0].IATA)

	combined := filterAirports(airports, AirportOptions{Country: "Australia", Search: "melbourne"})
	require.Len(t, combined, 1)
	assert.Equal(t, "MEL", combined[0].IATA)

	assert.Len(t, filterAirports(airports, AirportOptions{}), 3)
}

func TestAirportAnalyticsService(t *testing.T) {
	rec := &alertRecorder{}
	svc := newTestService(t, rec)

	result, err := svc.AirportAnalytics(context.Background(), "SYD", 30)
	require.NoError(t, err)
	assert.Equal(t, "mock", result.Meta.Source)
	assert.Equal(t, "SYD", result.Data.Airport.IATA)
	assert.True(t, result.Data.IsMock)

	_, err = svc.AirportAnalytics(context.Background(), "ZZZ", 30)
	assert.Error(t, err)
}

func TestHealthReport(t *testing.T) {
	rec := &alertRecorder{}
	dir := &stubDirectory{stubProvider: stubProvider{name: "aviationstack"}}
	svc := newTestService(t, rec, dir)

	report, healthy := svc.Health(context.Background())
	assert.True(t, healthy)
	assert.Equal(t, "ok", report["cache"].Status)
	assert.Equal(t, "ok", report["mock"].Status)
	assert.Equal(t, "ok", report["provider:aviationstack"].Status)
}
