package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameByAirport(t *testing.T) {
	assert.Equal(t, "Australia/Sydney", NameByAirport("SYD"))
	assert.Equal(t, "Australia/Sydney", NameByAirport("syd"))
	assert.Equal(t, "Australia/Perth", NameByAirport("PER"))
	assert.Equal(t, "Australia/Brisbane", NameByAirport("OOL"))
	assert.Equal(t, "Australia/Sydney", NameByAirport("XXX"))
}

func TestLocationByAirport(t *testing.T) {
	loc := LocationByAirport("PER")
	require.NotNil(t, loc)

	// Perth has no DST; offset is always UTC+8.
	at := time.Date(2026, 9, 1, 12, 0, 0, 0, loc)
	_, offset := at.Zone()
	assert.Equal(t, 8*60*60, offset)
}

func TestParseAirportTime(t *testing.T) {
	got, err := ParseAirportTime("2026-09-01T08:00:00", "SYD")
	require.NoError(t, err)
	assert.Equal(t, 8, got.Hour())
	_, offset := got.Zone()
	assert.Equal(t, 10*60*60, offset)

	got, err = ParseAirportTime("2026-09-01 08:00:00", "PER")
	require.NoError(t, err)
	_, offset = got.Zone()
	assert.Equal(t, 8*60*60, offset)
}

func TestParseAirportTimeKeepsExplicitOffset(t *testing.T) {
	got, err := ParseAirportTime("2026-09-01T08:00:00+09:30", "SYD")
	require.NoError(t, err)
	_, offset := got.Zone()
	assert.Equal(t, 9*60*60+30*60, offset)
}

func TestParseAirportTimeRejectsGarbage(t *testing.T) {
	_, err := ParseAirportTime("next tuesday", "SYD")
	assert.Error(t, err)
}
