package timezone

import (
	"strings"
	"time"
)

var (
	AEST *time.Location // UTC+10 - Sydney, Brisbane (no DST applied)
	ACST *time.Location // UTC+9:30 - Adelaide, Darwin
	AWST *time.Location // UTC+8 - Perth
)

func init() {
	AEST = time.FixedZone("AEST", 10*60*60)
	ACST = time.FixedZone("ACST", 9*60*60+30*60)
	AWST = time.FixedZone("AWST", 8*60*60)
}

var airportZones = map[string]string{
	"SYD": "Australia/Sydney",
	"CBR": "Australia/Sydney",
	"MEL": "Australia/Melbourne",
	"BNE": "Australia/Brisbane",
	"CNS": "Australia/Brisbane",
	"OOL": "Australia/Brisbane",
	"PER": "Australia/Perth",
	"ADL": "Australia/Adelaide",
	"HBA": "Australia/Hobart",
	"DRW": "Australia/Darwin",
}

// NameByAirport returns the IANA zone name for an airport, defaulting to
// Australia/Sydney for unknown codes.
func NameByAirport(code string) string {
	if tz, ok := airportZones[strings.ToUpper(code)]; ok {
		return tz
	}
	return "Australia/Sydney"
}

// LocationByAirport resolves an airport code to a *time.Location. Falls back
// to fixed offsets when the zone database is unavailable.
func LocationByAirport(code string) *time.Location {
	name := NameByAirport(code)
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	switch name {
	case "Australia/Perth":
		return AWST
	case "Australia/Adelaide", "Australia/Darwin":
		return ACST
	default:
		return AEST
	}
}

// ParseAirportTime parses a provider timestamp, trying offset-carrying
// layouts first and falling back to the airport's local zone.
func ParseAirportTime(value, airport string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	layouts := []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
	}
	loc := LocationByAirport(airport)
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &time.ParseError{Value: value, Message: "unable to parse time string"}
}
