package models

import "time"

// Filters narrow down provider results after fetching. All fields are
// optional; a nil Filters applies nothing.
type Filters struct {
	MaxPrice        *float64 `json:"max_price,omitempty"`
	IncludeAirlines []string `json:"include_airlines,omitempty"`
	ExcludeAirlines []string `json:"exclude_airlines,omitempty"`
	NonStop         bool     `json:"non_stop,omitempty"`
}

// FlightQuery is the input of the data pipeline. It is also the basis of the
// cache key, so every field participates in the canonical serialization.
type FlightQuery struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DepartureDate string   `json:"departure_date"`
	ReturnDate    *string  `json:"return_date,omitempty"`
	Adults        int      `json:"adults"`
	Children      int      `json:"children"`
	Infants       int      `json:"infants"`
	CabinClass    string   `json:"cabin_class"`
	Currency      string   `json:"currency"`
	Filters       *Filters `json:"filters,omitempty"`

	// UseRealData defaults to true when omitted. False skips the cache and
	// all providers and serves synthetic data directly.
	UseRealData *bool `json:"use_real_data,omitempty"`
}

func (q *FlightQuery) RealDataAllowed() bool {
	return q.UseRealData == nil || *q.UseRealData
}

func (q *FlightQuery) Validate() error {
	if q.Origin == "" {
		return ErrMissingOrigin
	}
	if q.Destination == "" {
		return ErrMissingDestination
	}
	if q.DepartureDate == "" {
		return ErrMissingDepartureDate
	}
	if _, err := time.Parse("2006-01-02", q.DepartureDate); err != nil {
		return ErrInvalidDate
	}
	if q.ReturnDate != nil && *q.ReturnDate != "" {
		if _, err := time.Parse("2006-01-02", *q.ReturnDate); err != nil {
			return ErrInvalidDate
		}
	}
	if q.Adults <= 0 {
		q.Adults = 1
	}
	if q.Children < 0 {
		q.Children = 0
	}
	if q.Infants < 0 {
		q.Infants = 0
	}
	if q.CabinClass == "" {
		q.CabinClass = "economy"
	}
	if q.Currency == "" {
		q.Currency = "AUD"
	}
	return nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin        ValidationError = "origin is required"
	ErrMissingDestination   ValidationError = "destination is required"
	ErrMissingDepartureDate ValidationError = "departure_date is required"
	ErrInvalidDate          ValidationError = "dates must use YYYY-MM-DD format"
)
