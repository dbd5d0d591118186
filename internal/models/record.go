package models

import "time"

type Airline struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type Price struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted"`
}

// FlightRecord is the normalized output unit of the pipeline. Source and
// IsMock carry provenance on every record, so consumers can always tell
// authoritative data from synthetic data.
type FlightRecord struct {
	ID              string    `json:"id"`
	Airline         Airline   `json:"airline"`
	FlightNumber    string    `json:"flight_number"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	DepartureTime   time.Time `json:"departure_time"`
	ArrivalTime     time.Time `json:"arrival_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Stops           int       `json:"stops"`
	Price           Price     `json:"price"`
	AvailableSeats  int       `json:"available_seats"`
	CabinClass      string    `json:"cabin_class"`
	Status          string    `json:"status"`
	Source          string    `json:"source"`
	IsMock          bool      `json:"is_mock"`
	BestValueScore  float64   `json:"best_value_score,omitempty"`
}

type Airport struct {
	IATA     string  `json:"iata"`
	Name     string  `json:"name"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Timezone string  `json:"timezone"`
}

// MarketPoint is one day of route-level demand data.
type MarketPoint struct {
	Date           string  `json:"date"`
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	SearchVolume   int     `json:"search_volume"`
	BookingCount   int     `json:"booking_count"`
	ConversionRate float64 `json:"conversion_rate"`
	AveragePrice   float64 `json:"average_price"`
	MinPrice       float64 `json:"min_price"`
	MaxPrice       float64 `json:"max_price"`
	LoadFactor     float64 `json:"load_factor"`
	Source         string  `json:"source"`
	IsMock         bool    `json:"is_mock"`
}
