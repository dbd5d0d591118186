package mockdata

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"github.com/skylens/airmarket/internal/models"
	"github.com/skylens/airmarket/internal/timezone"
	"github.com/skylens/airmarket/pkg/currency"
)

// SourceName tags every record the generator emits.
const SourceName = "mock"

var airports = []models.Airport{
	{IATA: "SYD", Name: "Sydney Airport", City: "Sydney", Country: "Australia", Lat: -33.9399, Lon: 151.1753, Timezone: "Australia/Sydney"},
	{IATA: "MEL", Name: "Melbourne Airport", City: "Melbourne", Country: "Australia", Lat: -37.6696, Lon: 144.8498, Timezone: "Australia/Melbourne"},
	{IATA: "BNE", Name: "Brisbane Airport", City: "Brisbane", Country: "Australia", Lat: -27.3940, Lon: 153.1219, Timezone: "Australia/Brisbane"},
	{IATA: "PER", Name: "Perth Airport", City: "Perth", Country: "Australia", Lat: -31.9522, Lon: 115.8589, Timezone: "Australia/Perth"},
	{IATA: "ADL", Name: "Adelaide Airport", City: "Adelaide", Country: "Australia", Lat: -34.9285, Lon: 138.6007, Timezone: "Australia/Adelaide"},
	{IATA: "CBR", Name: "Canberra Airport", City: "Canberra", Country: "Australia", Lat: -35.3069, Lon: 149.1950, Timezone: "Australia/Sydney"},
	{IATA: "HBA", Name: "Hobart Airport", City: "Hobart", Country: "Australia", Lat: -42.8361, Lon: 147.5103, Timezone: "Australia/Hobart"},
	{IATA: "DRW", Name: "Darwin Airport", City: "Darwin", Country: "Australia", Lat: -12.4083, Lon: 130.8727, Timezone: "Australia/Darwin"},
	{IATA: "CNS", Name: "Cairns Airport", City: "Cairns", Country: "Australia", Lat: -16.8858, Lon: 145.7553, Timezone: "Australia/Brisbane"},
	{IATA: "OOL", Name: "Gold Coast Airport", City: "Gold Coast", Country: "Australia", Lat: -28.1667, Lon: 153.5000, Timezone: "Australia/Brisbane"},
}

var airlines = []models.Airline{
	{Code: "QF", Name: "Qantas"},
	{Code: "VA", Name: "Virgin Australia"},
	{Code: "JQ", Name: "Jetstar"},
	{Code: "TT", Name: "Tigerair Australia"},
	{Code: "NZ", Name: "Air New Zealand"},
	{Code: "EY", Name: "Etihad Airways"},
	{Code: "SQ", Name: "Singapore Airlines"},
	{Code: "CX", Name: "Cathay Pacific"},
	{Code: "EK", Name: "Emirates"},
	{Code: "LA", Name: "LATAM"},
}

type aircraftType struct {
	code        string
	minCapacity int
	maxCapacity int
}

var aircraftTypes = []aircraftType{
	{"A320", 150, 186},
	{"A330", 250, 300},
	{"A350", 300, 350},
	{"A380", 500, 853},
	{"B737", 130, 215},
	{"B747", 366, 416},
	{"B777", 301, 550},
	{"B787", 242, 330},
}

// Generator produces synthetic data as the pipeline's last resort. All
// output is a pure function of the input: the PRNG is seeded from the query
// itself, so identical requests reproduce identical records.
type Generator struct {
	// FlightLimit caps records per query. Zero means the default of 10.
	FlightLimit int
}

func NewGenerator() *Generator {
	return &Generator{}
}

func seedFor(parts ...any) int64 {
	h := fnv.New64a()
	data, _ := json.Marshal(parts)
	_, _ = h.Write(data)
	return int64(h.Sum64())
}

func findAirport(code string) (models.Airport, bool) {
	code = strings.ToUpper(code)
	for _, a := range airports {
		if a.IATA == code {
			return a, true
		}
	}
	return models.Airport{}, false
}

// Flights never returns an empty slice for a validated query. Generated
// records respect the query's filters so the non-empty guarantee holds even
// after post-filtering.
func (g *Generator) Flights(query models.FlightQuery) []models.FlightRecord {
	limit := g.FlightLimit
	if limit < 5 {
		limit = 10
	}

	rng := rand.New(rand.NewSource(seedFor("flights", query)))

	day, err := time.Parse("2006-01-02", query.DepartureDate)
	if err != nil {
		day = time.Now().UTC().Truncate(24 * time.Hour)
	}
	loc := timezone.LocationByAirport(query.Origin)

	origin := strings.ToUpper(query.Origin)
	destination := strings.ToUpper(query.Destination)

	pool := airlines
	if query.Filters != nil {
		if include := query.Filters.IncludeAirlines; len(include) > 0 {
			pool = filterAirlines(airlines, include)
			if len(pool) == 0 {
				// Requested carriers are outside the tables; honor the
				// codes so the records survive post-filtering.
				pool = syntheticAirlines(include)
			}
		}
		if exclude := query.Filters.ExcludeAirlines; len(exclude) > 0 {
			trimmed := excludeAirlines(pool, exclude)
			if len(trimmed) == 0 && len(query.Filters.IncludeAirlines) == 0 {
				trimmed = []models.Airline{carrierOutside(exclude)}
			}
			if len(trimmed) > 0 {
				pool = trimmed
			}
		}
	}

	count := 5 + rng.Intn(limit-4)
	records := make([]models.FlightRecord, 0, count)
	for i := 0; i < count; i++ {
		airline := pool[rng.Intn(len(pool))]
		aircraft := aircraftTypes[rng.Intn(len(aircraftTypes))]

		depTime := time.Date(day.Year(), day.Month(), day.Day(),
			6+rng.Intn(17), []int{0, 15, 30, 45}[rng.Intn(4)], 0, 0, loc)
		durationMins := 60 + rng.Intn(5*60+59)
		arrTime := depTime.Add(time.Duration(durationMins) * time.Minute)

		capacity := aircraft.minCapacity + rng.Intn(aircraft.maxCapacity-aircraft.minCapacity+1)
		booked := capacity/2 + rng.Intn(capacity*2/5+1)
		if booked > capacity {
			booked = capacity
		}

		basePrice := 100 + rng.Float64()*200
		distanceFactor := (500 + rng.Float64()*3500) * 0.1
		price := roundCents(basePrice + distanceFactor + (rng.Float64()*150 - 50))
		if query.Filters != nil && query.Filters.MaxPrice != nil && price > *query.Filters.MaxPrice {
			price = roundCents(*query.Filters.MaxPrice * (0.5 + rng.Float64()*0.4))
		}

		stops := weightedStops(rng)
		if query.Filters != nil && query.Filters.NonStop {
			stops = 0
		}

		records = append(records, models.FlightRecord{
			ID:              fmt.Sprintf("mock-%08x-%02d", uint32(rng.Int63()), i),
			Airline:         airline,
			FlightNumber:    fmt.Sprintf("%s%d", airline.Code, 100+rng.Intn(9900)),
			Origin:          origin,
			Destination:     destination,
			DepartureTime:   depTime,
			ArrivalTime:     arrTime,
			DurationMinutes: durationMins,
			Stops:           stops,
			Price: models.Price{
				Amount:    price,
				Currency:  query.Currency,
				Formatted: currency.Format(price, query.Currency),
			},
			AvailableSeats: capacity - booked,
			CabinClass:     query.CabinClass,
			Status:         weightedStatus(rng),
			Source:         SourceName,
			IsMock:         true,
		})
	}
	return records
}

// Airports returns the static Australian directory.
func (g *Generator) Airports() []models.Airport {
	out := make([]models.Airport, len(airports))
	copy(out, airports)
	return out
}

// MarketData generates one demand data point per day, oldest first, with
// weekend seasonality on volume and price.
func (g *Generator) MarketData(origin, destination string, days int) []models.MarketPoint {
	if days <= 0 {
		days = 30
	}
	origin = strings.ToUpper(origin)
	destination = strings.ToUpper(destination)
	rng := rand.New(rand.NewSource(seedFor("market", origin, destination, days)))
	today := time.Now().UTC().Truncate(24 * time.Hour)

	points := make([]models.MarketPoint, 0, days)
	for day := days - 1; day >= 0; day-- {
		date := today.AddDate(0, 0, -day)
		weekend := date.Weekday() == time.Saturday || date.Weekday() == time.Sunday

		baseDemand := 50 + rng.Float64()*150
		boost := 1.0
		priceBoost := 1.0
		if weekend {
			boost = 1.5
			priceBoost = 1.2
		}

		searchVolume := int(baseDemand * boost * (0.8 + rng.Float64()*0.4))
		if searchVolume < 1 {
			searchVolume = 1
		}
		bookings := int(float64(searchVolume) * (0.1 + rng.Float64()*0.3))
		avgPrice := roundCents((150 + rng.Float64()*350) * priceBoost)

		points = append(points, models.MarketPoint{
			Date:           date.Format("2006-01-02"),
			Origin:         origin,
			Destination:    destination,
			SearchVolume:   searchVolume,
			BookingCount:   bookings,
			ConversionRate: roundCents(float64(bookings) / float64(searchVolume) * 100),
			AveragePrice:   avgPrice,
			MinPrice:       roundCents(avgPrice * (0.7 + rng.Float64()*0.25)),
			MaxPrice:       roundCents(avgPrice * (1.05 + rng.Float64()*0.25)),
			LoadFactor:     roundTenth(60 + rng.Float64()*35),
			Source:         SourceName,
			IsMock:         true,
		})
	}
	return points
}

// AirportAnalytics summarizes traffic for one airport over the given window.
type AirportAnalytics struct {
	Airport           models.Airport       `json:"airport"`
	TimePeriod        string               `json:"time_period"`
	TotalFlights      int                  `json:"total_flights"`
	TotalPassengers   int                  `json:"total_passengers"`
	AverageLoadFactor float64              `json:"average_load_factor"`
	OnTimePerformance float64              `json:"on_time_performance"`
	TopDestinations   []DestinationSummary `json:"top_destinations"`
	Source            string               `json:"source"`
	IsMock            bool                 `json:"is_mock"`
}

type DestinationSummary struct {
	Airport      models.Airport `json:"airport"`
	FlightCount  int            `json:"flight_count"`
	AveragePrice float64        `json:"average_price"`
	LoadFactor   float64        `json:"load_factor"`
}

func (g *Generator) AirportAnalytics(code string, days int) (*AirportAnalytics, error) {
	airport, ok := findAirport(code)
	if !ok {
		return nil, fmt.Errorf("airport %s not found", strings.ToUpper(code))
	}
	if days <= 0 {
		days = 30
	}
	rng := rand.New(rand.NewSource(seedFor("analytics", airport.IATA, days)))

	var others []models.Airport
	for _, a := range airports {
		if a.IATA != airport.IATA {
			others = append(others, a)
		}
	}
	rng.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })
	if len(others) > 5 {
		others = others[:5]
	}

	top := make([]DestinationSummary, 0, len(others))
	for _, dest := range others {
		top = append(top, DestinationSummary{
			Airport:      dest,
			FlightCount:  50 + rng.Intn(151),
			AveragePrice: roundCents(150 + rng.Float64()*350),
			LoadFactor:   roundTenth(60 + rng.Float64()*35),
		})
	}

	return &AirportAnalytics{
		Airport:           airport,
		TimePeriod:        fmt.Sprintf("Last %d days", days),
		TotalFlights:      1000 + rng.Intn(4001),
		TotalPassengers:   100000 + rng.Intn(400001),
		AverageLoadFactor: roundTenth(70 + rng.Float64()*20),
		OnTimePerformance: roundTenth(75 + rng.Float64()*20),
		TopDestinations:   top,
		Source:            SourceName,
		IsMock:            true,
	}, nil
}

func filterAirlines(pool []models.Airline, include []string) []models.Airline {
	var out []models.Airline
	for _, a := range pool {
		for _, code := range include {
			if strings.EqualFold(a.Code, code) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

func syntheticAirlines(codes []string) []models.Airline {
	out := make([]models.Airline, 0, len(codes))
	for _, code := range codes {
		c := strings.ToUpper(code)
		out = append(out, models.Airline{Code: c, Name: c})
	}
	return out
}

// carrierOutside returns a carrier whose code is not on the exclude list.
func carrierOutside(exclude []string) models.Airline {
	for a := 'A'; a <= 'Z'; a++ {
		for b := 'A'; b <= 'Z'; b++ {
			code := string(a) + string(b)
			if !containsCode(exclude, code) {
				return models.Airline{Code: code, Name: code}
			}
		}
	}
	return airlines[0]
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}

func excludeAirlines(pool []models.Airline, exclude []string) []models.Airline {
	var out []models.Airline
	for _, a := range pool {
		excluded := false
		for _, code := range exclude {
			if strings.EqualFold(a.Code, code) {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, a)
		}
	}
	return out
}

func weightedStops(rng *rand.Rand) int {
	switch v := rng.Float64(); {
	case v < 0.7:
		return 0
	case v < 0.95:
		return 1
	default:
		return 2
	}
}

func weightedStatus(rng *rand.Rand) string {
	switch v := rng.Float64(); {
	case v < 0.9:
		return "scheduled"
	case v < 0.98:
		return "delayed"
	default:
		return "cancelled"
	}
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func roundTenth(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
