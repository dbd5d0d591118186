package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/skylens/airmarket/internal/models"
	"github.com/skylens/airmarket/internal/timezone"
	"github.com/skylens/airmarket/pkg/currency"
)

const (
	rapidapiDefaultBaseURL = "https://flight-data4.p.rapidapi.com"
	rapidapiHost           = "flight-data4.p.rapidapi.com"
)

type RapidAPIConfig struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// RapidAPIProvider is the secondary flight offers source, keyed through the
// RapidAPI gateway headers.
type RapidAPIProvider struct {
	cfg    RapidAPIConfig
	client *http.Client
}

func NewRapidAPIProvider(cfg RapidAPIConfig) *RapidAPIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = rapidapiDefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &RapidAPIProvider{cfg: cfg, client: client}
}

func (p *RapidAPIProvider) Name() string {
	return "rapidapi"
}

type rapidapiResponse struct {
	Data []rapidapiFlight `json:"data"`
}

type rapidapiFlight struct {
	FlightID       string  `json:"flight_id"`
	AirlineCode    string  `json:"airline_code"`
	AirlineName    string  `json:"airline_name"`
	FlightNumber   string  `json:"flight_number"`
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	DepartureTime  string  `json:"departure_time"`
	ArrivalTime    string  `json:"arrival_time"`
	DurationMins   int     `json:"duration_minutes"`
	Stops          int     `json:"stops"`
	Price          float64 `json:"price"`
	Currency       string  `json:"currency"`
	SeatsAvailable int     `json:"seats_available"`
	CabinClass     string  `json:"cabin_class"`
	Status         string  `json:"status"`
}

func (p *RapidAPIProvider) Fetch(ctx context.Context, query models.FlightQuery) ([]models.FlightRecord, error) {
	params := url.Values{}
	params.Set("origin", strings.ToUpper(query.Origin))
	params.Set("destination", strings.ToUpper(query.Destination))
	params.Set("date", query.DepartureDate)
	params.Set("adults", strconv.Itoa(query.Adults))
	params.Set("cabin_class", strings.ToLower(query.CabinClass))
	params.Set("currency", strings.ToUpper(query.Currency))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.cfg.BaseURL+"/flights/search?"+params.Encode(), nil)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	req.Header.Set("X-RapidAPI-Key", p.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", rapidapiHost)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewProviderError(p.Name(),
			&StatusError{Provider: p.Name(), StatusCode: resp.StatusCode, Message: readErrorBody(resp.Body)})
	}

	var payload rapidapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, NewProviderError(p.Name(), err)
	}

	records := make([]models.FlightRecord, 0, len(payload.Data))
	for _, f := range payload.Data {
		record, err := p.normalize(f, query)
		if err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (p *RapidAPIProvider) normalize(f rapidapiFlight, query models.FlightQuery) (models.FlightRecord, error) {
	depTime, err := timezone.ParseAirportTime(f.DepartureTime, f.Origin)
	if err != nil {
		return models.FlightRecord{}, err
	}
	arrTime, err := timezone.ParseAirportTime(f.ArrivalTime, f.Destination)
	if err != nil {
		return models.FlightRecord{}, err
	}

	code := f.Currency
	if code == "" {
		code = query.Currency
	}
	status := f.Status
	if status == "" {
		status = "scheduled"
	}
	cabin := f.CabinClass
	if cabin == "" {
		cabin = query.CabinClass
	}

	return models.FlightRecord{
		ID:              "rapidapi-" + f.FlightID,
		Airline:         models.Airline{Code: f.AirlineCode, Name: f.AirlineName},
		FlightNumber:    f.FlightNumber,
		Origin:          strings.ToUpper(f.Origin),
		Destination:     strings.ToUpper(f.Destination),
		DepartureTime:   depTime,
		ArrivalTime:     arrTime,
		DurationMinutes: f.DurationMins,
		Stops:           f.Stops,
		Price: models.Price{
			Amount:    f.Price,
			Currency:  code,
			Formatted: currency.Format(f.Price, code),
		},
		AvailableSeats: f.SeatsAvailable,
		CabinClass:     cabin,
		Status:         status,
		Source:         p.Name(),
	}, nil
}

func (p *RapidAPIProvider) Healthcheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+"/status", nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-RapidAPI-Key", p.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", rapidapiHost)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return &StatusError{Provider: p.Name(), StatusCode: resp.StatusCode}
	}
	return nil
}
