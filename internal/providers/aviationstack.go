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
)

const aviationstackDefaultBaseURL = "https://api.aviationstack.com/v1"

type AviationStackConfig struct {
	AccessKey  string
	BaseURL    string
	HTTPClient *http.Client
}

// AviationStackProvider serves the airports directory. The vendor has no
// flight offers endpoint, so Fetch reports an empty result and the pipeline
// moves on to the next source.
type AviationStackProvider struct {
	cfg    AviationStackConfig
	client *http.Client
}

func NewAviationStackProvider(cfg AviationStackConfig) *AviationStackProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = aviationstackDefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &AviationStackProvider{cfg: cfg, client: client}
}

func (p *AviationStackProvider) Name() string {
	return "aviationstack"
}

func (p *AviationStackProvider) Fetch(ctx context.Context, query models.FlightQuery) ([]models.FlightRecord, error) {
	return nil, nil
}

type aviationstackAirportsResponse struct {
	Data []aviationstackAirport `json:"data"`
}

type aviationstackAirport struct {
	AirportName string `json:"airport_name"`
	IATACode    string `json:"iata_code"`
	CityName    string `json:"city_name"`
	CountryName string `json:"country_name"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
	Timezone    string `json:"timezone"`
}

func (p *AviationStackProvider) Airports(ctx context.Context) ([]models.Airport, error) {
	params := url.Values{}
	params.Set("access_key", p.cfg.AccessKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.cfg.BaseURL+"/airports?"+params.Encode(), nil)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewProviderError(p.Name(),
			&StatusError{Provider: p.Name(), StatusCode: resp.StatusCode, Message: readErrorBody(resp.Body)})
	}

	var payload aviationstackAirportsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, NewProviderError(p.Name(), err)
	}

	airports := make([]models.Airport, 0, len(payload.Data))
	for _, a := range payload.Data {
		if a.IATACode == "" {
			continue
		}
		lat, _ := strconv.ParseFloat(a.Latitude, 64)
		lon, _ := strconv.ParseFloat(a.Longitude, 64)
		airports = append(airports, models.Airport{
			IATA:     strings.ToUpper(a.IATACode),
			Name:     a.AirportName,
			City:     a.CityName,
			Country:  a.CountryName,
			Lat:      lat,
			Lon:      lon,
			Timezone: a.Timezone,
		})
	}
	return airports, nil
}

func (p *AviationStackProvider) Healthcheck(ctx context.Context) error {
	params := url.Values{}
	params.Set("access_key", p.cfg.AccessKey)
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.cfg.BaseURL+"/airports?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Provider: p.Name(), StatusCode: resp.StatusCode}
	}
	return nil
}
