package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/skylens/airmarket/internal/models"
	"github.com/skylens/airmarket/pkg/currency"
)

const amadeusDefaultBaseURL = "https://test.api.amadeus.com"

type AmadeusConfig struct {
	APIKey     string
	APISecret  string
	BaseURL    string
	HTTPClient *http.Client
}

// AmadeusProvider is the primary flight offers source. Tokens from the
// client-credentials grant are cached until shortly before expiry.
type AmadeusProvider struct {
	cfg    AmadeusConfig
	client *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewAmadeusProvider(cfg AmadeusConfig) *AmadeusProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = amadeusDefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &AmadeusProvider{cfg: cfg, client: client}
}

func (p *AmadeusProvider) Name() string {
	return "amadeus"
}

type amadeusTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (p *AmadeusProvider) accessToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && time.Now().Before(p.tokenExpiry) {
		return p.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.cfg.APIKey)
	form.Set("client_secret", p.cfg.APISecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.cfg.BaseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Provider: p.Name(), StatusCode: resp.StatusCode, Message: readErrorBody(resp.Body)}
	}

	var token amadeusTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", &StatusError{Provider: p.Name(), StatusCode: resp.StatusCode, Message: "empty access token"}
	}

	p.token = token.AccessToken
	// Renew one minute early so in-flight requests never carry a stale token.
	p.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - time.Minute)
	return p.token, nil
}

type amadeusOffersResponse struct {
	Data []amadeusOffer `json:"data"`
}

type amadeusOffer struct {
	ID                string             `json:"id"`
	NumberOfSeats     int                `json:"numberOfBookableSeats"`
	Itineraries       []amadeusItinerary `json:"itineraries"`
	Price             amadeusPrice       `json:"price"`
	ValidatingCarrier []string           `json:"validatingAirlineCodes"`
}

type amadeusItinerary struct {
	Duration string           `json:"duration"`
	Segments []amadeusSegment `json:"segments"`
}

type amadeusSegment struct {
	CarrierCode string          `json:"carrierCode"`
	Number      string          `json:"number"`
	Departure   amadeusEndpoint `json:"departure"`
	Arrival     amadeusEndpoint `json:"arrival"`
}

type amadeusEndpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

type amadeusPrice struct {
	GrandTotal string `json:"grandTotal"`
	Currency   string `json:"currency"`
}

func (p *AmadeusProvider) Fetch(ctx context.Context, query models.FlightQuery) ([]models.FlightRecord, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}

	params := url.Values{}
	params.Set("originLocationCode", strings.ToUpper(query.Origin))
	params.Set("destinationLocationCode", strings.ToUpper(query.Destination))
	params.Set("departureDate", query.DepartureDate)
	params.Set("adults", strconv.Itoa(query.Adults))
	params.Set("travelClass", strings.ToUpper(query.CabinClass))
	params.Set("currencyCode", strings.ToUpper(query.Currency))
	if query.Children > 0 {
		params.Set("children", strconv.Itoa(query.Children))
	}
	if query.Infants > 0 {
		params.Set("infants", strconv.Itoa(query.Infants))
	}
	if query.ReturnDate != nil && *query.ReturnDate != "" {
		params.Set("returnDate", *query.ReturnDate)
	}
	if query.Filters != nil && query.Filters.NonStop {
		params.Set("nonStop", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.cfg.BaseURL+"/v2/shopping/flight-offers?"+params.Encode(), nil)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewProviderError(p.Name(),
			&StatusError{Provider: p.Name(), StatusCode: resp.StatusCode, Message: readErrorBody(resp.Body)})
	}

	var offers amadeusOffersResponse
	if err := json.NewDecoder(resp.Body).Decode(&offers); err != nil {
		return nil, NewProviderError(p.Name(), err)
	}

	records := make([]models.FlightRecord, 0, len(offers.Data))
	for _, offer := range offers.Data {
		record, err := p.normalize(offer, query)
		if err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (p *AmadeusProvider) normalize(offer amadeusOffer, query models.FlightQuery) (models.FlightRecord, error) {
	if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
		return models.FlightRecord{}, fmt.Errorf("offer %s has no segments", offer.ID)
	}
	itinerary := offer.Itineraries[0]
	first := itinerary.Segments[0]
	last := itinerary.Segments[len(itinerary.Segments)-1]

	depTime, err := time.Parse("2006-01-02T15:04:05", first.Departure.At)
	if err != nil {
		return models.FlightRecord{}, err
	}
	arrTime, err := time.Parse("2006-01-02T15:04:05", last.Arrival.At)
	if err != nil {
		return models.FlightRecord{}, err
	}

	amount, err := strconv.ParseFloat(offer.Price.GrandTotal, 64)
	if err != nil {
		return models.FlightRecord{}, err
	}

	code := first.CarrierCode
	return models.FlightRecord{
		ID:              "amadeus-" + offer.ID,
		Airline:         models.Airline{Code: code, Name: code},
		FlightNumber:    code + first.Number,
		Origin:          first.Departure.IATACode,
		Destination:     last.Arrival.IATACode,
		DepartureTime:   depTime,
		ArrivalTime:     arrTime,
		DurationMinutes: parseISODuration(itinerary.Duration),
		Stops:           len(itinerary.Segments) - 1,
		Price: models.Price{
			Amount:    amount,
			Currency:  offer.Price.Currency,
			Formatted: currency.Format(amount, offer.Price.Currency),
		},
		AvailableSeats: offer.NumberOfSeats,
		CabinClass:     query.CabinClass,
		Status:         "scheduled",
		Source:         p.Name(),
	}, nil
}

func (p *AmadeusProvider) Healthcheck(ctx context.Context) error {
	_, err := p.accessToken(ctx)
	return err
}

// parseISODuration converts an ISO 8601 duration like "PT2H35M" to minutes.
func parseISODuration(s string) int {
	s = strings.TrimPrefix(strings.ToUpper(s), "PT")
	var hours, mins int
	if idx := strings.Index(s, "H"); idx >= 0 {
		hours, _ = strconv.Atoi(s[:idx])
		s = s[idx+1:]
	}
	if idx := strings.Index(s, "M"); idx >= 0 {
		mins, _ = strconv.Atoi(s[:idx])
	}
	return hours*60 + mins
}

func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(body))
}
