package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/skylens/airmarket/internal/alerting"
	"github.com/skylens/airmarket/internal/mockdata"
	"github.com/skylens/airmarket/internal/models"
	"github.com/skylens/airmarket/internal/providers"
)

// AirportOptions filter the airports directory. All fields optional.
type AirportOptions struct {
	Search      string
	Country     string
	IATA        string
	UseRealData bool
}

type AirportData struct {
	Data []models.Airport  `json:"data"`
	Meta models.ResultMeta `json:"meta"`
}

// GetAirports lists airports with the same fallback shape as flight data:
// directory-capable providers in priority order, then the built-in table.
func (s *DataService) GetAirports(ctx context.Context, opts AirportOptions) (*AirportData, error) {
	alerting.RecordRequest("airports")

	var warnings []string
	attempted := 0
	cancelled := false

	if opts.UseRealData {
		for _, p := range s.cfg.Providers {
			dir, ok := p.(providers.AirportDirectory)
			if !ok {
				continue
			}
			attempted++

			airports, err := s.fetchAirports(ctx, p, dir)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("provider %s failed: %v", p.Name(), err))
				if ctx.Err() != nil {
					cancelled = true
					break
				}
				s.alertFailure(providers.Failure(p.Name(), providers.Classify(err), err))
				continue
			}
			if len(airports) == 0 {
				warnings = append(warnings, fmt.Sprintf("provider %s returned no airports", p.Name()))
				continue
			}

			s.clearFailures(p.Name())
			return &AirportData{
				Data: filterAirports(airports, opts),
				Meta: models.ResultMeta{Source: p.Name(), Warnings: warnings},
			}, nil
		}
	}

	if opts.UseRealData && attempted > 0 && !cancelled {
		s.emit(alerting.NewEvent(
			"airport directory fallback",
			fmt.Sprintf("all %d directory providers failed or returned no data, serving mock data", attempted),
			alerting.SeverityWarning,
			"",
		))
	}

	return &AirportData{
		Data: filterAirports(s.cfg.Mock.Airports(), opts),
		Meta: models.ResultMeta{
			UsedFallback: opts.UseRealData && attempted > 0,
			Source:       mockSource,
			Warnings:     warnings,
		},
	}, nil
}

func (s *DataService) fetchAirports(ctx context.Context, p providers.Provider, dir providers.AirportDirectory) (airports []models.Airport, err error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.ProviderTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", p.Name(), r)
		}
	}()

	if s.cfg.Limiter != nil {
		if err := s.cfg.Limiter.Wait(callCtx, p.Name()); err != nil {
			return nil, err
		}
	}
	return dir.Airports(callCtx)
}

func filterAirports(airports []models.Airport, opts AirportOptions) []models.Airport {
	if opts.Search == "" && opts.Country == "" && opts.IATA == "" {
		return airports
	}

	search := strings.ToLower(opts.Search)
	country := strings.ToLower(opts.Country)
	iata := strings.ToUpper(opts.IATA)

	result := make([]models.Airport, 0, len(airports))
	for _, a := range airports {
		if iata != "" && a.IATA != iata {
			continue
		}
		if country != "" && !strings.Contains(strings.ToLower(a.Country), country) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Name), search) &&
			!strings.Contains(strings.ToLower(a.City), search) &&
			!strings.Contains(strings.ToLower(a.Country), search) &&
			!strings.EqualFold(a.IATA, search) {
			continue
		}
		result = append(result, a)
	}
	return result
}

// AirportAnalytics reports synthetic traffic analytics for one airport.
// Real analytics sources are not wired yet, matching the market data path.
func (s *DataService) AirportAnalytics(ctx context.Context, code string, days int) (*AirportAnalyticsData, error) {
	alerting.RecordRequest("airport_analytics")

	analytics, err := s.cfg.Mock.AirportAnalytics(code, days)
	if err != nil {
		return nil, err
	}
	return &AirportAnalyticsData{
		Data: analytics,
		Meta: models.ResultMeta{
			Source:   mockSource,
			Warnings: []string{"using mock data - real analytics not available"},
		},
	}, nil
}

type AirportAnalyticsData struct {
	Data *mockdata.AirportAnalytics `json:"data"`
	Meta models.ResultMeta          `json:"meta"`
}
