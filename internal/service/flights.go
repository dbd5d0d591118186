package service

import (
	"context"
	"fmt"

	"github.com/skylens/airmarket/internal/alerting"
	"github.com/skylens/airmarket/internal/cache"
	"github.com/skylens/airmarket/internal/filter"
	"github.com/skylens/airmarket/internal/models"
)

// FlightData is the orchestrator's answer: records plus provenance.
type FlightData struct {
	Data []models.FlightRecord `json:"data"`
	Meta models.ResultMeta     `json:"meta"`
}

// GetFlightData serves a flight query through cache, the configured
// providers in priority order, and finally the mock generator. Provider and
// cache failures never reach the caller; the only error this returns is a
// validation error on the query itself.
func (s *DataService) GetFlightData(ctx context.Context, query *models.FlightQuery) (*FlightData, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	alerting.RecordRequest("flights")

	var warnings []string

	if !query.RealDataAllowed() {
		// Explicit opt-out: no cache, no providers, no alert.
		records := filter.Apply(s.cfg.Mock.Flights(*query), *query)
		return &FlightData{
			Data: records,
			Meta: models.ResultMeta{
				UsedFallback: true,
				Source:       mockSource,
				Warnings:     []string{"real-time data disabled by request"},
			},
		}, nil
	}

	key := cache.Key(*query)

	payload, found, err := s.cfg.Cache.Get(ctx, key)
	switch {
	case err != nil:
		// A broken cache backend behaves like a miss.
		alerting.RecordCacheResult("error")
		warnings = append(warnings, fmt.Sprintf("cache unavailable: %v", err))
		s.log.Warn().Err(err).Msg("cache lookup failed, continuing to providers")
	case found:
		alerting.RecordCacheResult("hit")
		return &FlightData{
			Data: filter.Apply(payload.Records, *query),
			Meta: models.ResultMeta{Source: "cache"},
		}, nil
	default:
		alerting.RecordCacheResult("miss")
	}

	cancelled := false
	for _, p := range s.cfg.Providers {
		res := s.fetchOne(ctx, p, *query)

		if res.Failed() {
			warnings = append(warnings, fmt.Sprintf("provider %s failed: %v", res.Provider, res.Err))
			if ctx.Err() != nil {
				// The caller walked away; this is not a vendor fault.
				cancelled = true
				break
			}
			s.alertFailure(res)
			continue
		}

		if res.IsEmpty() {
			warnings = append(warnings, fmt.Sprintf("provider %s returned no results", res.Provider))
			continue
		}

		s.clearFailures(res.Provider)

		if err := s.cfg.Cache.Set(ctx, key, cache.Payload{
			Provider: res.Provider,
			Records:  res.Records,
		}, s.cfg.CacheTTL); err != nil {
			warnings = append(warnings, fmt.Sprintf("cache write failed: %v", err))
			s.log.Warn().Err(err).Str("provider", res.Provider).Msg("cache write failed")
		}

		return &FlightData{
			Data: filter.Apply(res.Records, *query),
			Meta: models.ResultMeta{
				Source:   res.Provider,
				Warnings: warnings,
			},
		}, nil
	}

	// Every provider failed or came back empty. Mock data is the floor the
	// pipeline never drops below; results are never cached so a recovered
	// provider takes over on the next request.
	alerting.RecordFallback()
	if !cancelled {
		s.emit(alerting.NewEvent(
			"flight data fallback",
			fmt.Sprintf("all %d providers failed or returned no data for %s-%s, serving mock data",
				len(s.cfg.Providers), query.Origin, query.Destination),
			alerting.SeverityWarning,
			"",
		))
	}

	records := filter.Apply(s.cfg.Mock.Flights(*query), *query)
	return &FlightData{
		Data: records,
		Meta: models.ResultMeta{
			UsedFallback: true,
			Source:       mockSource,
			Warnings:     warnings,
		},
	}, nil
}

// InvalidateFlightData busts the cache entry for a query.
func (s *DataService) InvalidateFlightData(ctx context.Context, query *models.FlightQuery) error {
	if err := query.Validate(); err != nil {
		return err
	}
	return s.cfg.Cache.Invalidate(ctx, cache.Key(*query))
}
