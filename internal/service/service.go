package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/skylens/airmarket/internal/alerting"
	"github.com/skylens/airmarket/internal/cache"
	"github.com/skylens/airmarket/internal/mockdata"
	"github.com/skylens/airmarket/internal/models"
	"github.com/skylens/airmarket/internal/providers"
	"github.com/skylens/airmarket/internal/ratelimit"
)

const (
	defaultProviderTimeout = 10 * time.Second
	defaultCacheTTL        = time.Hour

	mockSource = mockdata.SourceName
)

// AlertSink receives alert events from the pipeline. The concrete emitter
// satisfies it; tests substitute a recorder.
type AlertSink interface {
	Emit(event alerting.Event)
}

// Config wires the pipeline's collaborators explicitly; there is no ambient
// global state, which keeps the service testable with fakes.
type Config struct {
	// Providers are tried strictly in slice order. First success with
	// non-empty records wins; there is no best-of-all merge. This trades
	// completeness for latency.
	Providers []providers.Provider
	Cache     cache.Store
	Mock      *mockdata.Generator
	Alerts    AlertSink
	Limiter   *ratelimit.ProviderLimiter
	Log       zerolog.Logger

	// ProviderTimeout bounds each provider call. Zero means 10s.
	ProviderTimeout time.Duration
	// CacheTTL is the lifetime of cached provider results. Zero means 1h.
	CacheTTL time.Duration
}

// DataService orchestrates cache, providers and the mock generator. One
// instance serves all requests concurrently; the provider loop within a
// single request is strictly sequential to preserve the priority order.
type DataService struct {
	cfg Config
	log zerolog.Logger

	mu       sync.Mutex
	failures map[string]int
}

func New(cfg Config) *DataService {
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = defaultProviderTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.Mock == nil {
		cfg.Mock = mockdata.NewGenerator()
	}
	return &DataService{
		cfg:      cfg,
		log:      cfg.Log.With().Str("component", "dataservice").Logger(),
		failures: make(map[string]int),
	}
}

// fetchOne runs a single provider under the per-call timeout and converts
// every outcome, including panics and adapters that never return, into a
// Result value.
func (s *DataService) fetchOne(ctx context.Context, p providers.Provider, query models.FlightQuery) providers.Result {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.ProviderTimeout)
	defer cancel()

	if s.cfg.Limiter != nil {
		if err := s.cfg.Limiter.Wait(callCtx, p.Name()); err != nil {
			return providers.Failure(p.Name(), providers.Classify(err), err)
		}
	}

	type outcome struct {
		records []models.FlightRecord
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%s: panic: %v", p.Name(), r)}
			}
		}()
		records, err := p.Fetch(callCtx, query)
		done <- outcome{records: records, err: err}
	}()

	select {
	case <-callCtx.Done():
		err := fmt.Errorf("%s: %w", p.Name(), callCtx.Err())
		return providers.Failure(p.Name(), providers.Classify(callCtx.Err()), err)
	case out := <-done:
		if out.err != nil {
			return providers.Failure(p.Name(), providers.Classify(out.err), out.err)
		}
		if len(out.records) == 0 {
			return providers.Empty(p.Name())
		}
		return providers.Success(p.Name(), out.records)
	}
}

// alertFailure records a provider failure and emits the alert with its
// classification-driven severity. Auth failures and unclassified errors are
// errors outright; other kinds start at warning and escalate when the
// provider fails repeatedly or the vendor answered with a 5xx.
func (s *DataService) alertFailure(res providers.Result) {
	alerting.RecordProviderError(res.Provider, string(res.Kind))

	s.mu.Lock()
	s.failures[res.Provider]++
	repeated := s.failures[res.Provider] > 1
	s.mu.Unlock()

	severity := alerting.SeverityWarning
	switch res.Kind {
	case providers.KindAuthFailure, providers.KindUnknown:
		severity = alerting.SeverityError
	default:
		var statusErr *providers.StatusError
		if repeated || (errors.As(res.Err, &statusErr) && statusErr.ServerSide()) {
			severity = alerting.SeverityError
		}
	}

	s.emit(alerting.NewEvent(
		"provider failure",
		fmt.Sprintf("provider %s failed (%s): %v", res.Provider, res.Kind, res.Err),
		severity,
		res.Provider,
	))
}

func (s *DataService) clearFailures(provider string) {
	s.mu.Lock()
	delete(s.failures, provider)
	s.mu.Unlock()
}

func (s *DataService) emit(event alerting.Event) {
	if s.cfg.Alerts != nil {
		s.cfg.Alerts.Emit(event)
	}
}
