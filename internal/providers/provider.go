package providers

import (
	"context"

	"github.com/skylens/airmarket/internal/models"
)

// Provider wraps one external flight data source. Fetch runs under a
// timeout owned by the caller; returning an empty slice with a nil error
// means the vendor answered but had nothing for the query.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, query models.FlightQuery) ([]models.FlightRecord, error)
}

// AirportDirectory is implemented by providers that can list airports.
type AirportDirectory interface {
	Airports(ctx context.Context) ([]models.Airport, error)
}

// HealthChecker is implemented by providers that can probe vendor
// reachability without issuing a billable request.
type HealthChecker interface {
	Healthcheck(ctx context.Context) error
}

type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}
