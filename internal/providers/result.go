package providers

import "github.com/skylens/airmarket/internal/models"

// Result is the outcome of one provider attempt. Exactly one of the three
// states holds: success (Records non-empty, Err nil), empty (Records empty,
// Err nil), failure (Err non-nil, Kind set). Failure is a value here, not a
// control-flow exception: the orchestrator consumes Results in a plain loop.
type Result struct {
	Provider string
	Records  []models.FlightRecord
	Kind     FailureKind
	Err      error
}

func Success(provider string, records []models.FlightRecord) Result {
	return Result{Provider: provider, Records: records}
}

func Empty(provider string) Result {
	return Result{Provider: provider}
}

func Failure(provider string, kind FailureKind, err error) Result {
	return Result{Provider: provider, Kind: kind, Err: err}
}

func (r Result) Failed() bool {
	return r.Err != nil
}

func (r Result) IsEmpty() bool {
	return r.Err == nil && len(r.Records) == 0
}
