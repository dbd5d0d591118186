package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// FailureKind is the closed taxonomy of provider failures. Downstream alert
// severity and any retry/backoff policy key on these values.
type FailureKind string

const (
	KindTimeout         FailureKind = "timeout"
	KindRateLimited     FailureKind = "rate_limited"
	KindAuthFailure     FailureKind = "auth_failure"
	KindInvalidResponse FailureKind = "invalid_response"
	KindNetworkError    FailureKind = "network_error"
	KindUnknown         FailureKind = "unknown"
)

// StatusError is an HTTP-level rejection from a vendor.
type StatusError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Provider, e.StatusCode)
}

// ServerSide reports whether the rejection was a 5xx.
func (e *StatusError) ServerSide() bool {
	return e.StatusCode >= 500
}

// Classify maps a low-level adapter error into the failure taxonomy.
func Classify(err error) FailureKind {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == 429:
			return KindRateLimited
		case statusErr.StatusCode == 401 || statusErr.StatusCode == 403:
			return KindAuthFailure
		default:
			return KindInvalidResponse
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindTimeout
		}
		return KindNetworkError
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return KindNetworkError
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return KindInvalidResponse
	}

	return KindUnknown
}
