package alerting

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts pipeline invocations by operation.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "airmarket_requests_total",
		Help: "Total pipeline requests by operation",
	}, []string{"operation"})

	// ProviderErrorsTotal counts provider failures by provider and kind.
	ProviderErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "airmarket_provider_errors_total",
		Help: "Total provider failures by provider and failure kind",
	}, []string{"provider", "kind"})

	// FallbackActivationsTotal counts requests served by the mock generator
	// after all providers were exhausted.
	FallbackActivationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "airmarket_fallback_activations_total",
		Help: "Total requests that fell back to synthetic data",
	})

	// CacheResultsTotal counts cache lookups by outcome (hit, miss, error).
	CacheResultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "airmarket_cache_results_total",
		Help: "Total cache lookups by outcome",
	}, []string{"outcome"})

	// AlertsTotal counts emitted alert events by severity.
	AlertsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "airmarket_alerts_total",
		Help: "Total alert events emitted by severity",
	}, []string{"severity"})
)

func RecordRequest(operation string) {
	RequestsTotal.WithLabelValues(operation).Inc()
}

func RecordProviderError(provider, kind string) {
	ProviderErrorsTotal.WithLabelValues(provider, kind).Inc()
}

func RecordFallback() {
	FallbackActivationsTotal.Inc()
}

func RecordCacheResult(outcome string) {
	CacheResultsTotal.WithLabelValues(outcome).Inc()
}
