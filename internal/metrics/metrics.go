package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Suggestion outcomes
const (
	OutcomeOK              = "ok"
	OutcomeInvalid         = "invalid"
	OutcomeUpstreamFailure = "upstream_failure"
	OutcomeRateLimited     = "rate_limited"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freshkeep",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "freshkeep",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	SuggestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freshkeep",
			Subsystem: "suggestions",
			Name:      "requests_total",
			Help:      "Recipe suggestion requests by outcome",
		},
		[]string{"outcome"},
	)

	// UpstreamFailuresTotal separates failures that the fail-open response hides.
	UpstreamFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freshkeep",
			Subsystem: "suggestions",
			Name:      "upstream_failures_total",
			Help:      "Gateway failures absorbed into empty suggestion results",
		},
		[]string{"reason"},
	)

	GatewayDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "freshkeep",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Chat-completion gateway call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"model", "status"},
	)

	RecipesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "freshkeep",
			Subsystem: "suggestions",
			Name:      "recipes_returned",
			Help:      "Number of recipes returned per successful suggestion",
			Buckets:   []float64{0, 1, 2, 3, 5, 8},
		},
	)
)

func RecordRequest(method, endpoint, status string, seconds float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(seconds)
}

func RecordSuggestion(outcome string) {
	SuggestionsTotal.WithLabelValues(outcome).Inc()
}

func RecordUpstreamFailure(reason string) {
	UpstreamFailuresTotal.WithLabelValues(reason).Inc()
}

func RecordGatewayCall(model, status string, seconds float64) {
	GatewayDuration.WithLabelValues(model, status).Observe(seconds)
}
