package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "calendar_events"

// Outcomes of a backend call.
const (
	OutcomeOK             = "ok"
	OutcomeTransportError = "transport_error"
	OutcomeDecodeError    = "decode_error"
)

var (
	backendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Requests sent to the calendar-events backend, by method, outcome and envelope status.",
	}, []string{"method", "outcome", "status"})

	backendLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Latency of requests to the calendar-events backend.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	pageViews = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "page_views_total",
		Help:      "Rendered pages by route name and response code.",
	}, []string{"route", "code"})
)

// ObserveBackend records one backend call. status is the envelope status, empty when
// no envelope was decoded.
func ObserveBackend(method, outcome, status string, elapsed time.Duration) {
	backendRequests.WithLabelValues(method, outcome, status).Inc()
	backendLatency.WithLabelValues(method).Observe(elapsed.Seconds())
}

func BackendRequests(method, outcome, status string) prometheus.Counter {
	return backendRequests.WithLabelValues(method, outcome, status)
}

func ObservePage(route, code string) {
	pageViews.WithLabelValues(route, code).Inc()
}

func PageViews(route, code string) prometheus.Counter {
	return pageViews.WithLabelValues(route, code)
}
