package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce            sync.Once
	relayRequestsTotal      *prometheus.CounterVec
	relayLatencySeconds     *prometheus.HistogramVec
	contactSubmissionsTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the relay.
func RegisterMetrics() {
	registerOnce.Do(func() {
		relayRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_requests_total",
			Help: "Total number of relay HTTP requests served.",
		}, []string{"method", "route", "status"})

		relayLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "relay_latency_seconds",
			Help:    "Latency distribution for relay HTTP requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
		}, []string{"method", "route"})

		contactSubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Contact submissions by outcome (sent, spam, invalid, error).",
		}, []string{"outcome"})

		prometheus.MustRegister(relayRequestsTotal, relayLatencySeconds, contactSubmissionsTotal)
	})
}

// RelayRequests exposes the counter for relay requests.
func RelayRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return relayRequestsTotal
}

// RelayLatency exposes the latency histogram for relay requests.
func RelayLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return relayLatencySeconds
}

// ContactSubmissions exposes the per-outcome submission counter.
func ContactSubmissions() *prometheus.CounterVec {
	RegisterMetrics()
	return contactSubmissionsTotal
}
