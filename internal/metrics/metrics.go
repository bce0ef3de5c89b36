// Package metrics exposes Prometheus instrumentation for the API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts handled API requests by operation and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vectorlab",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Number of API requests handled, by operation and status.",
	}, []string{"op", "status"})
)

// ObserveRequest records one handled request.
func ObserveRequest(op, status string) {
	RequestsTotal.WithLabelValues(op, status).Inc()
}

// Handler returns the /metrics scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
