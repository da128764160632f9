// Package metrics exposes the service counters on a dedicated registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cinelink"

// Registry holds only cinelink collectors, not the Go runtime defaults.
var Registry = prometheus.NewRegistry()

var (
	Resolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolutions_total",
		Help:      "Stream resolutions by outcome.",
	}, []string{"outcome"})

	RelayRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relay_requests_total",
		Help:      "Relay requests by outcome.",
	}, []string{"outcome"})

	RelayBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relay_bytes_total",
		Help:      "Bytes returned by successful relay requests.",
	})
)

func init() {
	Registry.MustRegister(Resolutions, RelayRequests, RelayBytes)
}

// Handler serves Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
