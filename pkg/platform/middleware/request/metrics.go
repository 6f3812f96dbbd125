package request

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	EndpointLatency *prometheus.HistogramVec
}

// NewMetrics registers the endpoint latency histogram with reg.
// A nil reg uses the default prometheus registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Metrics{
		EndpointLatency: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "amigowallet_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint", "method"}),
	}
}

func (m *Metrics) ObserveEndpointLatency(endpoint, method string, durationSeconds float64) {
	m.EndpointLatency.WithLabelValues(endpoint, method).Observe(durationSeconds)
}

// unmatchedEndpoint labels requests no route matched.
const unmatchedEndpoint = "unmatched"

// Latency records request latency labelled by the chi route pattern so path
// parameters do not explode label cardinality. Requests that match no route
// share the "unmatched" label.
func Latency(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			endpoint := unmatchedEndpoint
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					endpoint = pattern
				}
			}
			m.ObserveEndpointLatency(endpoint, r.Method, time.Since(start).Seconds())
		})
	}
}
