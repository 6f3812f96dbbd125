package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the registration flow collectors.
type Metrics struct {
	Validations      *prometheus.CounterVec
	Registrations    prometheus.Counter
	Rejections       *prometheus.CounterVec
	OTPIssued        prometheus.Counter
	RegisterDuration prometheus.Histogram
}

// New registers the collectors with reg; nil uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Validations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "amigowallet_registration_validations_total",
			Help: "Validation attempts, labeled by outcome",
		}, []string{"outcome"}),
		Registrations: f.NewCounter(prometheus.CounterOpts{
			Name: "amigowallet_registrations_total",
			Help: "Users registered successfully",
		}),
		Rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "amigowallet_registration_rejections_total",
			Help: "Rejected registration requests, labeled by message key",
		}, []string{"key"}),
		OTPIssued: f.NewCounter(prometheus.CounterOpts{
			Name: "amigowallet_otp_issued_total",
			Help: "One-time passwords issued",
		}),
		RegisterDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "amigowallet_register_duration_seconds",
			Help:    "Duration of RegisterUser including hashing and persistence",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
		}),
	}
}

func (m *Metrics) IncrementValidation(outcome string) {
	m.Validations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementRegistrations() {
	m.Registrations.Inc()
}

func (m *Metrics) IncrementRejection(key string) {
	m.Rejections.WithLabelValues(key).Inc()
}

func (m *Metrics) IncrementOTPIssued() {
	m.OTPIssued.Inc()
}

func (m *Metrics) ObserveRegisterDuration(seconds float64) {
	m.RegisterDuration.Observe(seconds)
}
