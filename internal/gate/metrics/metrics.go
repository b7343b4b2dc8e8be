package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Verification outcomes.
const (
	OutcomeGranted     = "granted"
	OutcomeDenied      = "denied"
	OutcomeUnavailable = "unavailable"
)

// Metrics provides observability for the gate module.
// Tracks verification outcomes, occupancy and the verify critical path.
type Metrics struct {
	Verifications   *prometheus.CounterVec
	Checkouts       prometheus.Counter
	ActiveVisitors  prometheus.Gauge
	EmergencyAlerts prometheus.Counter
	VerifyDuration  prometheus.Histogram
}

// New registers gate metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Verifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "estategate_verifications_total",
			Help: "Total number of gate verifications by outcome",
		}, []string{"outcome", "method"}),
		Checkouts: f.NewCounter(prometheus.CounterOpts{
			Name: "estategate_checkouts_total",
			Help: "Total number of visitors checked out",
		}),
		ActiveVisitors: f.NewGauge(prometheus.GaugeOpts{
			Name: "estategate_active_visitors",
			Help: "Visitors currently on premises",
		}),
		EmergencyAlerts: f.NewCounter(prometheus.CounterOpts{
			Name: "estategate_emergency_alerts_total",
			Help: "Total number of emergency alerts raised",
		}),
		VerifyDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "estategate_verify_duration_seconds",
			Help:    "Duration of Verify operations (gate critical path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// RecordVerification counts a verification outcome.
func (m *Metrics) RecordVerification(outcome, method string) {
	if m == nil {
		return
	}
	m.Verifications.WithLabelValues(outcome, method).Inc()
}

func (m *Metrics) IncCheckouts() {
	if m == nil {
		return
	}
	m.Checkouts.Inc()
}

func (m *Metrics) IncEmergencyAlerts() {
	if m == nil {
		return
	}
	m.EmergencyAlerts.Inc()
}

// VisitorEntered and VisitorLeft track on-premises occupancy.
func (m *Metrics) VisitorEntered() {
	if m == nil {
		return
	}
	m.ActiveVisitors.Inc()
}

func (m *Metrics) VisitorLeft() {
	if m == nil {
		return
	}
	m.ActiveVisitors.Dec()
}

// ObserveVerify records the duration of a Verify operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveVerify(start time.Time) {
	if m == nil {
		return
	}
	m.VerifyDuration.Observe(time.Since(start).Seconds())
}
