package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for audit export.
type Metrics struct {
	Exported              prometheus.Counter
	ExportFailures        prometheus.Counter
	CircuitBreakerDropped prometheus.Counter
	CircuitBreakerState   prometheus.Gauge
	BufferDepth           prometheus.Gauge
	BufferOverflow        prometheus.Gauge
}

// NewMetrics registers audit export metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Exported: f.NewCounter(prometheus.CounterOpts{
			Name: "estategate_audit_exported_total",
			Help: "Total number of audit events delivered to the export sink",
		}),
		ExportFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "estategate_audit_export_failures_total",
			Help: "Total number of audit batches the export sink rejected",
		}),
		CircuitBreakerDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "estategate_audit_circuit_breaker_dropped_total",
			Help: "Total number of audit events dropped while the circuit breaker was open",
		}),
		CircuitBreakerState: f.NewGauge(prometheus.GaugeOpts{
			Name: "estategate_audit_circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed/healthy, 1=open/unhealthy)",
		}),
		BufferDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "estategate_audit_buffer_depth",
			Help: "Audit events waiting in the export buffer",
		}),
		BufferOverflow: f.NewGauge(prometheus.GaugeOpts{
			Name: "estategate_audit_buffer_overflow_events",
			Help: "Audit events lost to buffer overflow since start",
		}),
	}
}

func (m *Metrics) AddExported(n int) {
	if m == nil {
		return
	}
	m.Exported.Add(float64(n))
}

func (m *Metrics) IncExportFailures() {
	if m == nil {
		return
	}
	m.ExportFailures.Inc()
}

func (m *Metrics) AddCircuitBreakerDropped(n int) {
	if m == nil {
		return
	}
	m.CircuitBreakerDropped.Add(float64(n))
}

// SetCircuitBreakerState sets the circuit breaker state gauge.
func (m *Metrics) SetCircuitBreakerState(open bool) {
	if m == nil {
		return
	}
	if open {
		m.CircuitBreakerState.Set(1)
	} else {
		m.CircuitBreakerState.Set(0)
	}
}

func (m *Metrics) SetBuffer(depth int, overflow int64) {
	if m == nil {
		return
	}
	m.BufferDepth.Set(float64(depth))
	m.BufferOverflow.Set(float64(overflow))
}
