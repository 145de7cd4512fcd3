package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/Catalogo-api/internal/application/ports"
)

var _ ports.SaleRecorder = (*SaleMetrics)(nil)

// SaleMetrics exporta a Prometheus las operaciones del gestor de ofertas.
type SaleMetrics struct {
	transitions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewSaleMetrics registra <namespace>_sale_transitions_total{action,outcome} y
// <namespace>_sale_operation_duration_seconds{action}. Si ya estaban registradas reutiliza las existentes.
func NewSaleMetrics(namespace string, reg prometheus.Registerer) (*SaleMetrics, error) {
	if namespace == "" {
		namespace = "catalog"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &SaleMetrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sale_transitions_total",
			Help:      "Operaciones update-sale por rama ejecutada y resultado.",
		}, []string{"action", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sale_operation_duration_seconds",
			Help:      "Latencia de update-sale incluyendo lectura y guardado.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action"}),
	}
	if err := reg.Register(m.transitions); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, fmt.Errorf("register sale counter: %w", err)
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, fmt.Errorf("register sale counter: %w", err)
		}
		m.transitions = existing
	}
	if err := reg.Register(m.duration); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, fmt.Errorf("register sale histogram: %w", err)
		}
		existing, ok := are.ExistingCollector.(*prometheus.HistogramVec)
		if !ok {
			return nil, fmt.Errorf("register sale histogram: %w", err)
		}
		m.duration = existing
	}
	return m, nil
}

// RecordSaleOperation implementa ports.SaleRecorder.
func (m *SaleMetrics) RecordSaleOperation(branch, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(branch, outcome).Inc()
	m.duration.WithLabelValues(branch).Observe(duration.Seconds())
}
