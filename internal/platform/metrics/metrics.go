package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los contadores del seguimiento de vacunas.
// Cada instancia tiene su propio registry (varios routers en tests no chocan).
type Metrics struct {
	registry *prometheus.Registry

	SeriesCreated        prometheus.Counter
	DosesRecorded        prometheus.Counter
	VaccinationsRecorded *prometheus.CounterVec
	Transitions          prometheus.Counter
	Rejections           *prometheus.CounterVec
	OperationDuration    *prometheus.HistogramVec
}

func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		SeriesCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "initial_series_created_total",
			Help:      "Initial vaccination series set up",
		}),
		DosesRecorded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "initial_doses_recorded_total",
			Help:      "Initial series doses marked as administered",
		}),
		VaccinationsRecorded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "regular_vaccinations_recorded_total",
			Help:      "Regular vaccinations appended to a history",
		}, []string{"species"}),
		Transitions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_to_regular_total",
			Help:      "Initial series archived and moved to regular tracking",
		}),
		Rejections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_operations_total",
			Help:      "Operations rejected, by error kind",
		}, []string{"operation", "kind"}),
		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Time spent per tracking operation",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

// Handler expone el registry propio para /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry se expone para tests (testutil.ToFloat64 / Gather).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
