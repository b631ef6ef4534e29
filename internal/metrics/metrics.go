package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	DestinationDownload = "download"
	DestinationS3       = "s3"
)

// Metrics groups the application counters on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Calculations    prometheus.Counter
	InvalidInputs   prometheus.Counter
	ReportsExported *prometheus.CounterVec
	CyclesSaved     prometheus.Counter
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Calculations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pollos_calculations_total",
			Help: "Cycle reports computed.",
		}),
		InvalidInputs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pollos_invalid_inputs_total",
			Help: "Submitted cycle parameters rejected at the form.",
		}),
		ReportsExported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pollos_reports_exported_total",
			Help: "Spreadsheet reports exported, by destination.",
		}, []string{"destination"}),
		CyclesSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pollos_cycles_saved_total",
			Help: "Cycles stored for later review.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Calculations,
		m.InvalidInputs,
		m.ReportsExported,
		m.CyclesSaved,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
