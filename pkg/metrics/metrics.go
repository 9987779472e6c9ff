package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"soilai/entities"
)

// Metrics owns its own registry so tests and multiple servers in one process don't collide.
type Metrics struct {
	reg       *prometheus.Registry
	decisions *prometheus.CounterVec
	advisor   *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "soilai_decisions_total",
			Help: "Decisions produced, by pipeline path and action.",
		}, []string{"source", "action"}),
		advisor: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "soilai_advisor_request_seconds",
			Help:    "Remote advisor latency, by outcome.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		}, []string{"outcome"}),
	}
	m.reg.MustRegister(
		m.decisions,
		m.advisor,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveDecision(d entities.AIDecision) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(string(d.Source), string(d.Action)).Inc()
}

// ObserveAdvisor records one remote call; outcome is "ok", "unavailable" or "malformed".
func (m *Metrics) ObserveAdvisor(outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.advisor.WithLabelValues(outcome).Observe(took.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }
