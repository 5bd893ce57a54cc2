// Package prometheus registers the service metrics and serves them over the
// standard /metrics handler.
package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the service emits. A nil *Metrics is a valid
// no-op recorder so that instrumentation never forces wiring.
type Metrics struct {
	registry *prometheus.Registry

	RunsStarted   prometheus.Counter
	RunsCompleted prometheus.Counter
	RunsFailed    prometheus.Counter

	CandidatesEvaluated prometheus.Counter
	CandidatesAdmitted  prometheus.Counter
	CandidatesInvalid   prometheus.Counter

	RunDuration   prometheus.Histogram
	RoundDuration prometheus.Histogram
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		RunsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leadscout_runs_started_total",
			Help: "Number of optimization runs started.",
		}),
		RunsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leadscout_runs_completed_total",
			Help: "Number of optimization runs that completed successfully.",
		}),
		RunsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leadscout_runs_failed_total",
			Help: "Number of optimization runs that failed.",
		}),
		CandidatesEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leadscout_candidates_evaluated_total",
			Help: "Number of candidate structures sent to the oracle.",
		}),
		CandidatesAdmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leadscout_candidates_admitted_total",
			Help: "Number of candidates that passed admission filtering.",
		}),
		CandidatesInvalid: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leadscout_candidates_invalid_total",
			Help: "Number of candidates the oracle rejected as malformed.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "leadscout_run_duration_seconds",
			Help:    "Wall-clock duration of complete runs.",
			Buckets: []float64{.1, .5, 1, 5, 10, 30, 60, 120, 300, 600},
		}),
		RoundDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "leadscout_round_duration_seconds",
			Help:    "Wall-clock duration of individual rounds.",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60},
		}),
	}

	reg.MustRegister(
		m.RunsStarted, m.RunsCompleted, m.RunsFailed,
		m.CandidatesEvaluated, m.CandidatesAdmitted, m.CandidatesInvalid,
		m.RunDuration, m.RoundDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Nil-safe convenience recorders used by the application service.

func (m *Metrics) RecordRunStarted() {
	if m != nil {
		m.RunsStarted.Inc()
	}
}

func (m *Metrics) RecordRunCompleted(seconds float64) {
	if m != nil {
		m.RunsCompleted.Inc()
		m.RunDuration.Observe(seconds)
	}
}

func (m *Metrics) RecordRunFailed() {
	if m != nil {
		m.RunsFailed.Inc()
	}
}

func (m *Metrics) RecordCandidates(evaluated, admitted, invalid int) {
	if m != nil {
		m.CandidatesEvaluated.Add(float64(evaluated))
		m.CandidatesAdmitted.Add(float64(admitted))
		m.CandidatesInvalid.Add(float64(invalid))
	}
}

//Personal.AI order the ending
