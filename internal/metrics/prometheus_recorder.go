package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "taxogen"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	phaseDuration   *prom.HistogramVec
	passDuration    prom.Histogram
	passOutcome     *prom.CounterVec
	classifications *prom.GaugeVec
	tasks           *prom.CounterVec
	errors          *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		phaseDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "phase_duration_seconds",
			Help:      "Duration of individual pass phases",
			Buckets:   prom.DefBuckets,
		}, []string{"phase"}),
		passDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_duration_seconds",
			Help:      "Total pass duration",
			Buckets:   prom.DefBuckets,
		}),
		passOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pass_outcomes_total",
			Help:      "Passes by final status",
		}, []string{"outcome"}),
		classifications: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "classifications",
			Help:      "Classifications per taxonomy and language in the last pass",
		}, []string{"taxonomy", "lang"}),
		tasks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_total",
			Help:      "Emitted tasks by kind",
		}, []string{"kind"}),
		errors: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Fatal problems by error category",
		}, []string{"category"}),
	}
	reg.MustRegister(pr.phaseDuration, pr.passDuration, pr.passOutcome, pr.classifications, pr.tasks, pr.errors)
	return pr
}

func (p *PrometheusRecorder) ObservePhaseDuration(phase string, d time.Duration) {
	if p == nil {
		return
	}
	p.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObservePassDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.passDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPassOutcome(outcome PassOutcome) {
	if p == nil {
		return
	}
	p.passOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetClassifications(taxonomy, lang string, n int) {
	if p == nil {
		return
	}
	p.classifications.WithLabelValues(taxonomy, lang).Set(float64(n))
}

func (p *PrometheusRecorder) AddTasks(kind string, n int) {
	if p == nil {
		return
	}
	p.tasks.WithLabelValues(kind).Add(float64(n))
}

func (p *PrometheusRecorder) AddErrors(category string, n int) {
	if p == nil {
		return
	}
	p.errors.WithLabelValues(category).Add(float64(n))
}
