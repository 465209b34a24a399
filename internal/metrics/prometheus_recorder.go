package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	passDuration prom.Histogram
	passOutcome  *prom.CounterVec
	pagesWritten prom.Counter
	urlMappings  prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
// A nil registry gets a private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		passDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docsite",
			Name:      "render_pass_duration_seconds",
			Help:      "Duration of a complete render pass",
			Buckets:   prom.DefBuckets,
		}),
		passOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docsite",
			Name:      "render_pass_outcomes_total",
			Help:      "Render passes by final outcome",
		}, []string{"outcome"}),
		pagesWritten: prom.NewCounter(prom.CounterOpts{
			Namespace: "docsite",
			Name:      "pages_written_total",
			Help:      "Pages written to the output directory",
		}),
		urlMappings: prom.NewGauge(prom.GaugeOpts{
			Namespace: "docsite",
			Name:      "url_mappings",
			Help:      "URL mappings in the last render plan, including plugin-added pages",
		}),
	}
	reg.MustRegister(pr.passDuration, pr.passOutcome, pr.pagesWritten, pr.urlMappings)
	return pr
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

func (p *PrometheusRecorder) IncPagesWritten(n int) {
	if p == nil {
		return
	}
	p.pagesWritten.Add(float64(n))
}

func (p *PrometheusRecorder) SetURLMappings(n int) {
	if p == nil {
		return
	}
	p.urlMappings.Set(float64(n))
}

// WriteTextfile writes all metrics gathered from reg in the text exposition
// format, suitable for the node exporter textfile collector.
func WriteTextfile(path string, reg prom.Gatherer) error {
	return prom.WriteToTextfile(path, reg)
}
