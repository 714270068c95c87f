package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitegen"

// PrometheusRecorder keeps run metrics in a private registry. A nil
// *PrometheusRecorder is valid and records nothing.
type PrometheusRecorder struct {
	registry *prom.Registry

	stageSeconds *prom.HistogramVec
	stages       *prom.CounterVec
	buildSeconds prom.Histogram
	builds       *prom.CounterVec
	items        prom.Gauge
	skipped      prom.Gauge
	pages        *prom.CounterVec
	failures     *prom.CounterVec
	assets       *prom.CounterVec
}

// NewPrometheusRecorder registers the sitegen collectors on reg, or on a
// fresh registry when reg is nil. Registering twice on the same registry
// panics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	counter := func(name, help string, labels ...string) *prom.CounterVec {
		return prom.NewCounterVec(prom.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
	}
	gauge := func(name, help string) prom.Gauge {
		return prom.NewGauge(prom.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}

	p := &PrometheusRecorder{
		registry: reg,
		stageSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time of each generation stage.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"stage"}),
		stages: counter("stages_total", "Finished stages by stage and result.", "stage", "result"),
		buildSeconds: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Wall time of a whole build.",
			Buckets:   []float64{.01, .05, .1, .5, 1, 5, 10, 30},
		}),
		builds:   counter("builds_total", "Builds by outcome.", "outcome"),
		items:    gauge("content_items", "Content items loaded by the last build."),
		skipped:  gauge("content_skipped", "Content files the last build could not parse."),
		pages:    counter("pages_written_total", "HTML pages written by page kind.", "kind"),
		failures: counter("item_failures_total", "Pages or assets that failed without stopping the build.", "stage"),
		assets:   counter("assets_copied_total", "Files copied into the output by source.", "source"),
	}
	reg.MustRegister(p.stageSeconds, p.stages, p.buildSeconds, p.builds,
		p.items, p.skipped, p.pages, p.failures, p.assets)
	return p
}

func (p *PrometheusRecorder) StageFinished(stage string, result ResultLabel, d time.Duration) {
	if p == nil {
		return
	}
	p.stages.WithLabelValues(stage, string(result)).Inc()
	if d > 0 {
		p.stageSeconds.WithLabelValues(stage).Observe(d.Seconds())
	}
}

func (p *PrometheusRecorder) BuildFinished(outcome BuildOutcomeLabel, d time.Duration) {
	if p == nil {
		return
	}
	p.builds.WithLabelValues(string(outcome)).Inc()
	p.buildSeconds.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ContentLoaded(items, skipped int) {
	if p == nil {
		return
	}
	p.items.Set(float64(items))
	p.skipped.Set(float64(skipped))
}

func (p *PrometheusRecorder) PagesWritten(kind string, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.pages.WithLabelValues(kind).Add(float64(n))
}

func (p *PrometheusRecorder) ItemFailed(stage string) {
	if p == nil {
		return
	}
	p.failures.WithLabelValues(stage).Inc()
}

func (p *PrometheusRecorder) AssetsCopied(source string, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.assets.WithLabelValues(source).Add(float64(n))
}

// WriteTextfile dumps the registry to path in the text exposition format for
// a node_exporter textfile collector. The file is replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil {
		return nil
	}
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
