// Package metrics exposes Prometheus collectors for the resolution cascade.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cascade records one observation per adapter attempt and per finished
// resolution. A nil *Cascade is a valid no-op recorder.
type Cascade struct {
	registry    *prometheus.Registry
	steps       *prometheus.CounterVec
	stepLatency *prometheus.HistogramVec
	resolutions *prometheus.CounterVec
	cacheHits   *prometheus.CounterVec
}

// NewCascade registers the cascade collectors, plus Go runtime and process
// collectors, on a dedicated registry.
func NewCascade() *Cascade {
	registry := prometheus.NewRegistry()
	c := &Cascade{
		registry: registry,
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matchday_cascade_steps_total",
				Help: "Adapter attempts by resolution kind, league, adapter and outcome.",
			},
			[]string{"kind", "league", "adapter", "outcome"},
		),
		stepLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "matchday_cascade_step_duration_seconds",
				Help:    "Latency of a single adapter attempt.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
			},
			[]string{"kind", "adapter"},
		),
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matchday_resolutions_total",
				Help: "Finished resolutions by kind, league and confidence.",
			},
			[]string{"kind", "league", "confidence"},
		),
		cacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matchday_resolution_cache_hits_total",
				Help: "Resolutions served from the in-process cache.",
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(
		c.steps,
		c.stepLatency,
		c.resolutions,
		c.cacheHits,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Cascade) ObserveStep(kind, league, adapter, outcome string, took time.Duration) {
	if c == nil {
		return
	}
	c.steps.WithLabelValues(kind, league, adapter, outcome).Inc()
	c.stepLatency.WithLabelValues(kind, adapter).Observe(took.Seconds())
}

func (c *Cascade) ObserveResolution(kind, league, confidence string) {
	if c == nil {
		return
	}
	c.resolutions.WithLabelValues(kind, league, confidence).Inc()
}

func (c *Cascade) ObserveCacheHit(kind string) {
	if c == nil {
		return
	}
	c.cacheHits.WithLabelValues(kind).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (c *Cascade) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (c *Cascade) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}
