// Package metrics exposes conversion counters through Prometheus.
//
// Collectors live on a private registry so that library users embedding the
// converter do not pollute the default registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "eventgrid"

// Collector groups the conversion metrics.
type Collector struct {
	registry    *prometheus.Registry
	events      *prometheus.CounterVec
	intervals   prometheus.Counter
	tiers       prometheus.Gauge
	duration    prometheus.Histogram
	conversions *prometheus.CounterVec
}

// New creates a Collector with its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Events read from event logs, by outcome.",
		}, []string{"outcome"}),
		intervals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intervals_total",
			Help:      "Intervals appended to TextGrid tiers.",
		}),
		tiers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tiers",
			Help:      "Tier count of the last converted document.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_seconds",
			Help:      "Wall time of a full conversion.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Conversions, by result.",
		}, []string{"result"}),
	}
	c.registry.MustRegister(c.events, c.intervals, c.tiers, c.duration, c.conversions)
	return c
}

// ObserveEvents adds n events with the given outcome (eventgrid.Outcome*).
func (c *Collector) ObserveEvents(outcome string, n int) {
	if c == nil || n == 0 {
		return
	}
	c.events.WithLabelValues(outcome).Add(float64(n))
}

// ObserveConversion records a finished conversion.
func (c *Collector) ObserveConversion(tiers, intervals int, took time.Duration, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	} else {
		c.tiers.Set(float64(tiers))
		c.intervals.Add(float64(intervals))
	}
	c.conversions.WithLabelValues(result).Inc()
	c.duration.Observe(took.Seconds())
}

// Registry returns the registry holding the collectors.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collectors in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// WriteTextfile writes the current values to path in the node_exporter
// textfile format. The file is replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
