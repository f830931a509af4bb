// Package metrics counts evaluated cases for a prometheus textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	registry *prometheus.Registry
	cases    *prometheus.CounterVec
	length   prometheus.Histogram
	depth    prometheus.Histogram
	duration prometheus.Histogram
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		cases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "robotpath_cases_total",
			Help: "Cases processed, by outcome",
		}, []string{"outcome"}),
		length: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "robotpath_program_length_bytes",
			Help:    "Length of evaluated programs",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		depth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "robotpath_program_nesting_depth",
			Help:    "Deepest group nesting of evaluated programs",
			Buckets: prometheus.LinearBuckets(0, 2, 10),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "robotpath_case_duration_seconds",
			Help:    "Time spent parsing and evaluating one case",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 7),
		}),
	}
	c.registry.MustRegister(c.cases, c.length, c.depth, c.duration)
	return c
}

func (c *Collector) CaseEvaluated(programLen, depth int, elapsed time.Duration) {
	c.cases.WithLabelValues("ok").Inc()
	c.length.Observe(float64(programLen))
	c.depth.Observe(float64(depth))
	c.duration.Observe(elapsed.Seconds())
}

func (c *Collector) CaseFailed(reason string) {
	c.cases.WithLabelValues(reason).Inc()
}

// WriteFile dumps the metrics in text exposition format.
func (c *Collector) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
