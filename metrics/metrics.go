// Package metrics exposes a runtime's internal counters as Prometheus
// metrics. The engine itself never imports this; it is an opt-in outer
// consumer of the counters the runtime already keeps.
package metrics

import (
	"github.com/cellweave/cellweave/cells"
	"github.com/prometheus/client_golang/prometheus"
)

// Config configures the collector.
type Config struct {
	// Namespace is the metrics namespace (default: "cellweave").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels
}

// Option configures the collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

func defaultConfig() Config {
	return Config{Namespace: "cellweave"}
}

// Collector reads a runtime's Stats snapshot on every scrape. Scrapes must
// happen on the goroutine that owns the runtime, or while it is quiescent;
// the graph itself is not thread-safe and the collector adds no locking.
type Collector struct {
	rt *cells.Runtime

	cellsCreated   *prometheus.Desc
	recomputes     *prometheus.Desc
	notifications  *prometheus.Desc
	flushes        *prometheus.Desc
	queueHighWater *prometheus.Desc
	queueLen       *prometheus.Desc
}

// NewCollector builds a Prometheus collector over rt.
func NewCollector(rt *cells.Runtime, opts ...Option) *Collector {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(cfg.Namespace, cfg.Subsystem, name),
			help, nil, cfg.ConstLabels,
		)
	}
	return &Collector{
		rt:             rt,
		cellsCreated:   desc("cells_created_total", "Total cells created on this runtime"),
		recomputes:     desc("recomputes_total", "Total recipe executions"),
		notifications:  desc("notifications_total", "Total downstream value broadcasts"),
		flushes:        desc("flushes_total", "Total queue drains"),
		queueHighWater: desc("queue_high_water", "Largest recomputation queue observed"),
		queueLen:       desc("queue_len", "Recomputations currently queued"),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.cellsCreated
	ch <- c.recomputes
	ch <- c.notifications
	ch <- c.flushes
	ch <- c.queueHighWater
	ch <- c.queueLen
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.rt.Stats()
	counter := func(d *prometheus.Desc, v uint64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}
	counter(c.cellsCreated, s.CellsCreated)
	counter(c.recomputes, s.Recomputes)
	counter(c.notifications, s.Notifications)
	counter(c.flushes, s.Flushes)
	ch <- prometheus.MustNewConstMetric(c.queueHighWater, prometheus.GaugeValue, float64(s.QueueHighWater))
	ch <- prometheus.MustNewConstMetric(c.queueLen, prometheus.GaugeValue, float64(s.QueueLen))
}
