package observe

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/strand-ui/strand/pkg/reactive"
)

// MetricsConfig configures the Prometheus hooks.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "strand").
	Namespace string

	// Subsystem is the metrics subsystem (default: "reactive").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for recompute duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus hooks.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the recompute-duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "strand",
		Subsystem: "reactive",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// MetricsHooks returns store hooks that publish the reactive graph's
// activity as Prometheus metrics:
//
//   - strand_reactive_signals: Gauge of live signal slots
//   - strand_reactive_writes_total: Counter of signal writes
//   - strand_reactive_notifications_total: Counter of subscriber invocations
//   - strand_reactive_recomputes_total: Counter of memo/effect recomputations
//   - strand_reactive_recompute_duration_seconds: Histogram of recompute time
//   - strand_reactive_reentrant_skips_total: Counter of triggers dropped by
//     the reentrancy guard
//
// The hooks register their collectors on the configured registry at call
// time; calling MetricsHooks twice against the same registry panics, as
// duplicate registration does in Prometheus.
func MetricsHooks(opts ...MetricsOption) reactive.Hooks {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	signals := factory.NewGauge(prometheus.GaugeOpts{
		Namespace:   config.Namespace,
		Subsystem:   config.Subsystem,
		Name:        "signals",
		Help:        "Number of live signal slots in the store",
		ConstLabels: config.ConstLabels,
	})

	writes := factory.NewCounter(prometheus.CounterOpts{
		Namespace:   config.Namespace,
		Subsystem:   config.Subsystem,
		Name:        "writes_total",
		Help:        "Total number of signal writes",
		ConstLabels: config.ConstLabels,
	})

	notifications := factory.NewCounter(prometheus.CounterOpts{
		Namespace:   config.Namespace,
		Subsystem:   config.Subsystem,
		Name:        "notifications_total",
		Help:        "Total number of subscriber invocations",
		ConstLabels: config.ConstLabels,
	})

	recomputes := factory.NewCounter(prometheus.CounterOpts{
		Namespace:   config.Namespace,
		Subsystem:   config.Subsystem,
		Name:        "recomputes_total",
		Help:        "Total number of memo and effect recomputations",
		ConstLabels: config.ConstLabels,
	})

	recomputeDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace:   config.Namespace,
		Subsystem:   config.Subsystem,
		Name:        "recompute_duration_seconds",
		Help:        "Memo and effect recomputation duration in seconds",
		ConstLabels: config.ConstLabels,
		Buckets:     config.Buckets,
	})

	reentrantSkips := factory.NewCounter(prometheus.CounterOpts{
		Namespace:   config.Namespace,
		Subsystem:   config.Subsystem,
		Name:        "reentrant_skips_total",
		Help:        "Total number of recompute triggers dropped by the reentrancy guard",
		ConstLabels: config.ConstLabels,
	})

	return reactive.Hooks{
		OnInsert: func(reactive.SignalID) {
			signals.Inc()
		},
		OnRelease: func(reactive.SignalID) {
			signals.Dec()
		},
		OnWrite: func(_ reactive.SignalID, subscribers int) {
			writes.Inc()
			notifications.Add(float64(subscribers))
		},
		OnRecompute: func(_ reactive.SignalID, elapsed time.Duration) {
			recomputes.Inc()
			recomputeDuration.Observe(elapsed.Seconds())
		},
		OnReentrantSkip: func(reactive.SignalID) {
			reentrantSkips.Inc()
		},
	}
}
