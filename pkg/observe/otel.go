package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/strand-ui/strand/pkg/reactive"
)

// defaultTracerName is the tracer name used when none is configured.
const defaultTracerName = "strand"

// TracingConfig configures the OpenTelemetry hooks.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "strand").
	TracerName string

	// Filter determines which recomputations to trace. Return true to
	// trace. If nil, all recomputations are traced.
	Filter func(id reactive.SignalID) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(id reactive.SignalID) []attribute.KeyValue

	tracer trace.Tracer
}

// TracingOption configures the OpenTelemetry hooks.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithFilter sets a filter for which recomputations are traced.
func WithFilter(filter func(id reactive.SignalID) bool) TracingOption {
	return func(c *TracingConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(id reactive.SignalID) []attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultTracingConfig() TracingConfig {
	return TracingConfig{
		TracerName: defaultTracerName,
	}
}

// TracingHooks returns store hooks that emit one OpenTelemetry span per
// memo or effect recomputation, named "strand.recompute", carrying the
// observer's signal id and the recomputation duration.
//
// The hooks fire after a recomputation finishes, so the span is emitted
// retroactively with an adjusted start timestamp. The tracer comes from
// the global OpenTelemetry tracer provider; configure it in main() before
// creating stores:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func TracingHooks(opts ...TracingOption) reactive.Hooks {
	config := defaultTracingConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return reactive.Hooks{
		OnRecompute: func(id reactive.SignalID, elapsed time.Duration) {
			if config.Filter != nil && !config.Filter(id) {
				return
			}

			attrs := []attribute.KeyValue{
				attribute.String("strand.signal_id", id.String()),
				attribute.Float64("strand.recompute_seconds", elapsed.Seconds()),
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(id)...)
			}

			end := time.Now()
			_, span := config.tracer.Start(
				context.Background(),
				"strand.recompute",
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attrs...),
				trace.WithTimestamp(end.Add(-elapsed)),
			)
			span.End(trace.WithTimestamp(end))
		},
	}
}
