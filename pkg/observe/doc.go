// Package observe provides observability integrations for the reactive
// engine: Prometheus metrics and OpenTelemetry traces, both delivered as
// reactive.Hooks installed on a Store at construction.
//
//	store := reactive.NewStore(
//	    reactive.WithHooks(observe.MetricsHooks()),
//	    reactive.WithHooks(observe.TracingHooks()),
//	)
package observe
