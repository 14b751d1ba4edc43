package observe

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/strand-ui/strand/pkg/reactive"
)

func TestMetricsHooksCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	store := reactive.NewStore(reactive.WithHooks(
		MetricsHooks(WithRegistry(registry)),
	))

	sig := reactive.NewSignalIn(store, 0)
	sig.Subscribe(func() {})
	sig.Set(1)
	sig.Set(2)

	if got := metricValue(t, registry, "strand_reactive_signals"); got != 1 {
		t.Errorf("signals gauge = %v; want 1", got)
	}
	if got := metricValue(t, registry, "strand_reactive_writes_total"); got != 2 {
		t.Errorf("writes counter = %v; want 2", got)
	}
	if got := metricValue(t, registry, "strand_reactive_notifications_total"); got != 2 {
		t.Errorf("notifications counter = %v; want 2", got)
	}
}

func TestMetricsHooksGaugeTracksRelease(t *testing.T) {
	registry := prometheus.NewRegistry()
	store := reactive.NewStore(reactive.WithHooks(
		MetricsHooks(WithRegistry(registry)),
	))

	sig := reactive.NewSignalIn(store, 0)
	reactive.NewSignalIn(store, 0)
	sig.Dispose()

	if got := metricValue(t, registry, "strand_reactive_signals"); got != 1 {
		t.Errorf("signals gauge = %v after release; want 1", got)
	}
}

func TestMetricsHooksRecomputes(t *testing.T) {
	registry := prometheus.NewRegistry()
	store := reactive.NewStore(reactive.WithHooks(
		MetricsHooks(WithRegistry(registry)),
	))

	sig := reactive.NewSignalIn(store, 1)
	reactive.NewMemoIn(store, func() int { return sig.Get() * 2 })
	sig.Set(2)

	// Construction's tracked run plus one per write.
	if got := metricValue(t, registry, "strand_reactive_recomputes_total"); got != 2 {
		t.Errorf("recomputes counter = %v; want 2", got)
	}
	if got := metricValue(t, registry, "strand_reactive_reentrant_skips_total"); got == 0 {
		t.Error("reentrant skips counter never incremented")
	}
}

func TestMetricsHooksNamespaceOption(t *testing.T) {
	registry := prometheus.NewRegistry()
	store := reactive.NewStore(reactive.WithHooks(
		MetricsHooks(WithRegistry(registry), WithNamespace("custom"), WithSubsystem("graph")),
	))

	reactive.NewSignalIn(store, 0)

	if got := metricValue(t, registry, "custom_graph_signals"); got != 1 {
		t.Errorf("custom-namespaced gauge = %v; want 1", got)
	}
}

// metricValue gathers the registry and returns the single sample of the
// named metric family, failing the test if it is absent.
func metricValue(t *testing.T, registry *prometheus.Registry, name string) float64 {
	t.Helper()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		metrics := mf.GetMetric()
		if len(metrics) != 1 {
			t.Fatalf("metric %s has %d series; want 1", name, len(metrics))
		}
		if c := metrics[0].GetCounter(); c != nil {
			return c.GetValue()
		}
		if g := metrics[0].GetGauge(); g != nil {
			return g.GetValue()
		}
		t.Fatalf("metric %s is neither counter nor gauge", name)
	}
	t.Fatalf("metric %s not registered", name)
	return 0
}
