package reactive

import "testing"

func TestEffectRunsImmediately(t *testing.T) {
	store := NewStore()
	sig := NewSignalIn(store, 1)

	var seen []int
	NewEffectIn(store, func() { seen = append(seen, sig.Get()) })

	if len(seen) != 1 || seen[0] != 1 {
		t.Fatalf("effect initial run observed %v; want [1]", seen)
	}
}

func TestEffectRerunsOnDependencyWrite(t *testing.T) {
	store := NewStore()
	sig := NewSignalIn(store, 0)

	runs := 0
	NewEffectIn(store, func() {
		runs++
		_ = sig.Get()
	})

	sig.Set(1)
	sig.Set(2)

	if runs != 3 {
		t.Errorf("effect ran %d times; want 3 (initial + 2 writes)", runs)
	}
}

func TestEffectIgnoresUnreadSignals(t *testing.T) {
	store := NewStore()
	read := NewSignalIn(store, 0)
	unread := NewSignalIn(store, 0)

	runs := 0
	NewEffectIn(store, func() {
		runs++
		_ = read.Get()
	})

	unread.Set(1)
	if runs != 1 {
		t.Errorf("effect ran %d times after unrelated write; want 1", runs)
	}
}

func TestEffectReentrancyGuard(t *testing.T) {
	store := NewStore()
	sig := NewSignalIn(store, 1)

	runs := 0
	NewEffectIn(store, func() {
		runs++
		// Reads and writes its own dependency; the guard bounds this to
		// one pass per external trigger.
		sig.Set(sig.Get())
	})

	sig.Set(2)
	if runs != 2 {
		t.Errorf("effect ran %d times; want 2", runs)
	}
}

func TestEffectDispose(t *testing.T) {
	store := NewStore()
	sig := NewSignalIn(store, 0)

	runs := 0
	effect := NewEffectIn(store, func() {
		runs++
		_ = sig.Get()
	})

	if !effect.Dispose() {
		t.Fatal("Dispose failed")
	}

	// The forwarding subscription on sig still fires, but the disposed
	// effect's own subscriber list is gone, so nothing re-runs.
	sig.Set(1)
	if runs != 1 {
		t.Errorf("disposed effect ran %d times; want 1", runs)
	}
}

func TestEffectObserverRestored(t *testing.T) {
	store := NewStore()
	sig := NewSignalIn(store, 0)

	NewEffectIn(store, func() { _ = sig.Get() })

	// Reads after the effect's run are untracked again.
	subsBefore := len(store.subscribers[sig.ID()])
	_ = sig.Get()
	if got := len(store.subscribers[sig.ID()]); got != subsBefore {
		t.Errorf("top-level read installed a subscription: %d -> %d", subsBefore, got)
	}
}
