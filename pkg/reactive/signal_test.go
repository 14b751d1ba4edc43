package reactive

import (
	"errors"
	"testing"
)

func TestSignalRoundTrip(t *testing.T) {
	sig := NewSignal(42)

	if sig.Get() != 42 {
		t.Errorf("expected initial value 42, got %d", sig.Get())
	}

	sig.Set(7)
	if sig.Get() != 7 {
		t.Errorf("expected value 7 after Set, got %d", sig.Get())
	}
}

func TestSignalUpdate(t *testing.T) {
	sig := NewSignal(5)

	sig.Update(func(n int) int { return n * 2 })
	if sig.Get() != 10 {
		t.Errorf("expected 10 after Update, got %d", sig.Get())
	}
}

func TestSignalUpdateWith(t *testing.T) {
	sig := NewSignal(5)

	result := UpdateWith(sig, func(n *int) int {
		*n += 2
		return *n
	})
	if result != 7 {
		t.Errorf("UpdateWith returned %d; want 7", result)
	}
	if sig.Get() != 7 {
		t.Errorf("expected 7 after UpdateWith, got %d", sig.Get())
	}
}

func TestSignalWith(t *testing.T) {
	sig := NewSignal("hello")

	var length int
	sig.With(func(s string) { length = len(s) })
	if length != 5 {
		t.Errorf("With observed length %d; want 5", length)
	}
}

func TestSignalSubscribeCounts(t *testing.T) {
	store := NewStore()
	sig := NewSignalIn(store, 0)

	count := 0
	sig.Subscribe(func() { count++ })

	sig.Set(1)
	sig.Set(2)
	sig.Set(3)

	if count != 3 {
		t.Errorf("expected 3 notifications, got %d", count)
	}
}

func TestSignalMultipleSubscribersEachWrite(t *testing.T) {
	store := NewStore()
	sig := NewSignalIn(store, 0)

	counts := make([]int, 3)
	for i := range counts {
		i := i
		sig.Subscribe(func() { counts[i]++ })
	}

	for k := 0; k < 4; k++ {
		sig.Set(k)
	}

	for i, c := range counts {
		if c != 4 {
			t.Errorf("subscriber %d fired %d times; want 4", i, c)
		}
	}
}

func TestSignalNoNotificationBeforeFirstWrite(t *testing.T) {
	sig := NewSignal(0)

	fired := false
	sig.Subscribe(func() { fired = true })
	if fired {
		t.Error("subscriber fired before any write")
	}
}

func TestSignalSetAlwaysNotifies(t *testing.T) {
	sig := NewSignal(5)

	count := 0
	sig.Subscribe(func() { count++ })

	// Plain Set is a push, not a diff: writing an equal value notifies.
	sig.Set(5)
	if count != 1 {
		t.Errorf("Set of equal value fired %d notifications; want 1", count)
	}
}

func TestSignalSetIfChanged(t *testing.T) {
	sig := NewSignal(5)

	count := 0
	sig.Subscribe(func() { count++ })

	if sig.SetIfChanged(5) {
		t.Error("SetIfChanged(5) reported a change")
	}
	if sig.Get() != 5 || count != 0 {
		t.Errorf("no-op write altered state: value=%d notifications=%d", sig.Get(), count)
	}

	if !sig.SetIfChanged(6) {
		t.Error("SetIfChanged(6) reported no change")
	}
	if sig.Get() != 6 || count != 1 {
		t.Errorf("value=%d notifications=%d; want 6, 1", sig.Get(), count)
	}
}

func TestSignalSetIfChangedDeepEquality(t *testing.T) {
	sig := NewSignal([]int{1, 2})

	if sig.SetIfChanged([]int{1, 2}) {
		t.Error("deep-equal slice reported as changed")
	}
	if !sig.SetIfChanged([]int{1, 2, 3}) {
		t.Error("differing slice reported as unchanged")
	}
}

func TestSignalWithEquals(t *testing.T) {
	type point struct{ x, y int }

	// Only x participates in equality.
	sig := NewSignal(point{1, 1}).WithEquals(func(a, b point) bool {
		return a.x == b.x
	})

	if sig.SetIfChanged(point{1, 99}) {
		t.Error("custom equality ignored")
	}
	if !sig.SetIfChanged(point{2, 99}) {
		t.Error("differing x reported as unchanged")
	}
}

func TestSignalPeekDoesNotTrack(t *testing.T) {
	store := NewStore()
	sig := NewSignalIn(store, 42)

	recomputes := 0
	NewMemoIn(store, func() int {
		recomputes++
		return sig.Peek()
	})

	sig.Set(43)
	// Peek never installed a forwarding subscription.
	if recomputes != 2 {
		t.Errorf("memo recomputed %d times; want 2 (construction only)", recomputes)
	}
}

func TestSignalHandleEquality(t *testing.T) {
	store := NewStore()
	a := NewSignalIn(store, 10)
	b := a
	c := NewSignalIn(store, 10)

	if a != b {
		t.Error("copies of the same handle compare unequal")
	}
	if a == c {
		t.Error("distinct signals with equal values compare equal")
	}

	// Handles are hashable map keys.
	seen := map[Signal[int]]bool{a: true}
	if !seen[b] {
		t.Error("handle copy hashes differently")
	}
}

func TestSignalReadOnly(t *testing.T) {
	sig := NewSignal(42)
	ro := sig.ReadOnly()

	if ro.Get() != 42 {
		t.Errorf("ReadOnly.Get = %d; want 42", ro.Get())
	}

	count := 0
	ro.Subscribe(func() { count++ })
	sig.Set(43)
	if ro.Peek() != 43 || count != 1 {
		t.Errorf("ReadOnly view out of sync: value=%d notifications=%d", ro.Peek(), count)
	}
}

func TestSignalStaleHandlePanics(t *testing.T) {
	store := NewStore()
	sig := NewSignalIn(store, 1)

	if !sig.Dispose() {
		t.Fatal("Dispose failed")
	}

	assertPanics := func(name string, fn func()) {
		t.Helper()
		defer func() {
			r := recover()
			err, ok := r.(error)
			if !ok || !errors.Is(err, ErrStaleHandle) {
				t.Errorf("%s on stale handle: recovered %v; want ErrStaleHandle", name, r)
			}
		}()
		fn()
	}

	assertPanics("Get", func() { sig.Get() })
	assertPanics("Set", func() { sig.Set(2) })
	assertPanics("Update", func() { sig.Update(func(n int) int { return n }) })
	assertPanics("SetIfChanged", func() { sig.SetIfChanged(2) })
	assertPanics("Subscribe", func() { sig.Subscribe(func() {}) })
}

func TestSignalReentrantWriteFromSubscriber(t *testing.T) {
	store := NewStore()
	a := NewSignalIn(store, 0)
	b := NewSignalIn(store, 0)

	// Callbacks run against a released store, so writing another signal
	// from inside one is fine.
	a.Subscribe(func() { b.Set(a.Peek() * 10) })

	a.Set(3)
	if b.Get() != 30 {
		t.Errorf("nested write from subscriber: b = %d; want 30", b.Get())
	}
}
