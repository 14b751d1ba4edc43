package reactive

import (
	"sync/atomic"
	"time"
)

// Memo is a computed signal: a derived value produced by a computation
// closed over other signals, re-run automatically whenever any signal it
// previously read changes. Its public surface mirrors the read side of
// Signal; the value can only change by recomputation.
//
// A memo's recompute routine is a two-state machine, idle and
// recomputing, governed by a reentrancy flag. Writing the freshly
// computed value into the memo's backing signal re-invokes the routine
// through the memo's self-subscription; the flag drops that nested
// trigger, which is what bounds the write, notify, recompute cycle to a
// single pass. A dropped trigger is a deliberate no-op, not an error.
type Memo[T any] struct {
	signal Signal[T]
}

// NewMemo creates a memo in the default store. The computation runs
// eagerly once to seed the value and register dependencies.
func NewMemo[T any](compute func() T) Memo[T] {
	return NewMemoIn(defaultStore, compute)
}

// NewMemoIn creates a memo in the given store.
//
// Dependency tracking is incremental: a dependency read in every
// recomputation is subscribed exactly once, because trackRead only
// installs a forwarding subscription the first time an (observer,
// dependency) pair is seen. A dependency that stops being read in later
// recomputations stays subscribed; its notifications recompute a value
// that no longer depends on it.
func NewMemoIn[T any](store *Store, compute func() T) Memo[T] {
	// Seed the backing signal before tracking so the recompute routine
	// has a slot to publish into.
	signal := NewSignalIn(store, compute())

	recompute := recomputeRoutine(store, signal.id, func() {
		prev := store.setObserver(signal.id)
		value := compute()
		store.setObserver(prev)
		signal.Set(value)
	})

	// Run once under the memo's own observer identity to register
	// dependencies and publish the tracked result.
	recompute()

	// Self-subscription: dependency writes forward into this memo's
	// backing signal, and that notification must re-run the computation
	// to re-derive state for the memo's own subscribers. The reentrancy
	// flag inside recompute keeps the resulting set from looping.
	signal.Subscribe(recompute)

	return Memo[T]{signal: signal}
}

// recomputeRoutine wraps run with the idle/recomputing guard shared by
// memos and effects: triggers received while recomputing are dropped, and
// the flag is released only after the routine's own write has finished
// notifying.
func recomputeRoutine(store *Store, id SignalID, run func()) func() {
	var recomputing atomic.Bool
	return func() {
		if recomputing.Swap(true) {
			store.stats.reentrantSkips.Add(1)
			store.hooks.reentrantSkip(id)
			return
		}
		start := time.Now()
		run()
		recomputing.Store(false)

		store.stats.recomputes.Add(1)
		store.hooks.recompute(id, time.Since(start))
	}
}

// ID returns the identity of the memo's backing signal. This is also the
// memo's observer identity in the dependency tracker.
func (m Memo[T]) ID() SignalID {
	return m.signal.ID()
}

// Get returns the current computed value as a tracked read.
func (m Memo[T]) Get() T {
	return m.signal.Get()
}

// Peek returns the current computed value without tracking.
func (m Memo[T]) Peek() T {
	return m.signal.Peek()
}

// With calls fn with the current computed value as a tracked read.
func (m Memo[T]) With(fn func(T)) {
	m.signal.With(fn)
}

// Subscribe registers a callback invoked after every recomputation that
// publishes a value.
func (m Memo[T]) Subscribe(callback func()) {
	m.signal.Subscribe(callback)
}

// ReadOnly returns the memo's backing signal as a read-only view.
func (m Memo[T]) ReadOnly() ReadOnly[T] {
	return m.signal.ReadOnly()
}
