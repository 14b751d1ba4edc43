package reactive

import "time"

// Hooks receives lifecycle events from a Store. All fields are optional;
// nil callbacks are skipped. Hooks are invoked outside the store's
// critical section, after the operation they describe has completed, so
// they may safely read signals (they must not assume they run before the
// operation's subscribers).
//
// Hooks are the integration point for observability packages; see
// pkg/observe for Prometheus and OpenTelemetry implementations.
type Hooks struct {
	// OnInsert fires after a new slot is allocated.
	OnInsert func(id SignalID)

	// OnWrite fires after a signal's value is replaced, with the number
	// of subscribers in the write-time snapshot.
	OnWrite func(id SignalID, subscribers int)

	// OnNotify fires when a forwarding notification re-triggers an
	// observer's subscriber list, with the size of that snapshot.
	OnNotify func(id SignalID, subscribers int)

	// OnSubscribe fires after a subscriber, explicit or forwarding, is
	// appended to a signal's list.
	OnSubscribe func(id SignalID)

	// OnRecompute fires after a memo or effect finishes a recomputation.
	OnRecompute func(id SignalID, elapsed time.Duration)

	// OnReentrantSkip fires when a recomputation trigger is dropped
	// because the computation is already recomputing.
	OnReentrantSkip func(id SignalID)

	// OnRelease fires after a slot is released.
	OnRelease func(id SignalID)
}

// merge chains two hook sets; both fire, h first.
func (h Hooks) merge(next Hooks) Hooks {
	return Hooks{
		OnInsert:        chain1(h.OnInsert, next.OnInsert),
		OnWrite:         chain2(h.OnWrite, next.OnWrite),
		OnNotify:        chain2(h.OnNotify, next.OnNotify),
		OnSubscribe:     chain1(h.OnSubscribe, next.OnSubscribe),
		OnRecompute:     chain2(h.OnRecompute, next.OnRecompute),
		OnReentrantSkip: chain1(h.OnReentrantSkip, next.OnReentrantSkip),
		OnRelease:       chain1(h.OnRelease, next.OnRelease),
	}
}

func chain1[A any](a, b func(A)) func(A) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(x A) { a(x); b(x) }
}

func chain2[A, B any](a, b func(A, B)) func(A, B) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(x A, y B) { a(x, y); b(x, y) }
}

func (h Hooks) insert(id SignalID) {
	if h.OnInsert != nil {
		h.OnInsert(id)
	}
}

func (h Hooks) write(id SignalID, subscribers int) {
	if h.OnWrite != nil {
		h.OnWrite(id, subscribers)
	}
}

func (h Hooks) notified(id SignalID, subscribers int) {
	if h.OnNotify != nil {
		h.OnNotify(id, subscribers)
	}
}

func (h Hooks) subscribed(id SignalID) {
	if h.OnSubscribe != nil {
		h.OnSubscribe(id)
	}
}

func (h Hooks) recompute(id SignalID, elapsed time.Duration) {
	if h.OnRecompute != nil {
		h.OnRecompute(id, elapsed)
	}
}

func (h Hooks) reentrantSkip(id SignalID) {
	if h.OnReentrantSkip != nil {
		h.OnReentrantSkip(id)
	}
}

func (h Hooks) release(id SignalID) {
	if h.OnRelease != nil {
		h.OnRelease(id)
	}
}
