package reactive

// Effect runs a side effect whenever any signal it read during its last
// run changes. An effect is a memo without a value: it owns an observer
// identity slot in the store, runs its function under that observer, and
// re-runs through the same forwarding mechanism and reentrancy guard.
type Effect struct {
	id    SignalID
	store *Store
}

// effectMarker occupies an effect's identity slot.
type effectMarker struct{}

// NewEffect creates an effect in the default store. The function runs
// immediately and re-runs on dependency changes.
func NewEffect(fn func()) Effect {
	return NewEffectIn(defaultStore, fn)
}

// NewEffectIn creates an effect in the given store.
func NewEffectIn(store *Store, fn func()) Effect {
	id := store.insert(effectMarker{})

	run := recomputeRoutine(store, id, func() {
		prev := store.setObserver(id)
		fn()
		store.setObserver(prev)
	})

	run()

	// Forwarding subscriptions notify the observer's own id; re-run the
	// effect when that happens.
	store.subscribe(id, run)

	return Effect{id: id, store: store}
}

// ID returns the effect's observer identity.
func (e Effect) ID() SignalID {
	return e.id
}

// Dispose releases the effect's identity slot; pending forwarding
// subscriptions toward it become no-ops.
func (e Effect) Dispose() bool {
	return e.store.Release(e.id, 0)
}
