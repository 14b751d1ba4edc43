package reactive

// Signal is a cheap, copyable handle to a mutable, observable value slot.
// Handles carry only an identity (slot id plus logical generation) and a
// reference to their store; the store owns the value. Two handles compare
// equal exactly when they name the same slot at the same generation, and
// handles are usable as map keys.
//
// Any operation through a handle whose slot is gone or whose generation no
// longer matches panics with ErrStaleHandle; see that error for why this
// is a hard failure rather than a no-op.
type Signal[T any] struct {
	id         SignalID
	generation uint32
	store      *Store
}

// NewSignal creates a signal in the default store with the given initial
// value.
func NewSignal[T any](initial T) Signal[T] {
	return NewSignalIn(defaultStore, initial)
}

// NewSignalIn creates a signal in the given store with the given initial
// value.
func NewSignalIn[T any](store *Store, initial T) Signal[T] {
	return Signal[T]{
		id:    store.insert(initial),
		store: store,
	}
}

// ID returns the signal's slot identity (mainly for diagnostics).
func (s Signal[T]) ID() SignalID {
	return s.id
}

// Store returns the store this handle belongs to.
func (s Signal[T]) Store() *Store {
	return s.store
}

// Get returns the current value. If a computation is currently being
// tracked, the read is attributed to it: the computation will re-run when
// this signal changes.
func (s Signal[T]) Get() T {
	s.store.trackRead(s.id)
	return s.Peek()
}

// Peek returns the current value without attributing the read to any
// computation.
func (s Signal[T]) Peek() T {
	value, ok := s.store.get(s.id, s.generation)
	if !ok {
		panic(ErrStaleHandle)
	}
	typed, ok := value.(T)
	if !ok {
		panic(ErrTypeMismatch)
	}
	return typed
}

// With calls fn with the current value as a tracked read.
func (s Signal[T]) With(fn func(T)) {
	s.store.trackRead(s.id)
	fn(s.Peek())
}

// WithUntracked calls fn with the current value without tracking.
func (s Signal[T]) WithUntracked(fn func(T)) {
	fn(s.Peek())
}

// Set replaces the value and synchronously invokes every subscriber in
// the write-time snapshot, in registration order, before returning.
// Subscribers registered during the invocation batch are deferred to the
// next write.
func (s Signal[T]) Set(value T) {
	subs, ok := s.store.set(s.id, s.generation, value)
	if !ok {
		panic(ErrStaleHandle)
	}
	s.store.invoke(s.id, subs)
}

// SetIfChanged writes value only when it differs from the current value
// under the signal's equality function (WithEquals, defaulting to == for
// comparable kinds and reflect.DeepEqual otherwise). Reports whether a
// write happened; an equal value performs no write and notifies nobody.
func (s Signal[T]) SetIfChanged(value T) bool {
	equal, ok := s.store.equalAt(s.id, s.generation, value, erasedEquals(defaultEquals[T]))
	if !ok {
		panic(ErrStaleHandle)
	}
	if equal {
		return false
	}
	s.Set(value)
	return true
}

// Update replaces the value with fn(current) and notifies subscribers.
// fn runs inside the store's critical section and must not read or write
// other signals.
func (s Signal[T]) Update(fn func(T) T) {
	UpdateWith(s, func(v *T) struct{} {
		*v = fn(*v)
		return struct{}{}
	})
}

// UpdateWith applies fn to the value in place, notifies subscribers, and
// returns fn's result. fn runs inside the store's critical section and
// must not read or write other signals.
func UpdateWith[T, R any](s Signal[T], fn func(*T) R) R {
	result, subs, ok := storeUpdate(s.store, s.id, s.generation, fn)
	if !ok {
		panic(ErrStaleHandle)
	}
	s.store.invoke(s.id, subs)
	return result
}

// WithEquals installs a custom equality function used by SetIfChanged,
// for types where the default is too expensive or has the wrong
// semantics. Returns the handle for chaining.
func (s Signal[T]) WithEquals(fn func(a, b T) bool) Signal[T] {
	if !s.store.setEqual(s.id, s.generation, erasedEquals(fn)) {
		panic(ErrStaleHandle)
	}
	return s
}

// Subscribe registers a callback invoked after every change to this
// signal. The callback is not tied to dependency tracking and fires on
// every write for the life of the slot; the core exposes no unsubscribe.
func (s Signal[T]) Subscribe(callback func()) {
	if !s.store.contains(s.id, s.generation) {
		panic(ErrStaleHandle)
	}
	s.store.subscribe(s.id, callback)
}

// ReadOnly returns a read-only view of this signal.
func (s Signal[T]) ReadOnly() ReadOnly[T] {
	return ReadOnly[T]{inner: s}
}

// Dispose releases the signal's slot in its store. Every handle to the
// slot, including this one, goes stale. See Store.Release.
func (s Signal[T]) Dispose() bool {
	return s.store.Release(s.id, s.generation)
}

// storeUpdate applies a typed in-place transformation under the store's
// lock, avoiding a full copy-out/replace cycle, and returns the write-time
// subscriber snapshot alongside fn's result.
func storeUpdate[T, R any](s *Store, id SignalID, generation uint32, fn func(*T) R) (R, []Subscriber, bool) {
	s.mu.Lock()
	sv, live := s.values.Ptr(slotKey(id))
	if !live || sv.generation != generation {
		s.mu.Unlock()
		var zero R
		return zero, nil, false
	}
	value, ok := sv.value.(T)
	if !ok {
		s.mu.Unlock()
		panic(ErrTypeMismatch)
	}
	result := fn(&value)
	sv.value = value
	subs := s.snapshotLocked(id)
	s.mu.Unlock()

	s.stats.writes.Add(1)
	s.hooks.write(id, len(subs))
	return result, subs, true
}
