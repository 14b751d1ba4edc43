package reactive

// ReadOnly is a read-only view of a signal. It prevents accidental
// mutation while still allowing reads and subscriptions, and compares
// equal to other views of the same slot.
type ReadOnly[T any] struct {
	inner Signal[T]
}

// ID returns the underlying signal's slot identity.
func (r ReadOnly[T]) ID() SignalID {
	return r.inner.ID()
}

// Get returns the current value as a tracked read.
func (r ReadOnly[T]) Get() T {
	return r.inner.Get()
}

// Peek returns the current value without tracking.
func (r ReadOnly[T]) Peek() T {
	return r.inner.Peek()
}

// With calls fn with the current value as a tracked read.
func (r ReadOnly[T]) With(fn func(T)) {
	r.inner.With(fn)
}

// WithUntracked calls fn with the current value without tracking.
func (r ReadOnly[T]) WithUntracked(fn func(T)) {
	r.inner.WithUntracked(fn)
}

// Subscribe registers a callback invoked after every change.
func (r ReadOnly[T]) Subscribe(callback func()) {
	r.inner.Subscribe(callback)
}
