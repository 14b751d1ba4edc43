package reactive

// IntSignal wraps Signal[int] with convenience methods for counters.
type IntSignal struct {
	Signal[int]
}

// NewIntSignal creates an IntSignal in the default store.
func NewIntSignal(initial int) IntSignal {
	return NewIntSignalIn(defaultStore, initial)
}

// NewIntSignalIn creates an IntSignal in the given store.
func NewIntSignalIn(store *Store, initial int) IntSignal {
	return IntSignal{NewSignalIn(store, initial)}
}

// Inc increments the value by 1.
func (s IntSignal) Inc() {
	s.Add(1)
}

// Dec decrements the value by 1.
func (s IntSignal) Dec() {
	s.Add(-1)
}

// Add adds delta to the value.
func (s IntSignal) Add(delta int) {
	s.Update(func(n int) int { return n + delta })
}
