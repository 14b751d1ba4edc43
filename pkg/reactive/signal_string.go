package reactive

// StringSignal wraps Signal[string] with convenience methods for text.
type StringSignal struct {
	Signal[string]
}

// NewStringSignal creates a StringSignal in the default store.
func NewStringSignal(initial string) StringSignal {
	return NewStringSignalIn(defaultStore, initial)
}

// NewStringSignalIn creates a StringSignal in the given store.
func NewStringSignalIn(store *Store, initial string) StringSignal {
	return StringSignal{NewSignalIn(store, initial)}
}

// Append concatenates suffix onto the value.
func (s StringSignal) Append(suffix string) {
	s.Update(func(v string) string { return v + suffix })
}

// Clear resets the value to the empty string.
func (s StringSignal) Clear() {
	s.Set("")
}
