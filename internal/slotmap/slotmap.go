// Package slotmap provides a generational arena: a slice-backed map whose
// keys carry a version stamp so that a key for a deleted slot can never be
// confused with the slot's next occupant.
package slotmap

// Key identifies a slot in a Map. The zero Key is never issued by Insert
// and can be used as a "no slot" sentinel.
//
// Keys pack the slot index in the low 32 bits and the slot version in the
// high 32 bits. Versions start at 1 and are bumped on every delete, so a
// key only resolves while its slot holds the same occupant it was issued
// for.
type Key uint64

// NoKey is the zero Key, identifying no slot.
const NoKey Key = 0

func makeKey(index, version uint32) Key {
	return Key(uint64(version)<<32 | uint64(index))
}

func (k Key) index() uint32 {
	return uint32(k)
}

func (k Key) version() uint32 {
	return uint32(k >> 32)
}

// IsZero reports whether k is the "no slot" sentinel.
func (k Key) IsZero() bool {
	return k == NoKey
}

type slot[V any] struct {
	value    V
	version  uint32
	occupied bool
}

// Map is a generational arena of values of type V.
// The zero Map is ready to use. Map is not safe for concurrent use;
// callers serialize access.
type Map[V any] struct {
	slots []slot[V]
	free  []uint32
	count int
}

// Insert stores value in a fresh or recycled slot and returns its Key.
func (m *Map[V]) Insert(value V) Key {
	m.count++

	if n := len(m.free); n > 0 {
		idx := m.free[n-1]
		m.free = m.free[:n-1]
		s := &m.slots[idx]
		s.value = value
		s.occupied = true
		return makeKey(idx, s.version)
	}

	m.slots = append(m.slots, slot[V]{value: value, version: 1, occupied: true})
	return makeKey(uint32(len(m.slots)-1), 1)
}

// Get returns the value stored under key, or the zero V if the key is
// stale or was never issued.
func (m *Map[V]) Get(key Key) (V, bool) {
	if s := m.lookup(key); s != nil {
		return s.value, true
	}
	var zero V
	return zero, false
}

// Ptr returns a pointer to the value stored under key for in-place
// mutation. The pointer is invalidated by the next Insert or Delete.
func (m *Map[V]) Ptr(key Key) (*V, bool) {
	if s := m.lookup(key); s != nil {
		return &s.value, true
	}
	return nil, false
}

// Delete removes the value stored under key and recycles its slot.
// The slot's version is bumped so the deleted key goes permanently stale.
// Reports whether a value was removed.
func (m *Map[V]) Delete(key Key) bool {
	s := m.lookup(key)
	if s == nil {
		return false
	}

	var zero V
	s.value = zero
	s.occupied = false
	s.version++
	m.free = append(m.free, key.index())
	m.count--
	return true
}

// Contains reports whether key resolves to a live slot.
func (m *Map[V]) Contains(key Key) bool {
	return m.lookup(key) != nil
}

// Len returns the number of live slots.
func (m *Map[V]) Len() int {
	return m.count
}

// Keys returns the keys of all live slots in index order.
func (m *Map[V]) Keys() []Key {
	keys := make([]Key, 0, m.count)
	for i := range m.slots {
		if m.slots[i].occupied {
			keys = append(keys, makeKey(uint32(i), m.slots[i].version))
		}
	}
	return keys
}

func (m *Map[V]) lookup(key Key) *slot[V] {
	idx := key.index()
	if key == NoKey || int(idx) >= len(m.slots) {
		return nil
	}
	s := &m.slots[idx]
	if !s.occupied || s.version != key.version() {
		return nil
	}
	return s
}
