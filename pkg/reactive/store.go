package reactive

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/strand-ui/strand/internal/slotmap"
)

// SignalID is an opaque identifier for a signal slot within a Store.
// IDs are comparable with O(1) equality and are reused after release, but
// only with a bumped slot version, so a released ID never aliases a new
// occupant. The zero SignalID identifies no signal.
type SignalID uint64

// NoSignal is the zero SignalID, identifying no signal. It doubles as the
// "no current observer" sentinel.
const NoSignal SignalID = 0

// String renders the ID for logs and the inspect surface.
func (id SignalID) String() string {
	if id == NoSignal {
		return "signal(none)"
	}
	return fmt.Sprintf("signal(%d.%d)", uint32(id), uint32(id>>32))
}

// slotKey converts a SignalID back to its arena key.
func slotKey(id SignalID) slotmap.Key {
	return slotmap.Key(id)
}

// Subscriber is a no-argument callback invoked after a signal's value
// changes. Subscribers fire on every write, in registration order, from
// the snapshot taken at write time.
type Subscriber func()

// signalValue is a type-erased slot occupant: one value of some
// compile-time-known type, paired with the logical generation its handles
// carry and an optional equality function for SetIfChanged.
type signalValue struct {
	value      any
	generation uint32
	equal      func(a, b any) bool
}

// Store owns all signal values behind generation-tagged slots and is the
// single source of truth for the reactive graph: the value arena, the
// per-signal subscriber lists, and the dependency tracker share one lock.
//
// The lock is never held across a subscriber callback. Every operation
// that notifies first snapshots the relevant subscriber list inside the
// critical section, releases it, and only then invokes the callbacks, so
// re-entrant reads and writes from inside a callback are safe.
type Store struct {
	mu     sync.Mutex
	values slotmap.Map[signalValue]

	// subscribers holds each signal's callbacks in registration order.
	// Entries are never pruned; a released signal's list is dropped
	// wholesale by Release.
	subscribers map[SignalID][]Subscriber

	// deps maps an observer's SignalID to the set of signals it has read
	// at least once, used solely to install the forwarding subscription
	// for each (observer, dependency) pair exactly once.
	deps map[SignalID]map[SignalID]struct{}

	// observer names the computation currently eligible to have its
	// reads tracked. A single slot, not a stack: tracked computations do
	// not nest, and re-entrant tracked reads attribute to whichever
	// observer is currently set.
	observer SignalID

	hooks Hooks
	stats storeStats
}

// StoreOption configures a Store at construction.
type StoreOption func(*Store)

// WithHooks installs lifecycle hooks on the store. May be given multiple
// times; all installed hook sets fire in installation order.
func WithHooks(h Hooks) StoreOption {
	return func(s *Store) {
		s.hooks = s.hooks.merge(h)
	}
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		subscribers: make(map[SignalID][]Subscriber),
		deps:        make(map[SignalID]map[SignalID]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// defaultStore backs the package-level convenience constructors.
var defaultStore = NewStore()

// Default returns the shared store used by NewSignal, NewMemo and
// NewEffect. Embedders that need isolation (tests especially) should
// create their own store and use the *In constructors instead.
func Default() *Store {
	return defaultStore
}

// insert allocates a fresh slot holding value at generation 0.
func (s *Store) insert(value any) SignalID {
	s.mu.Lock()
	id := SignalID(s.values.Insert(signalValue{value: value}))
	s.mu.Unlock()

	s.stats.inserts.Add(1)
	s.hooks.insert(id)
	return id
}

// get returns the stored value if the slot exists and its generation
// matches the handle's.
func (s *Store) get(id SignalID, generation uint32) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sv, ok := s.values.Get(slotmap.Key(id))
	if !ok || sv.generation != generation {
		return nil, false
	}
	return sv.value, true
}

// contains reports whether id resolves to a live slot at the handle's
// generation.
func (s *Store) contains(id SignalID, generation uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sv, ok := s.values.Get(slotmap.Key(id))
	return ok && sv.generation == generation
}

// set replaces the stored value if the generation matches and returns the
// write-time snapshot of the slot's subscriber list for the caller to
// invoke outside the critical section.
func (s *Store) set(id SignalID, generation uint32, value any) ([]Subscriber, bool) {
	s.mu.Lock()
	sv, ok := s.values.Ptr(slotmap.Key(id))
	if !ok || sv.generation != generation {
		s.mu.Unlock()
		return nil, false
	}
	sv.value = value
	subs := s.snapshotLocked(id)
	s.mu.Unlock()

	s.stats.writes.Add(1)
	s.hooks.write(id, len(subs))
	return subs, true
}

// setEqual installs a per-slot equality function used by SetIfChanged.
func (s *Store) setEqual(id SignalID, generation uint32, equal func(a, b any) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sv, ok := s.values.Ptr(slotmap.Key(id))
	if !ok || sv.generation != generation {
		return false
	}
	sv.equal = equal
	return true
}

// equalAt reports whether value equals the slot's current value, using the
// slot's equality function when one is installed.
func (s *Store) equalAt(id SignalID, generation uint32, value any, fallback func(a, b any) bool) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sv, ok := s.values.Get(slotmap.Key(id))
	if !ok || sv.generation != generation {
		return false, false
	}
	eq := sv.equal
	if eq == nil {
		eq = fallback
	}
	return eq(sv.value, value), true
}

// subscribe appends a callback to the slot's subscriber list. No
// deduplication, no ordering guarantee beyond FIFO. The core exposes no
// unsubscribe; disposal is per-slot via Release.
func (s *Store) subscribe(id SignalID, callback Subscriber) {
	if callback == nil {
		return
	}
	s.mu.Lock()
	s.subscribers[id] = append(s.subscribers[id], callback)
	s.mu.Unlock()

	s.stats.subscriptions.Add(1)
	s.hooks.subscribed(id)
}

// trackRead records that the current observer, if any, read id. The first
// time a given (observer, id) pair is seen, a forwarding subscription is
// installed on id that re-triggers the observer's computation; repeat
// reads across any number of recomputations install nothing further.
func (s *Store) trackRead(id SignalID) {
	s.mu.Lock()
	observer := s.observer
	if observer == NoSignal {
		s.mu.Unlock()
		return
	}

	set := s.deps[observer]
	if set == nil {
		set = make(map[SignalID]struct{})
		s.deps[observer] = set
	}
	if _, seen := set[id]; seen {
		s.mu.Unlock()
		s.stats.trackedReads.Add(1)
		return
	}
	set[id] = struct{}{}
	s.subscribers[id] = append(s.subscribers[id], func() { s.notify(observer) })
	s.mu.Unlock()

	s.stats.trackedReads.Add(1)
	s.stats.subscriptions.Add(1)
	s.hooks.subscribed(id)
}

// setObserver swaps the current observer, returning the previous one so
// the caller can restore it. The explicit save/restore discipline stands
// in for a call stack; tracked computations never truly nest.
func (s *Store) setObserver(observer SignalID) SignalID {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.observer
	s.observer = observer
	return prev
}

// notify invokes the current subscriber snapshot of id. Used by
// forwarding subscriptions to re-trigger a dependent computation.
func (s *Store) notify(id SignalID) {
	s.mu.Lock()
	subs := s.snapshotLocked(id)
	s.mu.Unlock()

	s.hooks.notified(id, len(subs))
	s.invoke(id, subs)
}

// invoke runs a subscriber snapshot outside the critical section.
func (s *Store) invoke(id SignalID, subs []Subscriber) {
	for _, cb := range subs {
		cb()
	}
	s.stats.notifications.Add(int64(len(subs)))
}

// Release removes the slot identified by id if the generation matches,
// dropping its value, its subscriber list, and its dependency set. The
// slot becomes eligible for reuse under a new version; handles to the
// released slot go permanently stale.
//
// Forwarding subscriptions that other signals hold toward the released
// observer are not pruned: they keep firing into an empty subscriber list,
// which is a no-op. This matches the engine's monotonic-growth contract.
//
// Nothing in this package releases implicitly; the capability exists so
// hosts that manage computation lifetimes can reclaim slots.
func (s *Store) Release(id SignalID, generation uint32) bool {
	s.mu.Lock()
	sv, ok := s.values.Get(slotmap.Key(id))
	if !ok || sv.generation != generation {
		s.mu.Unlock()
		return false
	}
	s.values.Delete(slotmap.Key(id))
	delete(s.subscribers, id)
	delete(s.deps, id)
	s.mu.Unlock()

	s.stats.releases.Add(1)
	s.hooks.release(id)
	return true
}

// Len returns the number of live signal slots.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.Len()
}

// snapshotLocked copies id's subscriber list. Callers hold s.mu.
// Subscribers registered after the snapshot is taken, including from
// within one of the snapshot's own callbacks, are deferred to the next
// write.
func (s *Store) snapshotLocked(id SignalID) []Subscriber {
	subs := s.subscribers[id]
	if len(subs) == 0 {
		return nil
	}
	out := make([]Subscriber, len(subs))
	copy(out, subs)
	return out
}

// storeStats holds the store's atomic counters.
type storeStats struct {
	inserts        atomic.Int64
	releases       atomic.Int64
	writes         atomic.Int64
	notifications  atomic.Int64
	subscriptions  atomic.Int64
	trackedReads   atomic.Int64
	recomputes     atomic.Int64
	reentrantSkips atomic.Int64
}

// StoreStats is a point-in-time view of a store's counters.
type StoreStats struct {
	// Signals is the number of live slots.
	Signals int

	// Counters since store creation.
	Inserts        int64
	Releases       int64
	Writes         int64
	Notifications  int64
	Subscriptions  int64
	TrackedReads   int64
	Recomputes     int64
	ReentrantSkips int64

	CollectedAt time.Time
}

// Stats collects the store's counters.
func (s *Store) Stats() StoreStats {
	return StoreStats{
		Signals:        s.Len(),
		Inserts:        s.stats.inserts.Load(),
		Releases:       s.stats.releases.Load(),
		Writes:         s.stats.writes.Load(),
		Notifications:  s.stats.notifications.Load(),
		Subscriptions:  s.stats.subscriptions.Load(),
		TrackedReads:   s.stats.trackedReads.Load(),
		Recomputes:     s.stats.recomputes.Load(),
		ReentrantSkips: s.stats.reentrantSkips.Load(),
		CollectedAt:    time.Now(),
	}
}

// SignalInfo describes one live slot for the inspect surface.
type SignalInfo struct {
	ID           SignalID
	Generation   uint32
	Value        string
	Subscribers  int
	Dependencies int
}

// Snapshot lists all live slots in allocation order. Value is rendered
// with fmt; this is a diagnostic surface, not a serialization contract.
func (s *Store) Snapshot() []SignalInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := s.values.Keys()
	infos := make([]SignalInfo, 0, len(keys))
	for _, key := range keys {
		sv, ok := s.values.Get(key)
		if !ok {
			continue
		}
		id := SignalID(key)
		infos = append(infos, SignalInfo{
			ID:           id,
			Generation:   sv.generation,
			Value:        fmt.Sprintf("%v", sv.value),
			Subscribers:  len(s.subscribers[id]),
			Dependencies: len(s.deps[id]),
		})
	}
	return infos
}
