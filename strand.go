// Package strand provides the public API for the Strand reactive runtime.
//
// This is the recommended import for most applications:
//
//	import "github.com/strand-ui/strand"
//
// Usage:
//
//	count := strand.NewSignal(0)
//	doubled := strand.NewMemo(func() int { return count.Get() * 2 })
//	strand.NewEffect(func() { fmt.Println("count:", count.Get()) })
//	count.Set(1)
package strand

import (
	"github.com/strand-ui/strand/pkg/reactive"
)

// =============================================================================
// Core handle types (re-export from pkg/reactive)
// =============================================================================

// Signal is a typed handle to one reactive value.
type Signal[T any] = reactive.Signal[T]

// Memo is a derived value that recomputes when its dependencies change.
type Memo[T any] = reactive.Memo[T]

// ReadOnly is a read-facing view of a signal.
type ReadOnly[T any] = reactive.ReadOnly[T]

// Effect is a side-effecting computation that reruns when its
// dependencies change.
type Effect = reactive.Effect

// Store owns signal storage, subscriptions, and dependency tracking.
type Store = reactive.Store

// StoreOption configures a Store at construction.
type StoreOption = reactive.StoreOption

// Hooks receives store lifecycle events.
type Hooks = reactive.Hooks

// SignalID identifies one slot in a store.
type SignalID = reactive.SignalID

// Subscriber is a callback invoked after a write.
type Subscriber = reactive.Subscriber

// Typed convenience signals.
type (
	BoolSignal   = reactive.BoolSignal
	IntSignal    = reactive.IntSignal
	StringSignal = reactive.StringSignal
)

// =============================================================================
// Errors
// =============================================================================

// ErrStaleHandle is the panic value for operations on released signals.
var ErrStaleHandle = reactive.ErrStaleHandle

// ErrTypeMismatch is the panic value for reads at the wrong type.
var ErrTypeMismatch = reactive.ErrTypeMismatch

// =============================================================================
// Constructors (default store)
// =============================================================================

// NewSignal creates a signal with the given initial value in the
// default store.
//
// Example:
//
//	count := strand.NewSignal(0)
//	count.Set(1)
//	value := count.Get() // 1
func NewSignal[T any](initial T) Signal[T] {
	return reactive.NewSignal(initial)
}

// NewMemo creates a derived value that automatically tracks the signals
// its computation reads.
//
// Example:
//
//	doubled := strand.NewMemo(func() int {
//	    return count.Get() * 2
//	})
func NewMemo[T any](compute func() T) Memo[T] {
	return reactive.NewMemo(compute)
}

// NewEffect registers a side effect that reruns when the signals it
// reads change.
//
// Example:
//
//	strand.NewEffect(func() {
//	    fmt.Println("count changed to:", count.Get())
//	})
func NewEffect(fn func()) Effect {
	return reactive.NewEffect(fn)
}

// NewBoolSignal creates a bool signal in the default store.
func NewBoolSignal(initial bool) BoolSignal {
	return reactive.NewBoolSignal(initial)
}

// NewIntSignal creates an int signal in the default store.
func NewIntSignal(initial int) IntSignal {
	return reactive.NewIntSignal(initial)
}

// NewStringSignal creates a string signal in the default store.
func NewStringSignal(initial string) StringSignal {
	return reactive.NewStringSignal(initial)
}

// =============================================================================
// Stores
// =============================================================================

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	return reactive.NewStore(opts...)
}

// WithHooks installs lifecycle hooks on a new store. Repeated options
// chain; all installed hooks fire.
func WithHooks(h Hooks) StoreOption {
	return reactive.WithHooks(h)
}

// DefaultStore returns the process-wide store used by the package-level
// constructors.
func DefaultStore() *Store {
	return reactive.Default()
}

// =============================================================================
// Update helpers
// =============================================================================

// UpdateWith applies an in-place mutation to a signal's value and
// returns the mutation's result. The value is mutated under the store
// lock; fn must not read or write other signals.
func UpdateWith[T, R any](s Signal[T], fn func(*T) R) R {
	return reactive.UpdateWith(s, fn)
}
