// Package reactive provides the reactive graph engine for Strand.
//
// The engine manages a dependency graph of values and their recomputation,
// not rendering: signals are cheap, copyable handles into a generational
// arena owned by a Store, and reads performed during a tracked computation
// automatically subscribe that computation to future writes.
//
// # Core Types
//
// Signal[T] is a handle to a mutable, observable value slot:
//
//	count := reactive.NewSignal(0)
//	value := count.Get()  // Read (tracked if a computation is active)
//	count.Set(5)          // Write (synchronously notifies subscribers)
//	count.Update(func(n int) int { return n + 1 })
//
// Memo[T] is a derived value that recomputes when its dependencies change:
//
//	doubled := reactive.NewMemo(func() int { return count.Get() * 2 })
//	value := doubled.Get()
//
// Effect runs a side effect whenever a signal it read changes:
//
//	reactive.NewEffect(func() {
//	    fmt.Println("count is", count.Get())
//	})
//
// # Stores
//
// Every handle belongs to a Store. The package-level constructors use a
// shared default store; tests and embedders that need isolation create
// their own with NewStore and the *In constructors:
//
//	store := reactive.NewStore()
//	count := reactive.NewSignalIn(store, 0)
//
// # Execution Model
//
// The engine is synchronous and non-blocking: writes notify the write-time
// snapshot of a signal's subscriber list, in registration order, before
// returning. The store's internal lock is never held across a subscriber
// callback, so callbacks may freely read and write signals, including the
// one that triggered them. Dependency tracking uses a single
// current-observer slot with explicit save/restore; tracked computations
// do not nest.
package reactive
