package reactive

import "errors"

// ErrStaleHandle is the panic value raised when a signal operation is
// invoked through a handle whose slot is gone or whose generation no
// longer matches the slot.
//
// A stale handle is a protocol violation, not a recoverable condition:
// within one execution, handles obtained from a live store stay valid for
// as long as their owner retains them, so a mismatch means the handle
// outlived something it should not have. Substituting a default value
// instead would silently corrupt the reactive graph.
var ErrStaleHandle = errors.New("reactive: stale signal handle")

// ErrTypeMismatch is the panic value raised when a slot holds a value of a
// different type than the handle's type parameter. This can only happen
// when a handle is forged or a slot is accessed through mismatched
// generic instantiations.
var ErrTypeMismatch = errors.New("reactive: signal value type mismatch")
