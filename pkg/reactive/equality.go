package reactive

import "reflect"

// defaultEquals provides type-appropriate equality checking for
// SetIfChanged: == for the common comparable kinds, reflect.DeepEqual for
// everything else.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int8:
		return av == any(b).(int8)
	case int16:
		return av == any(b).(int16)
	case int32:
		return av == any(b).(int32)
	case int64:
		return av == any(b).(int64)
	case uint:
		return av == any(b).(uint)
	case uint8:
		return av == any(b).(uint8)
	case uint16:
		return av == any(b).(uint16)
	case uint32:
		return av == any(b).(uint32)
	case uint64:
		return av == any(b).(uint64)
	case float32:
		return av == any(b).(float32)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}

// erasedEquals lifts a typed equality function to the store's type-erased
// slot representation.
func erasedEquals[T any](fn func(a, b T) bool) func(a, b any) bool {
	return func(a, b any) bool {
		at, aok := a.(T)
		bt, bok := b.(T)
		if !aok || !bok {
			return false
		}
		return fn(at, bt)
	}
}
