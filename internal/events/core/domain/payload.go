package domain

import "reflect"

// Payload is a destination-shaped request body.
type Payload map[string]any

// Reject returns a copy of m without the keys whose value is nil, an empty
// string, or an empty map/slice. Nested values are not inspected.
func Reject[M ~map[string]any](m M) M {
	out := make(M, len(m))
	for k, v := range m {
		if IsEmpty(v) {
			continue
		}
		out[k] = v
	}
	return out
}

// IsEmpty reports whether v carries no data.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case Payload:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
