package cells

import (
	"math"
	"reflect"
)

// Identical reports whether two values are the same under same-value-zero
// comparison: NaN equals NaN, +0 equals -0, everything else by Go equality
// for comparable types and by reference identity for slices, maps and
// functions. This is the only equality the engine ever applies to cell
// values; no deep comparison happens anywhere.
func Identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return false
		}
		if math.IsNaN(av) && math.IsNaN(bv) {
			return true
		}
		return av == bv
	case float32:
		bv, ok := b.(float32)
		if !ok {
			return false
		}
		if math.IsNaN(float64(av)) && math.IsNaN(float64(bv)) {
			return true
		}
		return av == bv
	}

	ra := reflect.ValueOf(a)
	rb := reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}

	switch ra.Kind() {
	case reflect.Slice:
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	case reflect.Map, reflect.Func, reflect.Chan:
		return ra.Pointer() == rb.Pointer()
	}

	if !ra.Type().Comparable() {
		return false
	}
	return a == b
}
