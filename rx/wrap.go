package rx

import (
	"reflect"

	"github.com/cellweave/cellweave/cells"
)

// Install registers the reactive-object wrapper on rt, so source cells
// without the Shallow flag store a façade instead of the raw record when a
// plain map or struct pointer is written into them. Idempotent.
func Install(rt *cells.Runtime) {
	rt.SetWrapper(wrapValue)
}

// NewRuntime is a convenience constructor: a cells runtime with the
// reactive-object wrapper pre-installed.
func NewRuntime(opts *cells.RuntimeOptions) *cells.Runtime {
	rt := cells.NewRuntime(opts)
	Install(rt)
	return rt
}

// wrapValue wraps plain records; primitives (and façades, and cells) pass
// through untouched.
func wrapValue(rt *cells.Runtime, v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case *Object:
		return x
	case cells.Observable:
		return x
	case map[string]any:
		return Wrap(rt, x)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct {
		return Wrap(rt, v)
	}
	return v
}
