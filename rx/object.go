// Package rx is the reactive-object façade: a transparent wrapper over a
// plain record (a map[string]any or a struct pointer) that synthesizes one
// backing cell per property on first reactive access. Untracked reads of
// plain values stay zero-cost; no cell exists until something reactive
// touches the property.
package rx

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/cellweave/cellweave/cells"
)

// ErrNotReactive is returned by RefFor when the record was never wrapped.
var ErrNotReactive = errors.New("rx: value is not a reactive object")

// Object is the façade. It owns the map from property key to backing cell;
// once a cell exists for a key, that cell is the unique cell every future
// access goes through, for the lifetime of the façade.
type Object struct {
	rt      *cells.Runtime
	backing map[string]any
	rv      reflect.Value
	cellmap map[string]cells.Cell
}

// Wrap builds a façade over backing, which must be a map[string]any, a
// struct pointer, or an already-wrapped *Object (returned unchanged).
// Wrapping also installs the runtime's auto-wrap hook so nested records
// written into non-shallow source cells wrap themselves.
func Wrap(rt *cells.Runtime, backing any) *Object {
	if o, ok := backing.(*Object); ok {
		return o
	}
	Install(rt)
	o := &Object{rt: rt, cellmap: map[string]cells.Cell{}}
	switch b := backing.(type) {
	case map[string]any:
		o.backing = b
		return o
	}
	rv := reflect.ValueOf(backing)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct {
		o.rv = rv
		return o
	}
	panic(fmt.Sprintf("rx: cannot wrap %T, want map[string]any or struct pointer", backing))
}

// Is reports whether x is a reactive object.
func Is(x any) bool {
	_, ok := x.(*Object)
	return ok
}

// Runtime returns the runtime the façade's cells live on.
func (o *Object) Runtime() *cells.Runtime {
	return o.rt
}

// backingRead reads the raw record. ok is false for struct fields that are
// unexported or absent — those pass through unmediated, the closest Go
// analogue to symbol-keyed access. Map keys always read as ok.
func (o *Object) backingRead(key string) (v any, ok bool) {
	if o.backing != nil {
		// A missing map key is still an addressable property; it reads
		// as nil and a cell may be synthesized for it.
		return o.backing[key], true
	}
	f := o.rv.Elem().FieldByName(key)
	if !f.IsValid() || !f.CanInterface() {
		return nil, false
	}
	return f.Interface(), true
}

func (o *Object) backingWrite(key string, v any) {
	if o.backing != nil {
		o.backing[key] = v
		return
	}
	f := o.rv.Elem().FieldByName(key)
	if !f.IsValid() || !f.CanSet() {
		return
	}
	rv := reflect.ValueOf(v)
	if v == nil {
		f.Set(reflect.Zero(f.Type()))
		return
	}
	if rv.Type().AssignableTo(f.Type()) {
		f.Set(rv)
	}
}

// Get reads property key through the façade:
//  1. an existing cell wins;
//  2. unreadable keys without an accessor method pass through raw;
//  3. inside a frame, or for a key with an accessor method, a cell is
//     synthesized so the read registers;
//  4. a cell stored in the record is adopted as the backing cell;
//  5. a plain nested record synthesizes a cell over a nested façade;
//  6. otherwise the raw value comes back with no cell at all.
func (o *Object) Get(key string) (any, error) {
	if c, ok := o.cellmap[key]; ok {
		return c.Read()
	}
	raw, readable := o.backingRead(key)
	hasAcc := o.hasAccessor(key)
	if !readable && !hasAcc {
		return raw, nil
	}
	if o.rt.Tracking() || hasAcc {
		return o.ensureCell(key).Read()
	}
	if c, ok := raw.(cells.Cell); ok {
		o.cellmap[key] = c
		return c.Read()
	}
	if isPlainRecord(raw) {
		return o.ensureCell(key).Read()
	}
	return raw, nil
}

// MustGet is Get for call sites that treat a failing property recipe as a
// programming error.
func (o *Object) MustGet(key string) any {
	v, err := o.Get(key)
	if err != nil {
		panic(err)
	}
	return v
}

// Set writes property key through the façade:
//  1. an existing cell takes the write;
//  2. a cell value installs a forwarding source cell;
//  3. a cell stored in the record is adopted and takes the write;
//  4. otherwise it is a plain record write, untracked.
func (o *Object) Set(key string, v any) error {
	if c, ok := o.cellmap[key]; ok {
		return c.Set(v)
	}
	if obs, ok := v.(cells.Observable); ok {
		fwd := cells.NewSource(o.rt, obs, &cells.CellOptions{Parent: cells.Detached()})
		o.cellmap[key] = fwd
		return nil
	}
	if raw, _ := o.backingRead(key); raw != nil {
		if c, ok := raw.(cells.Cell); ok {
			o.cellmap[key] = c
			return c.Set(v)
		}
	}
	o.backingWrite(key, v)
	return nil
}

// Ref returns the stable cell backing key, synthesizing it if absent. The
// same cell comes back to every caller for the façade's lifetime, which is
// what lets direct property access and cell-based subscription interoperate.
func (o *Object) Ref(key string) cells.Cell {
	return o.ensureCell(key)
}

// RefFor is the package-level accessor: it fails synchronously when x was
// never made reactive.
func RefFor(x any, key string) (cells.Cell, error) {
	o, ok := x.(*Object)
	if !ok {
		return nil, ErrNotReactive
	}
	return o.Ref(key), nil
}

func (o *Object) ensureCell(key string) cells.Cell {
	if c, ok := o.cellmap[key]; ok {
		return c
	}
	c := o.synthesize(key)
	o.cellmap[key] = c
	return c
}

// synthesize builds the backing cell for key: an adopted cell if the
// record already holds one, a derived cell bound to a getter/setter method
// pair if the struct has one, and a source cell seeded from the backing
// value otherwise.
func (o *Object) synthesize(key string) cells.Cell {
	raw, _ := o.backingRead(key)
	if c, ok := raw.(cells.Cell); ok {
		return c
	}
	if getter, setter, ok := o.accessor(key); ok {
		var d *cells.DerivedCell
		writer := func(v any) error {
			if setter == nil {
				return cells.ErrReadOnly
			}
			if err := setter(v); err != nil {
				return err
			}
			d.Invalidate()
			return nil
		}
		d = cells.NewWritableDerived(o.rt, func() (any, error) {
			return getter()
		}, writer, &cells.CellOptions{Parent: cells.Detached()})
		return d
	}
	src := cells.NewSource(o.rt, raw, &cells.CellOptions{Parent: cells.Detached()})
	return src
}

func (o *Object) hasAccessor(key string) bool {
	_, _, ok := o.accessor(key)
	return ok
}

// accessor looks for a `Key() T` getter method (and optional `SetKey(T)`
// setter) anywhere on the backing struct's method set, the prototype-chain
// analogue for Go records.
func (o *Object) accessor(key string) (getter func() (any, error), setter func(any) error, ok bool) {
	if !o.rv.IsValid() || key == "" {
		return nil, nil, false
	}
	m := o.rv.MethodByName(key)
	if !m.IsValid() || m.Type().NumIn() != 0 || m.Type().NumOut() != 1 {
		return nil, nil, false
	}
	getter = func() (any, error) {
		return m.Call(nil)[0].Interface(), nil
	}
	if sm := o.rv.MethodByName("Set" + key); sm.IsValid() &&
		sm.Type().NumIn() == 1 && sm.Type().NumOut() == 0 {
		argType := sm.Type().In(0)
		setter = func(v any) error {
			av := reflect.ValueOf(v)
			if v == nil {
				av = reflect.Zero(argType)
			} else if !av.Type().AssignableTo(argType) {
				return fmt.Errorf("rx: cannot assign %T to property %s", v, key)
			}
			sm.Call([]reflect.Value{av})
			return nil
		}
	}
	return getter, setter, true
}

func isPlainRecord(v any) bool {
	switch v.(type) {
	case nil, *Object:
		return false
	case map[string]any:
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct
}
