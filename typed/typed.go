// Package typed is the generics façade over the untyped cells engine, in
// the shape every signal runtime here has grown: a writeable signal, a
// readonly computed, and effect constructors. The core stays `any`-valued
// so forwarding and the rx façade can work; these wrappers put the types
// back at the edge.
package typed

import (
	"github.com/cellweave/cellweave/cells"
)

// WriteableSignal is a typed source cell.
type WriteableSignal[T any] struct {
	cell *cells.SourceCell
}

// Signal creates a typed source cell on rt.
func Signal[T any](rt *cells.Runtime, initial T) *WriteableSignal[T] {
	return &WriteableSignal[T]{
		cell: cells.NewSource(rt, initial, nil),
	}
}

// SignalIn creates a typed source cell with explicit options.
func SignalIn[T any](rt *cells.Runtime, initial T, opts *cells.CellOptions) *WriteableSignal[T] {
	return &WriteableSignal[T]{
		cell: cells.NewSource(rt, initial, opts),
	}
}

func (s *WriteableSignal[T]) Value() T {
	return assertValue[T](s.cell.Get())
}

func (s *WriteableSignal[T]) SetValue(v T) {
	_ = s.cell.Set(v)
}

// Cell exposes the untyped cell for subscription and forwarding.
func (s *WriteableSignal[T]) Cell() *cells.SourceCell {
	return s.cell
}

func (s *WriteableSignal[T]) Dispose() {
	s.cell.Dispose()
}

// ReadonlySignal is a typed derived cell.
type ReadonlySignal[T any] struct {
	cell *cells.DerivedCell
}

// Computed creates a typed derived cell whose dependencies are collected
// implicitly from the reads fn performs.
func Computed[T any](rt *cells.Runtime, fn func() (T, error)) *ReadonlySignal[T] {
	return ComputedIn(rt, fn, nil)
}

// ComputedIn creates a typed derived cell with explicit options.
func ComputedIn[T any](rt *cells.Runtime, fn func() (T, error), opts *cells.CellOptions) *ReadonlySignal[T] {
	d := cells.NewDerived(rt, func() (any, error) {
		return fn()
	}, opts)
	return &ReadonlySignal[T]{cell: d}
}

func (s *ReadonlySignal[T]) Value() (T, error) {
	v, err := s.cell.Get()
	if err != nil {
		var zero T
		return zero, err
	}
	return assertValue[T](v), nil
}

// MustValue reads the cell and panics on recipe failure.
func (s *ReadonlySignal[T]) MustValue() T {
	v, err := s.Value()
	if err != nil {
		panic(err)
	}
	return v
}

// Cell exposes the untyped cell for subscription and forwarding.
func (s *ReadonlySignal[T]) Cell() *cells.DerivedCell {
	return s.cell
}

func (s *ReadonlySignal[T]) Dispose() {
	s.cell.Dispose()
}

// RunEffect registers fn as an effect on rt and runs it once.
func RunEffect(rt *cells.Runtime, fn func() error) *cells.Effect {
	return cells.NewEffect(rt, fn, nil)
}

// read pulls a typed value out of any observable that is also a cell.
func read[T any](c cells.Observable) (T, error) {
	var zero T
	cell, ok := c.(cells.Cell)
	if !ok {
		panic("typed: observable is not a readable cell")
	}
	v, err := cell.Read()
	if err != nil {
		return zero, err
	}
	return assertValue[T](v), nil
}

func assertValue[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	t, ok := v.(T)
	if !ok {
		panic("typed: type assertion failed")
	}
	return t
}
