package cells

import "github.com/cespare/xxhash/v2"

// Observer carries the four notification hooks a subscriber can install.
// Missing hooks default to no-ops. Error may fire more than once; Complete
// fires exactly once, on disposal of the source.
type Observer struct {
	Next     func(v any)
	Error    func(err error)
	Complete func()
	Dirty    func()
}

func nop()           {}
func nopNext(any)    {}
func nopError(error) {}

func (o Observer) normalized() Observer {
	if o.Next == nil {
		o.Next = nopNext
	}
	if o.Error == nil {
		o.Error = nopError
	}
	if o.Complete == nil {
		o.Complete = nop
	}
	if o.Dirty == nil {
		o.Dirty = nop
	}
	return o
}

// ObservableMarker is the well-known identifier every cell answers to, so
// that foreign observer ecosystems using the same convention can recognize
// cells without importing this package's concrete types.
var ObservableMarker = int64(xxhash.Sum64String("CELLWEAVE_OBSERVABLE") & 0x7fffffffffffffff)

// Observable is the subscribable half of every cell. Both cell variants
// implement it; AsObservable returns the receiver, making any cell
// recognizable through the interop convention.
type Observable interface {
	Subscribe(o Observer) *Subscription
	Peek() any
	Disposed() bool
	AsObservable() Observable
	core() *cellCore
}

// Cell is the full read/write surface shared by source and derived cells.
// Source cells never fail a Read; derived cells surface recipe errors.
type Cell interface {
	Observable
	Read() (any, error)
	Set(v any) error
	Dispose()
}

// IsObservable reports whether x answers the interop convention.
func IsObservable(x any) bool {
	obs, ok := x.(Observable)
	return ok && obs.AsObservable() != nil
}
