package cells

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// CellOptions is shared by every primitive constructor.
type CellOptions struct {
	// Shallow disables auto-wrapping of plain record values (source
	// cells only).
	Shallow bool
	// Signal disposes the primitive when it fires. An already-aborted
	// signal yields a born-disposed primitive.
	Signal *AbortSignal
	// Parent pins the owning scope. Nil means "the currently active
	// frame"; pass Detached() for an explicitly parentless primitive.
	Parent *Scope
}

// detachedMarker is the sentinel Detached() hands out. It is never linked
// into any tree.
var detachedMarker = &Scope{parentIndex: -1}

// Detached returns the sentinel parent meaning "no owner at all", as
// opposed to a nil Parent which adopts the active frame.
func Detached() *Scope {
	return detachedMarker
}

// Scope is a lifetime node. It owns child scopes (and, through cleanup
// hooks, the cells created under it) and disposes them depth-first. A
// plain scope can also act as a reactive frame: reads inside Track record
// the read observable in an unordered set, with no snapshots and no
// recomputation — presence queries only.
type Scope struct {
	rt          *Runtime
	parent      *Scope
	parentIndex int
	children    []*Scope
	observed    mapset.Set[Observable]
	cleanups    []func()
	disposed    bool

	// onDispose lets a hosting cell (derived, effect) tear down its
	// subscription ends when its scope node goes.
	onDispose func()
}

// NewScope creates a lifetime node. Attaching to a disposed parent is a
// programming error and panics with ErrDisposedScope.
func NewScope(rt *Runtime, opts *CellOptions) *Scope {
	s := &Scope{rt: rt, parentIndex: -1}
	s.attach(resolveParent(rt, opts))
	if opts != nil && opts.Signal.Aborted() {
		s.Dispose()
		return s
	}
	if opts != nil {
		opts.Signal.OnAbort(s.Dispose)
	}
	return s
}

func resolveParent(rt *Runtime, opts *CellOptions) *Scope {
	if opts != nil && opts.Parent != nil {
		if opts.Parent == detachedMarker {
			return nil
		}
		return opts.Parent
	}
	return rt.currentScope()
}

// attach links s under parent, recording the index it occupies in the
// parent's child list.
func (s *Scope) attach(parent *Scope) {
	if parent == nil {
		return
	}
	if parent.disposed {
		panic(ErrDisposedScope)
	}
	s.parent = parent
	s.parentIndex = len(parent.children)
	parent.children = append(parent.children, s)
}

// Disposed reports whether the scope has been torn down. A disposed scope
// has a nil child list and every descendant disposed.
func (s *Scope) Disposed() bool {
	return s.disposed
}

// Parent returns the owning scope, or nil for a detached scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Observe records src in the scope's dependency set. Called implicitly for
// every read inside Track; callable directly for manual bookkeeping.
func (s *Scope) Observe(src Observable) {
	if s.disposed {
		return
	}
	if s.observed == nil {
		s.observed = mapset.NewThreadUnsafeSet[Observable]()
	}
	s.observed.Add(src)
}

func (s *Scope) observe(src Observable) {
	s.Observe(src)
}

// Track runs fn with this scope installed as the active frame, so reads
// land in the observed set. The previous frame is restored on all exits.
func (s *Scope) Track(fn func()) {
	prev, prevCursor := s.rt.enterFrame(s)
	defer s.rt.exitFrame(prev, prevCursor)
	fn()
}

// Observed returns the sources read while this scope was the active
// frame. Order is unspecified.
func (s *Scope) Observed() []Observable {
	if s.observed == nil {
		return nil
	}
	return s.observed.ToSlice()
}

// Children returns the current direct child scopes. The slice is a copy;
// disposing entries while ranging is safe.
func (s *Scope) Children() []*Scope {
	out := make([]*Scope, len(s.children))
	copy(out, s.children)
	return out
}

// OnCleanup registers fn to run when the scope disposes. If the scope is
// already disposed fn runs immediately. Cleanups run after children are
// gone, in reverse registration order.
func (s *Scope) OnCleanup(fn func()) {
	if s.disposed {
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
}

// Dispose tears down the subtree: children first, always disposing the
// child at index 0 (each disposal pop-and-swaps the last child into that
// slot, so after the first child the rest go from the back of the list),
// then cleanups, then the hosting cell's hook, then the link to the
// parent. One-way.
func (s *Scope) Dispose() {
	if s.disposed {
		return
	}
	s.disposeTree()
	if s.parent != nil {
		s.parent.removeChild(s)
		s.parent = nil
	}
}

func (s *Scope) disposeTree() {
	s.disposed = true
	for len(s.children) > 0 {
		s.children[0].Dispose()
	}
	s.children = nil
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
	if s.observed != nil {
		s.observed.Clear()
		s.observed = nil
	}
	if s.onDispose != nil {
		s.onDispose()
		s.onDispose = nil
	}
}

// disposeChildren empties the child list without touching the scope
// itself. Effects call this before every re-run so nested scopes never
// leak across runs. Cleanup hooks are not run here.
func (s *Scope) disposeChildren() {
	for len(s.children) > 0 {
		s.children[0].Dispose()
	}
}

// removeChild pop-and-swap removes child, updating the swapped sibling's
// recorded index.
func (s *Scope) removeChild(child *Scope) {
	i := child.parentIndex
	if i < 0 || i >= len(s.children) || s.children[i] != child {
		return
	}
	last := len(s.children) - 1
	moved := s.children[last]
	s.children[i] = moved
	moved.parentIndex = i
	s.children[last] = nil
	s.children = s.children[:last]
	child.parentIndex = -1
}
