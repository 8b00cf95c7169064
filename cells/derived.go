package cells

// Recipe computes a derived cell's value from the graph. Reads performed
// inside it register dependencies on the cell automatically.
type Recipe func() (any, error)

type neverComputedType struct{}

// neverComputed occupies the value slot of a derived cell until its first
// evaluation.
var neverComputed any = neverComputedType{}

// DerivedCell caches the result of a recipe over upstream cells. It is
// also a scope node: primitives created inside the recipe attach to it.
// Dirty means the cache may lie; Queued means a flush will recompute it.
type DerivedCell struct {
	cellCore
	scope Scope

	recipe Recipe
	writer func(v any) error

	// ins are the current upstream subscriptions, in the exact order the
	// recipe read them last run.
	ins []*Subscription

	// inObs is the single observer shared by every inbound subscription.
	inObs Observer

	isEffect  bool
	enabled   bool
	computing bool
}

// NewDerived creates a lazy derived cell. The recipe does not run until
// the first read or subscription.
func NewDerived(rt *Runtime, recipe Recipe, opts *CellOptions) *DerivedCell {
	return newDerived(rt, recipe, nil, opts, false)
}

// NewWritableDerived creates a derived cell whose Set delegates to writer
// instead of failing with ErrReadOnly.
func NewWritableDerived(rt *Runtime, getter Recipe, writer func(v any) error, opts *CellOptions) *DerivedCell {
	return newDerived(rt, getter, writer, opts, false)
}

func newDerived(rt *Runtime, recipe Recipe, writer func(v any) error, opts *CellOptions, isEffect bool) *DerivedCell {
	d := &DerivedCell{
		cellCore: cellCore{
			rt:    rt,
			id:    rt.nextID(),
			flags: FlagEnabled | FlagDirty,
			value: neverComputed,
		},
		scope:    Scope{rt: rt, parentIndex: -1},
		recipe:   recipe,
		writer:   writer,
		isEffect: isEffect,
	}
	rt.stats.CellsCreated++
	d.inObs = Observer{
		Next:  d.onUpstreamNext,
		Dirty: d.onUpstreamDirty,
	}.normalized()
	d.scope.onDispose = func() {
		if d.disposedBit() {
			return
		}
		d.flags |= FlagDisposed
		for _, sub := range d.ins {
			sub.Unsubscribe()
		}
		d.ins = nil
		d.completeAll()
	}

	d.scope.attach(resolveParent(rt, opts))
	if opts != nil && opts.Signal.Aborted() {
		d.scope.Dispose()
		return d
	}
	if opts != nil {
		opts.Signal.OnAbort(d.Dispose)
	}
	return d
}

func (d *DerivedCell) AsObservable() Observable { return d }

// Disposed reports whether the cell has been disposed.
func (d *DerivedCell) Disposed() bool {
	return d.disposedBit()
}

// Peek returns the cached value without validating or registering. The
// never-computed sentinel peeks as nil.
func (d *DerivedCell) Peek() any {
	if d.value == neverComputed {
		return nil
	}
	return d.value
}

// Get validates the cell if dirty, registers it with the enclosing frame
// and returns the cached value. A failing recipe surfaces here and the
// cell stays dirty; reads after disposal return the last cached value
// without registering.
func (d *DerivedCell) Get() (any, error) {
	if d.disposedBit() {
		return d.Peek(), nil
	}
	if d.flags.has(FlagDirty) {
		if err := d.validate(); err != nil {
			return nil, err
		}
	}
	if f := d.rt.activeFrame; f != nil {
		f.observe(d)
	}
	return d.value, nil
}

// Read is the Cell-interface form of Get.
func (d *DerivedCell) Read() (any, error) {
	return d.Get()
}

// Set is only legal on a writable derived cell; it invokes the writer and
// never mutates the cache directly.
func (d *DerivedCell) Set(v any) error {
	if d.disposedBit() {
		return nil
	}
	if d.writer == nil {
		return ErrReadOnly
	}
	return d.writer(v)
}

// Subscribe registers an observer. The first subscription to a
// never-computed cell performs a protected evaluation: the subscriber
// asked for future values, not the current one, so a failure is swallowed
// (it still reaches the error hook of anyone already subscribed).
func (d *DerivedCell) Subscribe(o Observer) *Subscription {
	if !d.disposedBit() && d.value == neverComputed {
		_ = d.validate()
	}
	return newSubscription(d, o, -1)
}

// Observed returns the upstream sources in dependency order.
func (d *DerivedCell) Observed() []Observable {
	out := make([]Observable, 0, len(d.ins))
	for _, sub := range d.ins {
		if !sub.Disposed() {
			out = append(out, sub.source)
		}
	}
	return out
}

// Children returns the live scopes created by the recipe. Unlike an
// effect, a derived cell does not dispose its children before re-running,
// so scopes from earlier runs stay listed until they are disposed.
func (d *DerivedCell) Children() []*Scope {
	return d.scope.Children()
}

// ScopeNode returns the cell's lifetime node, for explicit parenting.
func (d *DerivedCell) ScopeNode() *Scope {
	return &d.scope
}

// Dispose tears the cell down: child scopes first, then upstream
// subscriptions, then downstream completion. Idempotent.
func (d *DerivedCell) Dispose() {
	d.scope.Dispose()
}

// Invalidate discards the cache and pushes dirtiness downstream, exactly
// as if an upstream had changed. Meant for derived cells whose recipe
// consults state outside the graph (the rx accessor cells do this after a
// writer runs).
func (d *DerivedCell) Invalidate() {
	if d.disposedBit() {
		return
	}
	d.value = neverComputed
	d.onUpstreamNext(nil)
}

// onUpstreamDirty is the dirty half of the push protocol: set the bit once
// and forward dirtiness to our own cone, without queueing anything.
func (d *DerivedCell) onUpstreamDirty() {
	if d.flags.has(FlagDirty) || d.disposedBit() {
		return
	}
	d.flags |= FlagDirty
	d.dirtyAll()
}

// onUpstreamNext runs the dirty path first so the bit is guaranteed set
// before any scheduling decision, then queues a recomputation — but only
// when somebody downstream is listening. A subscriber-less derived cell
// stays lazily dirty, which is what makes unwatched chains free.
func (d *DerivedCell) onUpstreamNext(any) {
	d.onUpstreamDirty()
	if d.disposedBit() || d.flags.has(FlagQueued) {
		return
	}
	if d.isEffect {
		if d.enabled {
			d.flags |= FlagQueued
			d.rt.enqueue(d)
		}
		return
	}
	if len(d.outs) > 0 {
		d.flags |= FlagQueued
		d.rt.enqueue(d)
	}
}

func (d *DerivedCell) runQueued() {
	d.flags &^= FlagQueued
	if d.disposedBit() || !d.flags.has(FlagDirty) {
		return
	}
	if d.isEffect && !d.enabled {
		return
	}
	if err := d.validate(); err != nil {
		d.rt.reportError(d, err)
	}
}

// validate is the read-path half of the engine. A never-computed cell
// recomputes unconditionally. Otherwise walk the upstream list in order:
// validate dirty upstreams first, then compare each current value against
// the snapshot captured when the link was last validated. If nothing
// actually changed the dirty bit was a false alarm and the cache stands,
// recipe untouched.
func (d *DerivedCell) validate() error {
	if d.value != neverComputed {
		outdated := false
		for _, sub := range d.ins {
			if sub.Disposed() {
				outdated = true
				break
			}
			if up, ok := sub.source.(*DerivedCell); ok && !up.disposedBit() && up.flags.has(FlagDirty) {
				if err := up.validate(); err != nil {
					d.flags &^= FlagQueued
					return err
				}
			}
			if !Identical(sub.source.core().value, sub.snapshot) {
				outdated = true
				break
			}
		}
		if !outdated {
			d.flags &^= FlagDirty | FlagQueued
			return nil
		}
	}
	return d.recompute()
}

// recompute runs the recipe inside a fresh frame. On success the upstream
// tail beyond the cursor is truncated (stale dependencies from a previous
// shape), the value stored and downstream notified when it changed. On
// failure the cell keeps its cache, keeps Dirty, keeps the subscriptions
// wired up to the fault, reports through the error hooks and rethrows.
func (d *DerivedCell) recompute() error {
	if d.computing {
		panic("cells: circular dependency")
	}
	d.computing = true
	defer func() { d.computing = false }()

	if d.isEffect {
		d.scope.disposeChildren()
	}
	d.rt.stats.Recomputes++

	prev, prevCursor := d.rt.enterFrame(d)
	result, err := func() (out any, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = wrapRecipeFailure(r)
			}
		}()
		return d.recipe()
	}()
	used := d.rt.cursor
	d.rt.exitFrame(prev, prevCursor)

	if err != nil {
		if _, ok := err.(*RecipeError); !ok {
			err = &RecipeError{Err: err}
		}
		d.flags &^= FlagQueued
		d.errorAll(err)
		return err
	}

	d.truncateIns(used)
	d.flags &^= FlagDirty | FlagQueued
	if !Identical(d.value, result) {
		d.value = result
		d.broadcast()
	}
	return nil
}

// observe implements the frame contract with cursor-based reuse: a read
// whose upstream slot already points at the same source revalidates the
// snapshot in place; a mismatch truncates the tail and links fresh. Stable
// dependency shapes churn zero subscriptions per run.
func (d *DerivedCell) observe(src Observable) {
	if src.core().disposedBit() || src == Observable(d) {
		return
	}
	cur := d.rt.cursor
	if cur < len(d.ins) {
		if sub := d.ins[cur]; !sub.Disposed() && sub.source == src {
			sub.snapshot = src.core().value
			d.rt.cursor = cur + 1
			return
		}
		d.truncateIns(cur)
	}
	d.ins = append(d.ins, newSubscription(src, d.inObs, cur))
	d.rt.cursor = cur + 1
}

func (d *DerivedCell) truncateIns(from int) {
	if from >= len(d.ins) {
		return
	}
	for i := from; i < len(d.ins); i++ {
		d.ins[i].Unsubscribe()
		d.ins[i] = nil
	}
	d.ins = d.ins[:from]
}
