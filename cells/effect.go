package cells

// Effect is a derived-cell variant run for its side effects: the value
// slot goes unused and it never appears on anyone's downstream list — the
// effect is the terminal subscriber, so a dirty upstream always queues it
// regardless of subscribers. It is simultaneously a scope: primitives
// created inside the body belong to it. Child scopes (derived cells,
// effects, plain scopes) are disposed before every re-run; source cells
// created in the body hang off cleanup hooks and are disposed only when
// the effect itself is.
type Effect struct {
	cell *DerivedCell
}

// NewEffect registers fn and runs it once, synchronously, inside a frame
// that is the effect itself. A failure of the initial run is reported
// through the runtime's OnError hook; the effect stays usable.
func NewEffect(rt *Runtime, fn func() error, opts *CellOptions) *Effect {
	e := &Effect{}
	e.cell = newDerived(rt, func() (any, error) {
		return nil, fn()
	}, nil, opts, true)
	e.cell.enabled = true
	if !e.cell.disposedBit() {
		if err := e.cell.validate(); err != nil {
			rt.reportError(e, err)
		}
	}
	return e
}

// Run forces a re-run right now, bypassing the queue. Child scopes from
// the previous run are disposed first.
func (e *Effect) Run() error {
	if e.cell.disposedBit() {
		return nil
	}
	return e.cell.recompute()
}

// Disable stops the effect from running. Dependency changes still mark it
// dirty, so the first change after Enable re-runs it normally.
func (e *Effect) Disable() {
	e.cell.enabled = false
}

// Enable re-arms a disabled effect. Idempotent.
func (e *Effect) Enable() {
	if !e.cell.disposedBit() {
		e.cell.enabled = true
	}
}

// Enabled reports whether the effect runs on dependency changes.
func (e *Effect) Enabled() bool {
	return e.cell.enabled && !e.cell.disposedBit()
}

// Disposed reports whether the effect has been torn down.
func (e *Effect) Disposed() bool {
	return e.cell.disposedBit()
}

// Dispose tears the effect down: nested scopes first, then the upstream
// subscriptions. Idempotent.
func (e *Effect) Dispose() {
	e.cell.Dispose()
}

// Observed returns the sources the last run read, in read order.
func (e *Effect) Observed() []Observable {
	return e.cell.Observed()
}

// Children returns the scopes created during the last run.
func (e *Effect) Children() []*Scope {
	return e.cell.Children()
}

// ScopeNode returns the effect's lifetime node, for explicit parenting of
// primitives created outside the body.
func (e *Effect) ScopeNode() *Scope {
	return &e.cell.scope
}
