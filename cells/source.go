package cells

// SourceCell holds an immediate value. Writes propagate to downstream
// subscriptions; reads inside an active frame register the cell as a
// dependency of that frame. A source cell never carries the Dirty or
// Queued bits.
type SourceCell struct {
	cellCore

	// fwd is the single inbound subscription installed while the cell is
	// forwarding another cell's stream.
	fwd *Subscription
}

// NewSource creates a source cell. An initial value that is itself a cell
// starts the new cell in forwarding mode. Plain record values are wrapped
// through the runtime's wrapper hook unless Shallow is set.
func NewSource(rt *Runtime, initial any, opts *CellOptions) *SourceCell {
	s := &SourceCell{cellCore: cellCore{
		rt:    rt,
		id:    rt.nextID(),
		flags: FlagEnabled,
	}}
	rt.stats.CellsCreated++
	if opts != nil && opts.Shallow {
		s.flags |= FlagShallow
	}

	owner := resolveParent(rt, opts)
	if owner != nil {
		if owner.disposed {
			panic(ErrDisposedScope)
		}
		owner.OnCleanup(s.Dispose)
	}

	if opts != nil && opts.Signal.Aborted() {
		s.flags |= FlagDisposed
		return s
	}

	if target, ok := initial.(Observable); ok {
		s.forward(target)
	} else {
		s.value = s.maybeWrap(initial)
	}

	if opts != nil {
		opts.Signal.OnAbort(s.Dispose)
	}
	return s
}

func (s *SourceCell) AsObservable() Observable { return s }

// Disposed reports whether the cell has been disposed.
func (s *SourceCell) Disposed() bool {
	return s.disposedBit()
}

// Peek returns the current value without registering a dependency.
func (s *SourceCell) Peek() any {
	return s.value
}

// Get returns the current value. Inside an active frame the cell is
// registered as a dependency of that frame; a read after disposal returns
// the last value and registers nothing.
func (s *SourceCell) Get() any {
	if s.disposedBit() {
		return s.value
	}
	if f := s.rt.activeFrame; f != nil {
		f.observe(s)
	}
	return s.value
}

// Read is the Cell-interface form of Get. Source reads never fail.
func (s *SourceCell) Read() (any, error) {
	return s.Get(), nil
}

// Set stores a new value and broadcasts to downstream subscriptions.
// Writing a cell switches into forwarding mode; writing any non-cell value
// severs an active forward. A write that is Identical to the stored value
// notifies nobody. Writes after disposal are silently ignored.
func (s *SourceCell) Set(v any) error {
	if s.disposedBit() {
		return nil
	}
	if target, ok := v.(Observable); ok {
		s.forward(target)
		return nil
	}
	s.cancelForward()
	s.adopt(v)
	return nil
}

// adopt stores v (wrapped if applicable) and broadcasts when it differs
// from the current value.
func (s *SourceCell) adopt(v any) {
	v = s.maybeWrap(v)
	if Identical(s.value, v) {
		return
	}
	s.value = v
	s.broadcast()
}

func (s *SourceCell) maybeWrap(v any) any {
	if s.flags.has(FlagShallow) || s.rt.wrap == nil {
		return v
	}
	return s.rt.wrap(s.rt, v)
}

// forward installs a single inbound subscription on target and adopts its
// values until a non-cell write or the target's completion. Completion
// keeps the last adopted value and ceases updates.
func (s *SourceCell) forward(target Observable) {
	s.cancelForward()
	var sub *Subscription
	sub = target.Subscribe(Observer{
		Next: func(v any) {
			s.adopt(v)
		},
		Complete: func() {
			if s.fwd == sub {
				s.fwd = nil
			}
		},
	})
	if sub.Disposed() {
		// Target was already gone; adopt whatever it last held.
		s.adoptCurrent(target)
		return
	}
	s.fwd = sub
	s.adoptCurrent(target)
}

// adoptCurrent seeds the forward with the target's current value through
// the validating read path, so a dirty unwatched derived target is
// recomputed before adoption rather than leaking its stale cache. The
// read is untracked: installing a forward must not register the target on
// whatever frame happens to be running. A failing read falls back to the
// last cached value, matching the protected-evaluation rule.
func (s *SourceCell) adoptCurrent(target Observable) {
	var v any
	s.rt.Untracked(func() {
		if c, ok := target.(Cell); ok {
			if cv, err := c.Read(); err == nil {
				v = cv
				return
			}
		}
		v = target.Peek()
	})
	s.adopt(v)
}

func (s *SourceCell) cancelForward() {
	if s.fwd != nil {
		s.fwd.Unsubscribe()
		s.fwd = nil
	}
}

// Subscribe registers an observer for future values. Subscribing to a
// disposed cell completes immediately and returns the closed subscription.
func (s *SourceCell) Subscribe(o Observer) *Subscription {
	return newSubscription(s, o, -1)
}

// Dispose completes all downstream subscriptions, severs an active
// forward and marks the cell disposed. Idempotent.
func (s *SourceCell) Dispose() {
	if s.disposedBit() {
		return
	}
	s.flags |= FlagDisposed
	s.cancelForward()
	s.completeAll()
}
