package cells

// cellCore is the state every cell variant shares: identity, the flag
// word, the current value slot and the downstream subscription list.
type cellCore struct {
	rt    *Runtime
	id    uint64
	flags Flags
	value any
	outs  []*Subscription
}

func (c *cellCore) core() *cellCore { return c }

// SubscriberCount reports how many live subscriptions hang off this cell.
func (c *cellCore) SubscriberCount() int {
	return len(c.outs)
}

// ID returns the cell's process-unique monotonic identifier.
func (c *cellCore) ID() uint64 {
	return c.id
}

func (c *cellCore) disposedBit() bool {
	return c.flags.has(FlagDisposed)
}

// Subscription is the only first-class edge in the graph: a link from a
// source observable to an observer, co-owned by both endpoints. It records
// the index it occupies in the source's downstream list and, when the
// consumer is a derived cell, the index in that cell's upstream list.
// The snapshot is the source's value as of the last validation of the link.
type Subscription struct {
	source   Observable
	observer Observer
	srcIndex int
	depIndex int
	snapshot any
	flags    Flags
}

// closedSubscription is handed out for subscribe-after-dispose. It is
// permanently disposed and detached; every operation on it is a no-op.
var closedSubscription = &Subscription{
	srcIndex: -1,
	depIndex: -1,
	flags:    FlagDisposed,
}

// newSubscription links observer onto src. If src is already disposed the
// observer's Complete hook fires immediately and the shared closed
// subscription is returned instead of a live link.
func newSubscription(src Observable, o Observer, depIndex int) *Subscription {
	o = o.normalized()
	c := src.core()
	if c.disposedBit() {
		o.Complete()
		return closedSubscription
	}
	s := &Subscription{
		source:   src,
		observer: o,
		srcIndex: len(c.outs),
		depIndex: depIndex,
		snapshot: c.value,
		flags:    FlagEnabled,
	}
	c.outs = append(c.outs, s)
	return s
}

// Disposed reports whether the subscription has been torn down.
func (s *Subscription) Disposed() bool {
	return s.flags.has(FlagDisposed)
}

// Enabled reports whether the subscription currently receives
// notifications.
func (s *Subscription) Enabled() bool {
	return s.flags.has(FlagEnabled) && !s.Disposed()
}

// Unsubscribe removes the link from its source and clears every pointer it
// held, so a dangling reference fails loudly instead of keeping the graph
// alive. Idempotent.
func (s *Subscription) Unsubscribe() {
	if s.Disposed() {
		return
	}
	if s.flags.has(FlagEnabled) && s.source != nil {
		s.source.core().removeOut(s)
	}
	s.flags = FlagDisposed
	s.source = nil
	s.observer = Observer{}
	s.srcIndex = -1
	s.depIndex = -1
	s.snapshot = nil
}

// Disable pops the subscription out of the source's downstream list. The
// link stays valid and keeps its observer but receives no notifications
// until Enable is called. Both directions are O(1).
func (s *Subscription) Disable() {
	if s.Disposed() || !s.flags.has(FlagEnabled) {
		return
	}
	s.source.core().removeOut(s)
	s.flags &^= FlagEnabled
}

// Enable re-appends a disabled subscription to its source.
func (s *Subscription) Enable() {
	if s.Disposed() || s.flags.has(FlagEnabled) {
		return
	}
	c := s.source.core()
	if c.disposedBit() {
		return
	}
	s.srcIndex = len(c.outs)
	c.outs = append(c.outs, s)
	s.flags |= FlagEnabled
}

// removeOut pop-and-swap removes s from the downstream list, updating the
// swapped-in neighbor's recorded index.
func (c *cellCore) removeOut(s *Subscription) {
	i := s.srcIndex
	if i < 0 || i >= len(c.outs) || c.outs[i] != s {
		return
	}
	last := len(c.outs) - 1
	moved := c.outs[last]
	c.outs[i] = moved
	moved.srcIndex = i
	c.outs[last] = nil
	c.outs = c.outs[:last]
	s.srcIndex = -1
}

// broadcast delivers dirty before next: every downstream observer sees
// Dirty propagate through its whole cone before any value arrives, which
// is what keeps synchronous reads through a half-notified graph
// glitch-free.
func (c *cellCore) broadcast() {
	c.dirtyAll()
	c.notifyAll(c.value)
}

// Broadcast primitives iterate by index over a snapshot of the current
// length. Observers are free to unsubscribe mid-broadcast: removal moves
// the tail subscription into the vacated slot and shrinks the list, so
// iteration stays in bounds; a tail observer moved into an already-visited
// slot is skipped for this cycle.

func (c *cellCore) notifyAll(v any) {
	n := len(c.outs)
	for i := 0; i < n && i < len(c.outs); i++ {
		c.outs[i].observer.Next(v)
	}
	c.rt.stats.Notifications++
}

func (c *cellCore) dirtyAll() {
	n := len(c.outs)
	for i := 0; i < n && i < len(c.outs); i++ {
		c.outs[i].observer.Dirty()
	}
}

func (c *cellCore) errorAll(err error) {
	n := len(c.outs)
	for i := 0; i < n && i < len(c.outs); i++ {
		c.outs[i].observer.Error(err)
	}
}

// completeAll fires Complete on every downstream subscription, marks each
// disposed and clears the list. Called exactly once, on cell disposal.
func (c *cellCore) completeAll() {
	outs := c.outs
	c.outs = nil
	for _, s := range outs {
		obs := s.observer
		s.flags = FlagDisposed
		s.source = nil
		s.observer = Observer{}
		s.srcIndex = -1
		s.depIndex = -1
		s.snapshot = nil
		obs.Complete()
	}
}
