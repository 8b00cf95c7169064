package cells

// OnErrorFunc receives failures raised by queued recomputations and effect
// runs, where there is no synchronous caller left to rethrow to.
type OnErrorFunc func(from any, err error)

// frame is the dependency-collection target: the derived cell, effect or
// plain scope whose body is currently executing.
type frame interface {
	observe(src Observable)
}

type queueable interface {
	runQueued()
}

// Stats is a snapshot of the runtime's internal counters, consumed by the
// metrics package.
type Stats struct {
	CellsCreated   uint64
	Recomputes     uint64
	Notifications  uint64
	Flushes        uint64
	QueueHighWater uint64
	QueueLen       int
}

// RuntimeOptions configures a Runtime at construction.
type RuntimeOptions struct {
	// OnError receives asynchronous failures (queued recomputes, effect
	// runs). A nil hook swallows them; synchronous reads still surface
	// errors to their caller either way.
	OnError OnErrorFunc
}

// Runtime owns one reactive graph. The whole graph lives on one logical
// goroutine; there are no locks. The active frame and dependency cursor
// form a stack through enterFrame/exitFrame, which every execution path
// restores, including failures.
type Runtime struct {
	activeFrame frame
	cursor      int

	nextCellID uint64

	queue    []queueable
	draining bool

	batchDepth int
	pauseStack []frame

	wrap    func(rt *Runtime, v any) any
	onError OnErrorFunc

	root  *Scope
	stats Stats
}

func NewRuntime(opts *RuntimeOptions) *Runtime {
	rt := &Runtime{}
	if opts != nil {
		rt.onError = opts.OnError
	}
	rt.root = &Scope{rt: rt, parentIndex: -1}
	return rt
}

// Root returns the runtime's detached root scope. It is never disposed by
// the runtime itself.
func (rt *Runtime) Root() *Scope {
	return rt.root
}

// Stats returns a snapshot of the runtime counters.
func (rt *Runtime) Stats() Stats {
	s := rt.stats
	s.QueueLen = len(rt.queue)
	return s
}

// SetWrapper installs the hook used to wrap plain record values written
// into non-shallow source cells. The rx package registers its
// reactive-object wrapper here.
func (rt *Runtime) SetWrapper(fn func(rt *Runtime, v any) any) {
	rt.wrap = fn
}

func (rt *Runtime) nextID() uint64 {
	rt.nextCellID++
	return rt.nextCellID
}

func (rt *Runtime) reportError(from any, err error) {
	if rt.onError != nil {
		rt.onError(from, err)
	}
}

// enterFrame installs f as the dependency-collection target and resets the
// cursor. The previous pair must be restored via exitFrame on every path
// out of the body, error paths included.
func (rt *Runtime) enterFrame(f frame) (prev frame, prevCursor int) {
	prev, prevCursor = rt.activeFrame, rt.cursor
	rt.activeFrame = f
	rt.cursor = 0
	return prev, prevCursor
}

func (rt *Runtime) exitFrame(prev frame, prevCursor int) {
	rt.activeFrame = prev
	rt.cursor = prevCursor
}

// Tracking reports whether a reactive frame is currently collecting
// dependencies.
func (rt *Runtime) Tracking() bool {
	return rt.activeFrame != nil
}

// Untracked runs fn with dependency collection suspended: reads inside it
// register nothing. The frame is restored even if fn panics.
func (rt *Runtime) Untracked(fn func()) {
	rt.pauseStack = append(rt.pauseStack, rt.activeFrame)
	rt.activeFrame = nil
	defer func() {
		last := len(rt.pauseStack) - 1
		rt.activeFrame = rt.pauseStack[last]
		rt.pauseStack = rt.pauseStack[:last]
	}()
	fn()
}

func (rt *Runtime) enqueue(q queueable) {
	rt.queue = append(rt.queue, q)
	if hw := uint64(len(rt.queue)); hw > rt.stats.QueueHighWater {
		rt.stats.QueueHighWater = hw
	}
}

// Flush drains the recomputation queue in enqueue order. Writes performed
// by a queued run enqueue further work onto the same drain, after the
// current entry completes; nothing recurses. Re-entrant calls are no-ops,
// so observers may call Flush freely.
func (rt *Runtime) Flush() {
	if rt.draining {
		return
	}
	rt.draining = true
	defer func() {
		rt.queue = rt.queue[:0]
		rt.draining = false
	}()
	rt.stats.Flushes++
	for i := 0; i < len(rt.queue); i++ {
		rt.queue[i].runQueued()
	}
}

// Batch runs fn with flushing deferred: all writes inside the outermost
// batch mark and enqueue as usual, and the queue drains once when the
// outermost batch ends.
func (rt *Runtime) Batch(fn func()) {
	rt.batchDepth++
	defer func() {
		rt.batchDepth--
		if rt.batchDepth == 0 {
			rt.Flush()
		}
	}()
	fn()
}

// currentScope resolves the scope a new primitive attaches to when no
// explicit parent is given: the scope of the frame whose body is running,
// or nil for top-level construction.
func (rt *Runtime) currentScope() *Scope {
	switch f := rt.activeFrame.(type) {
	case *Scope:
		return f
	case *DerivedCell:
		return &f.scope
	default:
		return nil
	}
}
