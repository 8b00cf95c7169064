package cells_test

import (
	"errors"
	"testing"

	"github.com/cellweave/cellweave/cells"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectRunsOnceSynchronouslyAtConstruction(t *testing.T) {
	rt := cells.NewRuntime(nil)
	x := cells.NewSource(rt, 0, nil)

	var record []int
	cells.NewEffect(rt, func() error {
		record = append(record, x.Get().(int))
		return nil
	}, nil)

	assert.Equal(t, []int{0}, record)
}

func TestEffectBatchesWritesAcrossOneDrain(t *testing.T) {
	rt := cells.NewRuntime(nil)
	x := cells.NewSource(rt, 0, nil)

	var record []int
	cells.NewEffect(rt, func() error {
		record = append(record, x.Get().(int))
		return nil
	}, nil)

	x.Set(1)
	x.Set(2)
	x.Set(3)
	rt.Flush()

	// initial run plus one coalesced re-run
	assert.Equal(t, []int{0, 3}, record)
}

func TestEffectQueuesWithoutAnySubscribers(t *testing.T) {
	// effects are the terminal subscriber; nothing observes them, they
	// enqueue anyway
	rt := cells.NewRuntime(nil)
	x := cells.NewSource(rt, 0, nil)

	runs := 0
	cells.NewEffect(rt, func() error {
		x.Get()
		runs++
		return nil
	}, nil)

	x.Set(1)
	rt.Flush()
	assert.Equal(t, 2, runs)
}

func TestEffectSkipsWhenNetValueUnchanged(t *testing.T) {
	// x -> d(pinned) -> effect: d recomputes but its value never moves,
	// so the effect stays parked
	rt := cells.NewRuntime(nil)
	x := cells.NewSource(rt, 0, nil)
	d := cells.NewDerived(rt, func() (any, error) {
		x.Get()
		return "pinned", nil
	}, nil)

	runs := 0
	cells.NewEffect(rt, func() error {
		_, err := d.Get()
		runs++
		return err
	}, nil)
	require.Equal(t, 1, runs)

	x.Set(1)
	rt.Flush()
	assert.Equal(t, 1, runs)
}

func TestEffectDisableEnable(t *testing.T) {
	rt := cells.NewRuntime(nil)
	x := cells.NewSource(rt, 0, nil)

	var record []int
	e := cells.NewEffect(rt, func() error {
		record = append(record, x.Get().(int))
		return nil
	}, nil)
	require.True(t, e.Enabled())

	e.Disable()
	assert.False(t, e.Enabled())
	x.Set(1)
	rt.Flush()
	assert.Equal(t, []int{0}, record)

	// re-enabling does not run by itself; the next change does
	e.Enable()
	assert.Equal(t, []int{0}, record)
	x.Set(2)
	rt.Flush()
	assert.Equal(t, []int{0, 2}, record)

	// disable-enable-disable collapses to disabled
	e.Disable()
	e.Enable()
	e.Disable()
	x.Set(3)
	rt.Flush()
	assert.Equal(t, []int{0, 2}, record)
}

func TestEffectManualRun(t *testing.T) {
	rt := cells.NewRuntime(nil)
	x := cells.NewSource(rt, 0, nil)

	runs := 0
	e := cells.NewEffect(rt, func() error {
		x.Get()
		runs++
		return nil
	}, nil)

	require.NoError(t, e.Run())
	assert.Equal(t, 2, runs)
}

func TestNestedEffectsAreDisposedBeforeEachRerun(t *testing.T) {
	rt := cells.NewRuntime(nil)
	outer := cells.NewSource(rt, 0, nil)
	inner := cells.NewSource(rt, 0, nil)

	innerRuns := 0
	e := cells.NewEffect(rt, func() error {
		outer.Get()
		cells.NewEffect(rt, func() error {
			inner.Get()
			innerRuns++
			return nil
		}, nil)
		return nil
	}, nil)
	require.Equal(t, 1, innerRuns)
	require.Len(t, e.Children(), 1)

	// the previous inner effect dies with the re-run; only one inner
	// effect ever listens to the source
	outer.Set(1)
	rt.Flush()
	assert.Equal(t, 2, innerRuns)
	assert.Len(t, e.Children(), 1)
	assert.Equal(t, 1, inner.SubscriberCount())

	inner.Set(5)
	rt.Flush()
	assert.Equal(t, 3, innerRuns)
}

func TestEffectDispose(t *testing.T) {
	rt := cells.NewRuntime(nil)
	x := cells.NewSource(rt, 0, nil)

	runs := 0
	e := cells.NewEffect(rt, func() error {
		x.Get()
		runs++
		return nil
	}, nil)

	e.Dispose()
	assert.True(t, e.Disposed())
	assert.Equal(t, 0, x.SubscriberCount())

	x.Set(1)
	rt.Flush()
	assert.Equal(t, 1, runs)

	e.Dispose()
	assert.True(t, e.Disposed())
}

func TestEffectErrorsGoToRuntimeHook(t *testing.T) {
	var hookErrs []error
	rt := cells.NewRuntime(&cells.RuntimeOptions{
		OnError: func(from any, err error) { hookErrs = append(hookErrs, err) },
	})
	x := cells.NewSource(rt, 0, nil)
	boom := errors.New("effect failed")

	cells.NewEffect(rt, func() error {
		if x.Get().(int) > 0 {
			return boom
		}
		return nil
	}, nil)
	require.Empty(t, hookErrs)

	x.Set(1)
	rt.Flush()
	require.Len(t, hookErrs, 1)
	assert.True(t, errors.Is(hookErrs[0], boom))

	// failure keeps the wiring; recovery is automatic
	x.Set(0)
	rt.Flush()
	assert.Len(t, hookErrs, 1)
}

func TestReentrantWritesJoinTheSameDrain(t *testing.T) {
	rt := cells.NewRuntime(nil)
	x := cells.NewSource(rt, 0, nil)
	y := cells.NewSource(rt, 0, nil)

	var yRecord []int
	cells.NewEffect(rt, func() error {
		yRecord = append(yRecord, y.Get().(int))
		return nil
	}, nil)
	cells.NewEffect(rt, func() error {
		// writing during a drain enqueues onto the same drain
		v := x.Get().(int)
		return y.Set(v * 10)
	}, nil)

	x.Set(2)
	rt.Flush()
	assert.Equal(t, []int{0, 20}, yRecord)
}

func TestEffectBornDisposedFromAbortedSignal(t *testing.T) {
	rt := cells.NewRuntime(nil)
	ctrl := cells.NewAbortController()
	ctrl.Abort()

	runs := 0
	e := cells.NewEffect(rt, func() error {
		runs++
		return nil
	}, &cells.CellOptions{Signal: ctrl.Signal()})

	assert.True(t, e.Disposed())
	assert.Equal(t, 0, runs)
}

func TestEffectDisposedByAbortStopsRunning(t *testing.T) {
	rt := cells.NewRuntime(nil)
	ctrl := cells.NewAbortController()
	x := cells.NewSource(rt, 0, nil)

	runs := 0
	cells.NewEffect(rt, func() error {
		x.Get()
		runs++
		return nil
	}, &cells.CellOptions{Signal: ctrl.Signal()})
	require.Equal(t, 1, runs)

	ctrl.Abort()
	x.Set(1)
	rt.Flush()
	assert.Equal(t, 1, runs)
	assert.Equal(t, 0, x.SubscriberCount())
}
