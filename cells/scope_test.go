package cells_test

import (
	"testing"

	"github.com/cellweave/cellweave/cells"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeTreeDisposesDepthFirst(t *testing.T) {
	rt := cells.NewRuntime(nil)
	root := cells.NewScope(rt, &cells.CellOptions{Parent: cells.Detached()})

	var order []string
	a := cells.NewScope(rt, &cells.CellOptions{Parent: root})
	b := cells.NewScope(rt, &cells.CellOptions{Parent: root})
	aa := cells.NewScope(rt, &cells.CellOptions{Parent: a})

	a.OnCleanup(func() { order = append(order, "a") })
	b.OnCleanup(func() { order = append(order, "b") })
	aa.OnCleanup(func() { order = append(order, "aa") })

	root.Dispose()
	assert.Equal(t, []string{"aa", "a", "b"}, order)
	assert.True(t, root.Disposed())
	assert.True(t, a.Disposed())
	assert.True(t, aa.Disposed())
	assert.True(t, b.Disposed())
	assert.Empty(t, root.Children())
}

func TestAttachToDisposedParentPanics(t *testing.T) {
	rt := cells.NewRuntime(nil)
	parent := cells.NewScope(rt, &cells.CellOptions{Parent: cells.Detached()})
	parent.Dispose()

	assert.PanicsWithValue(t, cells.ErrDisposedScope, func() {
		cells.NewScope(rt, &cells.CellOptions{Parent: parent})
	})
	assert.PanicsWithValue(t, cells.ErrDisposedScope, func() {
		cells.NewSource(rt, 1, &cells.CellOptions{Parent: parent})
	})
	assert.PanicsWithValue(t, cells.ErrDisposedScope, func() {
		cells.NewDerived(rt, func() (any, error) { return nil, nil }, &cells.CellOptions{Parent: parent})
	})
}

func TestScopeChildIndicesStayCoherent(t *testing.T) {
	rt := cells.NewRuntime(nil)
	root := cells.NewScope(rt, &cells.CellOptions{Parent: cells.Detached()})

	kids := make([]*cells.Scope, 4)
	for i := range kids {
		kids[i] = cells.NewScope(rt, &cells.CellOptions{Parent: root})
	}
	require.Len(t, root.Children(), 4)

	// disposing from the middle pop-and-swaps; every survivor still hangs
	// off the root and disposes with it
	kids[1].Dispose()
	kids[0].Dispose()
	assert.Len(t, root.Children(), 2)

	root.Dispose()
	for _, k := range kids {
		assert.True(t, k.Disposed())
	}
}

func TestScopeTracksObservedSources(t *testing.T) {
	rt := cells.NewRuntime(nil)
	a := cells.NewSource(rt, 1, nil)
	b := cells.NewSource(rt, 2, nil)
	c := cells.NewSource(rt, 3, nil)

	s := cells.NewScope(rt, &cells.CellOptions{Parent: cells.Detached()})
	s.Track(func() {
		a.Get()
		b.Get()
		a.Get() // duplicate reads register once
	})

	observed := s.Observed()
	assert.Len(t, observed, 2)
	assert.Contains(t, observed, a.AsObservable())
	assert.Contains(t, observed, b.AsObservable())
	assert.NotContains(t, observed, c.AsObservable())

	// plain scopes never subscribe; tracking is presence-only
	assert.Equal(t, 0, a.SubscriberCount())
}

func TestScopeCleanupScenario(t *testing.T) {
	rt := cells.NewRuntime(nil)
	v := cells.NewSource(rt, 0, nil)

	var record []int
	s := cells.NewScope(rt, &cells.CellOptions{Parent: cells.Detached()})

	var e *cells.Effect
	s.Track(func() {
		e = cells.NewEffect(rt, func() error {
			record = append(record, v.Get().(int))
			return nil
		}, nil)
	})
	require.Equal(t, []int{0}, record)

	s.Dispose()
	v.Set(9)
	rt.Flush()

	assert.Equal(t, []int{0}, record)
	assert.True(t, s.Disposed())
	assert.True(t, e.Disposed())
	assert.Equal(t, 0, v.SubscriberCount())
}

func TestCellsDieWithTheirOwningScope(t *testing.T) {
	rt := cells.NewRuntime(nil)
	s := cells.NewScope(rt, &cells.CellOptions{Parent: cells.Detached()})

	src := cells.NewSource(rt, 1, &cells.CellOptions{Parent: s})
	d := cells.NewDerived(rt, func() (any, error) {
		return src.Get(), nil
	}, &cells.CellOptions{Parent: s})
	_, err := d.Get()
	require.NoError(t, err)

	s.Dispose()
	assert.True(t, src.Disposed())
	assert.True(t, d.Disposed())
}

func TestScopeBornDisposedFromAbortedSignal(t *testing.T) {
	rt := cells.NewRuntime(nil)
	ctrl := cells.NewAbortController()
	ctrl.Abort()

	s := cells.NewScope(rt, &cells.CellOptions{Signal: ctrl.Signal(), Parent: cells.Detached()})
	assert.True(t, s.Disposed())
}

func TestScopeDisposedByAbort(t *testing.T) {
	rt := cells.NewRuntime(nil)
	ctrl := cells.NewAbortController()

	s := cells.NewScope(rt, &cells.CellOptions{Signal: ctrl.Signal(), Parent: cells.Detached()})
	child := cells.NewScope(rt, &cells.CellOptions{Parent: s})

	ctrl.Abort()
	assert.True(t, s.Disposed())
	assert.True(t, child.Disposed())
}

func TestDerivedActsAsScopeForNestedCells(t *testing.T) {
	rt := cells.NewRuntime(nil)
	trigger := cells.NewSource(rt, 0, nil)

	var nested *cells.SourceCell
	d := cells.NewDerived(rt, func() (any, error) {
		v := trigger.Get().(int)
		nested = cells.NewSource(rt, v, nil)
		return v, nil
	}, nil)

	_, err := d.Get()
	require.NoError(t, err)
	require.NotNil(t, nested)

	// disposing the derived cell disposes what its recipe created
	d.Dispose()
	assert.True(t, nested.Disposed())
}
