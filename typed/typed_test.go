package typed_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cellweave/cellweave/cells"
	"github.com/cellweave/cellweave/typed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subOne(a int) int {
	return a - 1
}

func sumTwo(a, b int) int {
	return a + b
}

func identity[T any](a T) T {
	return a
}

func TestBasicUsage(t *testing.T) {
	rt := cells.NewRuntime(nil)
	count := typed.Signal(rt, 1)
	doubleCount := typed.Computed(rt, func() (int, error) {
		return count.Value() * 2, nil
	})

	callCount := 0
	typed.RunEffect(rt, func() error {
		count.Value()
		callCount++
		return nil
	})
	assert.Equal(t, 1, callCount)

	assert.Equal(t, 2, doubleCount.MustValue())
	count.SetValue(2)
	assert.Equal(t, 4, doubleCount.MustValue())
	rt.Flush()
	assert.Equal(t, 2, callCount)
}

func TestEffectStopsAfterDispose(t *testing.T) {
	rt := cells.NewRuntime(nil)
	count := typed.Signal(rt, 1)

	callCount := 0
	e := typed.RunEffect(rt, func() error {
		count.Value()
		callCount++
		return nil
	})
	assert.Equal(t, 1, callCount)

	count.SetValue(2)
	rt.Flush()
	assert.Equal(t, 2, callCount)

	e.Dispose()
	count.SetValue(3)
	rt.Flush()
	assert.Equal(t, 2, callCount)
}

func TestTopologyDropAbaUpdates(t *testing.T) {
	//     A
	//   / |
	//  B  | <- Looks like a flag doesn't it? :D
	//   \ |
	//     C
	//     |
	//     D
	rt := cells.NewRuntime(nil)
	a := typed.Signal(rt, 2)
	b := typed.Computed1(rt, a.Cell(), subOne)
	c := typed.Computed2(rt, a.Cell(), b.Cell(), sumTwo)

	callCount := 0
	d := typed.Computed1(rt, c.Cell(), func(c int) string {
		callCount++
		return fmt.Sprintf("d: %d", c)
	})

	assert.Equal(t, "d: 3", d.MustValue())
	assert.Equal(t, 1, callCount)

	a.SetValue(4)
	d.MustValue()
	assert.Equal(t, 2, callCount)
}

func TestDiamondRunsOnce(t *testing.T) {
	//     A
	//   /   \
	//  B     C
	//   \   /
	//     D
	rt := cells.NewRuntime(nil)
	a := typed.Signal(rt, "a")
	b := typed.Computed1(rt, a.Cell(), identity[string])
	c := typed.Computed1(rt, a.Cell(), identity[string])

	callCount := 0
	d := typed.Computed2(rt, b.Cell(), c.Cell(), func(b, c string) string {
		callCount++
		return b + " " + c
	})

	assert.Equal(t, "a a", d.MustValue())
	assert.Equal(t, 1, callCount)
	callCount = 0

	a.SetValue("aa")
	assert.Equal(t, "aa aa", d.MustValue())
	assert.Equal(t, 1, callCount)
}

func TestComputedErrorPropagates(t *testing.T) {
	rt := cells.NewRuntime(nil)
	boom := errors.New("boom")
	a := typed.Signal(rt, 0)

	d := typed.Computed(rt, func() (int, error) {
		if a.Value() == 0 {
			return 0, boom
		}
		return a.Value(), nil
	})

	_, err := d.Value()
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))

	a.SetValue(5)
	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestArityComputedChain(t *testing.T) {
	rt := cells.NewRuntime(nil)
	a := typed.Signal(rt, 2)
	b := typed.Computed1(rt, a.Cell(), func(v int) int { return v * 10 })
	c := typed.Computed2(rt, a.Cell(), b.Cell(), sumTwo)

	assert.Equal(t, 22, c.MustValue())
	a.SetValue(3)
	assert.Equal(t, 33, c.MustValue())
}

func TestArityEffect(t *testing.T) {
	rt := cells.NewRuntime(nil)
	a := typed.Signal(rt, 1)
	b := typed.Signal(rt, 2)

	var seen []int
	typed.Effect2(rt, a.Cell(), b.Cell(), func(av, bv int) error {
		seen = append(seen, av+bv)
		return nil
	})
	require.Equal(t, []int{3}, seen)

	rt.Batch(func() {
		a.SetValue(10)
		b.SetValue(20)
	})
	assert.Equal(t, []int{3, 30}, seen)
}

func TestComputed3(t *testing.T) {
	rt := cells.NewRuntime(nil)
	a := typed.Signal(rt, "a")
	b := typed.Signal(rt, "b")
	c := typed.Signal(rt, "c")

	d := typed.Computed3(rt, a.Cell(), b.Cell(), c.Cell(), func(x, y, z string) string {
		return x + y + z
	})
	assert.Equal(t, "abc", d.MustValue())

	b.SetValue("B")
	assert.Equal(t, "aBc", d.MustValue())
}

func TestZeroValueReads(t *testing.T) {
	rt := cells.NewRuntime(nil)
	s := typed.Signal(rt, (*struct{})(nil))
	assert.Nil(t, s.Value())

	n := typed.Signal[any](rt, nil)
	assert.Nil(t, n.Value())
}
