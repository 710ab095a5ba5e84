package loop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepClampsDelta(t *testing.T) {
	var got []float64
	l := New(0.1)
	l.Add(UpdaterFunc(func(d float64) { got = append(got, d) }))

	assert.Equal(t, 0.05, l.Step(0.05))
	assert.Equal(t, 0.1, l.Step(3))
	assert.Equal(t, 0.0, l.Step(-1))
	assert.Equal(t, []float64{0.05, 0.1, 0}, got)
	assert.Equal(t, uint64(3), l.Frames())
}

func TestUpdatersRunInOrder(t *testing.T) {
	var order []string
	l := New(1)
	l.Add(UpdaterFunc(func(float64) { order = append(order, "controller") }))
	l.Add(UpdaterFunc(func(float64) { order = append(order, "object") }))
	l.Add(UpdaterFunc(func(float64) { order = append(order, "recorder") }))

	l.Step(0.1)
	l.Step(0.1)
	assert.Equal(t, []string{
		"controller", "object", "recorder",
		"controller", "object", "recorder",
	}, order)
}

func TestTick(t *testing.T) {
	calls := 0
	l := New(0.1)
	l.Add(UpdaterFunc(func(float64) { calls++ }))

	t0 := time.Unix(1000, 0)
	assert.Zero(t, l.Tick(t0), "inactive loop does not step")
	assert.Zero(t, calls)

	l.Start(t0)
	require.True(t, l.Active())
	assert.InDelta(t, 0.05, l.Tick(t0.Add(50*time.Millisecond)), 1e-12)
	assert.Equal(t, 0.1, l.Tick(t0.Add(5*time.Second)), "a long stall is clamped")
	assert.Equal(t, 2, calls)

	l.Stop()
	assert.False(t, l.Active())
	assert.Zero(t, l.Tick(t0.Add(6*time.Second)))
	assert.Equal(t, 2, calls)
}

func TestRunCancelled(t *testing.T) {
	l := New(0.1)
	ctx, cancel := context.WithCancel(context.Background())

	ticks := 0
	l.Add(UpdaterFunc(func(float64) {
		ticks++
		if ticks == 3 {
			cancel()
		}
	}))

	err := l.Run(ctx, time.Millisecond)
	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, ticks, 3)
	assert.False(t, l.Active())
}

func TestRunStopped(t *testing.T) {
	l := New(0.1)

	var deltas []float64
	l.Add(UpdaterFunc(func(d float64) {
		deltas = append(deltas, d)
		if len(deltas) == 5 {
			l.Stop()
		}
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, l.Run(ctx, time.Millisecond))
	require.Len(t, deltas, 5)
	for _, d := range deltas {
		assert.GreaterOrEqual(t, d, 0.0)
		assert.LessOrEqual(t, d, 0.1)
	}
}
