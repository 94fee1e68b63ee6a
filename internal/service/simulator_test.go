package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/logger"
)

func newTestSimulator(t *testing.T) Simulator {
	t.Helper()
	sim := NewSimulator(logger.InitializeTestZapLogger(), SimulatorConfig{
		ReportInterval:  10 * time.Millisecond,
		ShutdownTimeout: time.Second,
	})
	require.NoError(t, sim.Start(context.Background()))
	return sim
}

func TestSimulator_RunsTaskAfterDelay(t *testing.T) {
	sim := newTestSimulator(t)
	defer sim.Stop()

	var ran atomic.Bool
	require.NoError(t, sim.Schedule(Task{
		Key:   "k",
		Owner: "o",
		Delay: 10 * time.Millisecond,
		Run:   func(ctx context.Context) { ran.Store(true) },
	}))
	assert.True(t, sim.Pending("k"))

	require.Eventually(t, ran.Load, testWait, testTick)
	require.Eventually(t, func() bool { return !sim.Pending("k") }, testWait, testTick)

	st := sim.GetStatus()
	assert.True(t, st.IsRunning)
	assert.EqualValues(t, 1, st.TotalScheduled)
	assert.EqualValues(t, 1, st.TotalFired)
}

func TestSimulator_DuplicateKey(t *testing.T) {
	sim := newTestSimulator(t)
	defer sim.Stop()

	task := Task{Key: "k", Delay: time.Hour, Run: func(context.Context) {}}
	require.NoError(t, sim.Schedule(task))
	assert.ErrorIs(t, sim.Schedule(task), ErrTaskExists)
}

func TestSimulator_CancelCallsOnCancel(t *testing.T) {
	sim := newTestSimulator(t)
	defer sim.Stop()

	var ran, cancelled atomic.Bool
	require.NoError(t, sim.Schedule(Task{
		Key:      "k",
		Delay:    50 * time.Millisecond,
		Run:      func(context.Context) { ran.Store(true) },
		OnCancel: func(context.Context) { cancelled.Store(true) },
	}))

	assert.True(t, sim.Cancel("k"))
	assert.False(t, sim.Cancel("k"))
	require.Eventually(t, cancelled.Load, testWait, testTick)

	time.Sleep(100 * time.Millisecond)
	assert.False(t, ran.Load())
	assert.EqualValues(t, 1, sim.GetStatus().TotalCancelled)
}

func TestSimulator_CancelOwner(t *testing.T) {
	sim := newTestSimulator(t)
	defer sim.Stop()

	noop := func(context.Context) {}
	require.NoError(t, sim.Schedule(Task{Key: "a1", Owner: "a", Delay: time.Hour, Run: noop}))
	require.NoError(t, sim.Schedule(Task{Key: "a2", Owner: "a", Delay: time.Hour, Run: noop}))
	require.NoError(t, sim.Schedule(Task{Key: "b1", Owner: "b", Delay: time.Hour, Run: noop}))

	assert.Equal(t, 2, sim.CancelOwner("a"))
	assert.False(t, sim.Pending("a1"))
	assert.True(t, sim.Pending("b1"))
	assert.Equal(t, 1, sim.GetStatus().PendingTasks)
}

func TestSimulator_CancelWhileRunningCancelsContext(t *testing.T) {
	sim := newTestSimulator(t)
	defer sim.Stop()

	started := make(chan struct{})
	var sawCancel atomic.Bool
	require.NoError(t, sim.Schedule(Task{
		Key: "k",
		Run: func(ctx context.Context) {
			close(started)
			<-ctx.Done()
			sawCancel.Store(true)
		},
	}))

	<-started
	assert.True(t, sim.Cancel("k"))
	require.Eventually(t, sawCancel.Load, testWait, testTick)
}

func TestSimulator_StopCancelsPending(t *testing.T) {
	sim := newTestSimulator(t)

	var cancelled atomic.Bool
	require.NoError(t, sim.Schedule(Task{
		Key:      "k",
		Delay:    time.Hour,
		Run:      func(context.Context) {},
		OnCancel: func(context.Context) { cancelled.Store(true) },
	}))

	require.NoError(t, sim.Stop())
	assert.True(t, cancelled.Load())
	assert.False(t, sim.GetStatus().IsRunning)
	assert.ErrorIs(t, sim.Stop(), ErrSimulatorNotRunning)
	assert.ErrorIs(t, sim.Schedule(Task{Key: "x", Run: func(context.Context) {}}), ErrSimulatorNotRunning)
}
