package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunsImmediatelyAndOnInterval(t *testing.T) {
	var runs atomic.Int32

	s := New()
	s.Add("counter", 20*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	time.Sleep(110 * time.Millisecond)
	s.Stop()

	// one immediate run plus at least a couple of ticks; timing is loose on
	// purpose so the test survives a busy CI box
	got := runs.Load()
	assert.GreaterOrEqual(t, got, int32(3))
}

func TestScheduler_SkipsOverlappingTicks(t *testing.T) {
	var active atomic.Int32
	var maxActive atomic.Int32

	s := New()
	s.Add("slow", 10*time.Millisecond, func(ctx context.Context) error {
		n := active.Add(1)
		for {
			prev := maxActive.Load()
			if n <= prev || maxActive.CompareAndSwap(prev, n) {
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
		active.Add(-1)
		return nil
	})

	s.Start(context.Background())
	time.Sleep(120 * time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(1), maxActive.Load())
}

func TestScheduler_StopWaitsForInFlightRun(t *testing.T) {
	var finished atomic.Bool

	s := New()
	s.Add("long", time.Hour, func(ctx context.Context) error {
		time.Sleep(40 * time.Millisecond)
		finished.Store(true)
		return nil
	})

	s.Start(context.Background())
	time.Sleep(10 * time.Millisecond)
	s.Stop()

	assert.True(t, finished.Load())
}

func TestScheduler_ContextCancelStopsJobs(t *testing.T) {
	var runs atomic.Int32

	ctx, cancel := context.WithCancel(context.Background())
	s := New()
	s.Add("counter", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(ctx)
	time.Sleep(35 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)

	before := runs.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, before, runs.Load())

	s.Stop()
}

func TestScheduler_RestartAfterStop(t *testing.T) {
	var runs atomic.Int32

	s := New()
	s.Add("counter", 20*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	s.Stop()

	afterFirst := runs.Load()
	assert.GreaterOrEqual(t, afterFirst, int32(1))

	s.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	s.Stop()

	assert.Greater(t, runs.Load(), afterFirst)
}

func TestScheduler_JobsRunIndependently(t *testing.T) {
	var fast, slow atomic.Int32

	s := New()
	s.Add("slow", 15*time.Millisecond, func(ctx context.Context) error {
		slow.Add(1)
		time.Sleep(200 * time.Millisecond)
		return nil
	})
	s.Add("fast", 15*time.Millisecond, func(ctx context.Context) error {
		fast.Add(1)
		return nil
	})

	s.Start(context.Background())
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	// the slow job holding its run lock must not starve the fast one
	assert.GreaterOrEqual(t, fast.Load(), int32(3))
	assert.Equal(t, int32(1), slow.Load())
}
