package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_Periodic(t *testing.T) {
	var counter int32
	task := func(ctx context.Context) {
		atomic.AddInt32(&counter, 1)
	}

	s := New(50*time.Millisecond, task)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.Start(ctx, true)
	assert.True(t, s.IsRunning())

	time.Sleep(180 * time.Millisecond)
	s.Stop()
	assert.False(t, s.IsRunning())

	// One immediate run plus at least two ticks
	assert.GreaterOrEqual(t, atomic.LoadInt32(&counter), int32(3))

	// No further runs after Stop
	final := atomic.LoadInt32(&counter)
	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, final, atomic.LoadInt32(&counter))
}

func TestScheduler_StopBeforeStart(t *testing.T) {
	s := New(50*time.Millisecond, func(ctx context.Context) {})
	s.Stop() // must not panic
	assert.False(t, s.IsRunning())
}

func TestScheduler_DoubleStart(t *testing.T) {
	var counter int32
	s := New(time.Hour, func(ctx context.Context) {
		atomic.AddInt32(&counter, 1)
	})

	ctx := context.Background()
	s.Start(ctx, true)
	s.Start(ctx, true) // second start is a no-op
	defer s.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&counter))
}

func TestScheduler_ContextCancellation(t *testing.T) {
	var counter int32
	s := New(30*time.Millisecond, func(ctx context.Context) {
		atomic.AddInt32(&counter, 1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx, false)
	cancel()

	time.Sleep(100 * time.Millisecond)
	assert.LessOrEqual(t, atomic.LoadInt32(&counter), int32(1))
	s.Stop()
}
