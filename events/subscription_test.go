package events

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionManager_EmitAndReceive(t *testing.T) {
	mgr := NewSubscriptionManager()
	sub := mgr.Subscribe()
	defer sub.Cancel()

	mgr.Emit(context.Background())

	select {
	case <-sub.Chan():
	case <-time.After(time.Second):
		t.Fatal("expected notification")
	}
}

func TestSubscriptionManager_EmitNonBlocking(t *testing.T) {
	mgr := NewSubscriptionManager()
	sub := mgr.Subscribe()
	defer sub.Cancel()

	// Second emit must not block even though the channel is full
	mgr.Emit(context.Background())
	mgr.Emit(context.Background())

	<-sub.Chan()
	select {
	case <-sub.Chan():
		t.Fatal("coalesced notification delivered twice")
	default:
	}
}

func TestSubscription_Cancel(t *testing.T) {
	mgr := NewSubscriptionManager()
	sub := mgr.Subscribe()

	sub.Cancel()
	sub.Cancel() // repeated cancel is safe

	// Channel closed after cancel
	_, open := <-sub.Chan()
	assert.False(t, open)

	// Emit to a cancelled subscription must not panic
	mgr.Emit(context.Background())
}

func TestSubscription_Watch(t *testing.T) {
	mgr := NewSubscriptionManager()

	var calls int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := mgr.Subscribe()
	sub.Watch(ctx, func() {
		atomic.AddInt32(&calls, 1)
	}, true)

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 1
	}, time.Second, 10*time.Millisecond)

	mgr.Emit(context.Background())
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	time.Sleep(50 * time.Millisecond)
	mgr.Emit(context.Background())
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
