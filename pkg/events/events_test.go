package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_PublishDeliversToSubscriber(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	sub := b.Subscribe()
	assert.Equal(t, 1, b.SubscriberCount())

	b.Publish(&Event{Type: EventTaskDispatched, Message: "task dispatched"})

	select {
	case ev := <-sub:
		assert.Equal(t, EventTaskDispatched, ev.Type)
		assert.False(t, ev.Timestamp.IsZero())
		assert.NotEmpty(t, ev.ID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBroker_PublishPreservesCallerSuppliedID(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	sub := b.Subscribe()
	b.Publish(&Event{ID: "fixed-id", Type: EventTaskFinished})

	select {
	case ev := <-sub:
		assert.Equal(t, "fixed-id", ev.ID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBroker_PublishFansOutToAllSubscribers(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	sub1 := b.Subscribe()
	sub2 := b.Subscribe()

	b.Publish(&Event{Type: EventExecutorAdded})

	for _, sub := range []Subscriber{sub1, sub2} {
		select {
		case ev := <-sub:
			assert.Equal(t, EventExecutorAdded, ev.Type)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestBroker_UnsubscribeClosesChannel(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	sub := b.Subscribe()
	b.Unsubscribe(sub)
	assert.Equal(t, 0, b.SubscriberCount())

	_, ok := <-sub
	assert.False(t, ok, "channel should be closed after Unsubscribe")
}

func TestBroker_SlowSubscriberDoesNotBlockOthers(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	slow := b.Subscribe() // never drained
	fast := b.Subscribe()

	for i := 0; i < 200; i++ {
		b.Publish(&Event{Type: EventTaskFinished})
	}

	select {
	case ev := <-fast:
		assert.Equal(t, EventTaskFinished, ev.Type)
	case <-time.After(time.Second):
		t.Fatal("fast subscriber starved by slow one")
	}
	_ = slow
}

func TestBroker_StopPreventsFurtherPublish(t *testing.T) {
	b := NewBroker()
	b.Start()
	sub := b.Subscribe()
	b.Stop()

	// Publish after Stop should not block forever (selects on stopCh too).
	done := make(chan struct{})
	go func() {
		b.Publish(&Event{Type: EventTaskFailed})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked after Stop")
	}

	select {
	case _, ok := <-sub:
		_ = ok
	default:
	}
}

func TestEvent_TimestampSetOnlyWhenZero(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	fixed := time.Now().Add(-time.Hour)
	sub := b.Subscribe()
	b.Publish(&Event{Type: EventTaskLost, Timestamp: fixed})

	select {
	case ev := <-sub:
		assert.True(t, ev.Timestamp.Equal(fixed))
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBroker_SubscriberCount(t *testing.T) {
	b := NewBroker()
	require.Equal(t, 0, b.SubscriberCount())
	sub := b.Subscribe()
	require.Equal(t, 1, b.SubscriberCount())
	b.Unsubscribe(sub)
	require.Equal(t, 0, b.SubscriberCount())
}
