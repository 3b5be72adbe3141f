package changefeed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHubPublishReachesTableSubscribers(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("attendance")
	defer cleanup()

	hub.Publish(Event{Table: "attendance", Op: OpInserted, Record: "r1"})
	hub.Publish(Event{Table: "employees", Op: OpUpdated, Record: "r2"})

	select {
	case ev := <-ch:
		assert.Equal(t, OpInserted, ev.Op)
		assert.Equal(t, "r1", ev.Record)
	case <-time.After(time.Second):
		t.Fatal("expected attendance event")
	}

	select {
	case ev := <-ch:
		t.Fatalf("unexpected cross-table event: %+v", ev)
	default:
	}
}

func TestHubCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	_, cleanup := hub.Subscribe("centers")
	assert.Equal(t, 1, hub.SubscriberCount("centers"))
	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("centers"))
}

func TestHubPublishDoesNotBlockOnFullChannel(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("holidays")
	defer cleanup()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			hub.Publish(Event{Table: "holidays", Op: OpInserted, Record: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on slow subscriber")
	}
	assert.Equal(t, 64, len(ch))
}
