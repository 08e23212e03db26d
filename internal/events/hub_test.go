package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHub_PublishDeliversToAllSubscribers(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	ch1, unsub1 := hub.Subscribe()
	ch2, unsub2 := hub.Subscribe()
	defer unsub1()
	defer unsub2()

	id := uuid.New()
	hub.Publish(Event{Type: SuggestionCreated, SuggestionID: id})

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, SuggestionCreated, ev.Type)
			assert.Equal(t, id, ev.SuggestionID)
			assert.False(t, ev.At.IsZero())
		case <-time.After(time.Second):
			t.Fatal("expected event was not delivered")
		}
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	ch, unsubscribe := hub.Subscribe()
	assert.Equal(t, 1, hub.SubscriberCount())

	unsubscribe()
	unsubscribe() // safe to call twice

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.SubscriberCount())
}

func TestHub_PublishNeverBlocksOnFullBuffer(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	ch, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	// Overfill the subscriber buffer without draining it.
	for i := 0; i < subscriberBuffer*2; i++ {
		hub.Publish(Event{Type: SuggestionVoted, SuggestionID: uuid.New()})
	}

	assert.Len(t, ch, subscriberBuffer)
}

func TestHub_CloseStopsDelivery(t *testing.T) {
	hub := NewHub()

	ch, _ := hub.Subscribe()
	hub.Close()

	_, open := <-ch
	assert.False(t, open)

	// Publishing and subscribing after close are no-ops.
	hub.Publish(Event{Type: SuggestionDeleted})
	late, _ := hub.Subscribe()
	_, open = <-late
	assert.False(t, open)
}
