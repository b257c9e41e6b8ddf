package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("worker@example.com")
	defer cleanup()

	hub.Publish("worker@example.com", Event{
		Recipient: "worker@example.com",
		Event:     "notification",
		Data:      "hello",
	})

	select {
	case event := <-ch:
		assert.Equal(t, "notification", event.Event)
		assert.Equal(t, "hello", event.Data)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestHub_PublishToAbsentRecipientDoesNotBlock(t *testing.T) {
	hub := NewHub()

	// No subscriber; must return immediately
	hub.Publish("nobody@example.com", Event{Event: "notification"})
}

func TestHub_PublishIsScopedToRecipient(t *testing.T) {
	hub := NewHub()

	chA, cleanupA := hub.Subscribe("a@example.com")
	defer cleanupA()
	chB, cleanupB := hub.Subscribe("b@example.com")
	defer cleanupB()

	hub.Publish("a@example.com", Event{Event: "notification"})

	assert.Len(t, chA, 1)
	assert.Len(t, chB, 0)
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("worker@example.com")
	defer cleanup()

	// Channel buffer is 10; the extra publishes must not block
	for i := 0; i < 25; i++ {
		hub.Publish("worker@example.com", Event{Event: "notification"})
	}

	assert.Len(t, ch, 10)
}

func TestHub_CleanupRemovesSubscription(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("worker@example.com")
	require.Equal(t, 1, hub.SubscriberCount("worker@example.com"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("worker@example.com"))

	// Channel is closed after cleanup
	_, open := <-ch
	assert.False(t, open)
}
