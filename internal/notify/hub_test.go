package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketflow/internal/domain"
)

func TestHub_PublishInvokesSubscribersInOrder(t *testing.T) {
	hub := NewHub()
	var got []string

	hub.Subscribe("ev-1", func(ev *domain.Event) {
		got = append(got, "first:"+ev.ID)
	})
	hub.Subscribe("ev-1", func(ev *domain.Event) {
		got = append(got, "second:"+ev.ID)
	})
	hub.Subscribe("ev-2", func(ev *domain.Event) {
		got = append(got, "other:"+ev.ID)
	})

	hub.Publish(&domain.Event{ID: "ev-1", TicketsSold: 3})

	require.Equal(t, []string{"first:ev-1", "second:ev-1"}, got)
}

func TestHub_PublishWithoutSubscribersIsNoop(t *testing.T) {
	hub := NewHub()
	assert.NotPanics(t, func() {
		hub.Publish(&domain.Event{ID: "ev-1"})
		hub.Publish(nil)
	})
}

func TestHub_PublishDeliversLatestSnapshot(t *testing.T) {
	hub := NewHub()
	var seen []int
	hub.Subscribe("ev-1", func(ev *domain.Event) {
		seen = append(seen, ev.TicketsSold)
	})

	hub.Publish(&domain.Event{ID: "ev-1", TicketsSold: 1})
	hub.Publish(&domain.Event{ID: "ev-1", TicketsSold: 2})

	// One round per publish, no coalescing, each with the snapshot it was given.
	require.Equal(t, []int{1, 2}, seen)
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := NewHub()
	var first, second int

	unsub := hub.Subscribe("ev-1", func(*domain.Event) { first++ })
	hub.Subscribe("ev-1", func(*domain.Event) { second++ })

	hub.Publish(&domain.Event{ID: "ev-1"})
	require.Equal(t, 1, first)
	require.Equal(t, 1, second)

	unsub()
	hub.Publish(&domain.Event{ID: "ev-1"})
	assert.Equal(t, 1, first, "removed handler must not be invoked")
	assert.Equal(t, 2, second, "remaining handler still invoked")

	// Unsubscribing again is a no-op.
	assert.NotPanics(t, assert.PanicTestFunc(unsub))
	hub.Publish(&domain.Event{ID: "ev-1"})
	assert.Equal(t, 1, first)
	assert.Equal(t, 3, second)
}

func TestHub_UnsubscribeRemovesOnlyItsHandler(t *testing.T) {
	hub := NewHub()
	counts := make([]int, 3)
	unsubs := make([]domain.Unsubscribe, 3)
	for i := range counts {
		i := i
		unsubs[i] = hub.Subscribe("ev-1", func(*domain.Event) { counts[i]++ })
	}

	unsubs[1]()
	hub.Publish(&domain.Event{ID: "ev-1"})

	assert.Equal(t, []int{1, 0, 1}, counts)
}

func TestHub_SubscriberCanUnsubscribeDuringPublish(t *testing.T) {
	hub := NewHub()
	var unsub domain.Unsubscribe
	calls := 0
	unsub = hub.Subscribe("ev-1", func(*domain.Event) {
		calls++
		unsub()
	})

	assert.NotPanics(t, func() {
		hub.Publish(&domain.Event{ID: "ev-1"})
		hub.Publish(&domain.Event{ID: "ev-1"})
	})
	assert.Equal(t, 1, calls)
}
