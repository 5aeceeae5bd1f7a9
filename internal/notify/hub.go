package notify

import (
	"sync"

	"ticketflow/internal/domain"
)

type subscription struct {
	id      uint64
	handler domain.EventHandler
}

// Hub is an in-process observer registry keyed by event ID. It implements
// domain.EventBroadcaster: handlers are invoked synchronously, in registration
// order, with the snapshot passed to Publish. The hub never expires
// subscriptions; holders release them through the returned Unsubscribe.
type Hub struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[string][]subscription
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string][]subscription)}
}

// Subscribe registers handler for the event ID. Multiple subscriptions for the
// same event are all retained and all invoked. The returned Unsubscribe
// removes exactly this handler and is safe to call more than once.
func (h *Hub) Subscribe(eventID string, handler domain.EventHandler) domain.Unsubscribe {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs[eventID] = append(h.subs[eventID], subscription{id: id, handler: handler})
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		list := h.subs[eventID]
		for i, sub := range list {
			if sub.id == id {
				h.subs[eventID] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(h.subs[eventID]) == 0 {
			delete(h.subs, eventID)
		}
	}
}

// Publish invokes every handler currently registered for event.ID, in
// registration order. No subscribers is a no-op. Handlers run outside the
// hub's lock so they may subscribe or unsubscribe without deadlocking;
// the handler list is snapshotted at publish time.
func (h *Hub) Publish(event *domain.Event) {
	if event == nil {
		return
	}
	h.mu.Lock()
	list := make([]subscription, len(h.subs[event.ID]))
	copy(list, h.subs[event.ID])
	h.mu.Unlock()

	for _, sub := range list {
		sub.handler(event)
	}
}
