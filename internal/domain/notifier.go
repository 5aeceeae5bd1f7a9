package domain

// EventHandler observes committed changes to a single event. Handlers receive
// the latest committed snapshot at notification time, never a stale one.
type EventHandler func(event *Event)

// Unsubscribe removes the handler it was returned for. Invoking it more than
// once is a no-op.
type Unsubscribe func()

// EventBroadcaster fans out event changes to interested subscribers, keyed by
// event ID. Delivery is synchronous and in registration order; each committed
// change produces exactly one round per subscriber, with no coalescing.
type EventBroadcaster interface {
	Subscribe(eventID string, handler EventHandler) Unsubscribe
	Publish(event *Event)
}
