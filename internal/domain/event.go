package domain

import (
	"context"
	"time"
)

// Event represents a ticketed occasion with finite capacity.
// TicketsSold never exceeds TotalTickets; only the inventory service mutates
// it, through the store's ApplyBooking.
// swagger:model Event
type Event struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Venue        string    `json:"venue"`
	Date         time.Time `json:"date"`
	TotalTickets int       `json:"total_tickets"`
	TicketsSold  int       `json:"tickets_sold"`
	CreatedBy    string    `json:"created_by"`
	Image        string    `json:"image"`
}

// Remaining returns the number of unsold tickets.
func (e *Event) Remaining() int {
	return e.TotalTickets - e.TicketsSold
}

// SoldOut reports whether no capacity is left.
func (e *Event) SoldOut() bool {
	return e.TicketsSold >= e.TotalTickets
}

// NewEvent returns a new Event with the given fields. ID is assigned by the
// store on create when empty.
func NewEvent(title, description, venue string, date time.Time, totalTickets int, createdBy, image string) *Event {
	return &Event{
		Title:        title,
		Description:  description,
		Venue:        venue,
		Date:         date,
		TotalTickets: totalTickets,
		CreatedBy:    createdBy,
		Image:        image,
	}
}

// EventRepository defines the interface for event storage.
// List returns events in stable store order.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
}
