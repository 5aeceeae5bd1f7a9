package domain

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// Ticket is proof of a successful booking, bound to exactly one event and one
// user. Tickets are immutable once created; at most one exists per
// (event, user) pair.
// swagger:model Ticket
type Ticket struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	QRCode    string    `json:"qr_code"`
	CreatedAt time.Time `json:"created_at"`
}

// AttendeeTicket bundles a ticket with its owning user and parent event, as
// served by the organizer dashboard.
// swagger:model AttendeeTicket
type AttendeeTicket struct {
	Ticket *Ticket `json:"ticket"`
	User   *User   `json:"user"`
	Event  *Event  `json:"event"`
}

// QRPayload is the bundle encoded into a ticket's QR code. The ticket ID
// embedded here is the Ticket's own ID.
type QRPayload struct {
	EventID  string `json:"event_id"`
	UserID   string `json:"user_id"`
	TicketID string `json:"ticket_id"`
}

// EncodeQRPayload serializes the payload into the opaque string stored in
// Ticket.QRCode. No cryptographic guarantee is made; the payload only needs to
// round-trip through a scanner.
func EncodeQRPayload(p QRPayload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal qr payload: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeQRPayload reverses EncodeQRPayload.
func DecodeQRPayload(s string) (QRPayload, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return QRPayload{}, fmt.Errorf("decode qr payload: %w", err)
	}
	var p QRPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return QRPayload{}, fmt.Errorf("unmarshal qr payload: %w", err)
	}
	return p, nil
}

// TicketRepository defines read access to ticket storage. Tickets are written
// exclusively through InventoryStore.ApplyBooking.
type TicketRepository interface {
	// GetByEventAndUser returns the ticket for the pair, or ErrTicketNotFound.
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Ticket, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Ticket, error)
}

// InventoryStore persists a successful booking as one atomic change relative
// to concurrent readers and writers: the event's tickets_sold increment and
// the ticket append commit together or not at all. It returns the updated
// event snapshot for notification fan-out.
type InventoryStore interface {
	ApplyBooking(ctx context.Context, ticket *Ticket) (*Event, error)
}

// InventoryService enforces the booking invariants: event and user must
// exist, capacity must remain, and a user holds at most one ticket per event.
type InventoryService interface {
	// BookTicket books one ticket for the user on the event. Failures are
	// ErrEventNotFound, ErrUserNotFound, ErrSoldOut, or ErrAlreadyBooked, in
	// that precedence; no state changes on any failure path.
	BookTicket(ctx context.Context, eventID, userID string) (*Ticket, error)
}

// QueryService serves read-only projections. Absent results are (nil, nil),
// never an error; errors are infrastructure failures only.
type QueryService interface {
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	GetTicket(ctx context.Context, eventID, userID string) (*Ticket, error)
	// ListAttendees returns the event's tickets in creation order, each
	// joined with its user and event. Unknown event IDs yield an empty slice.
	ListAttendees(ctx context.Context, eventID string) ([]*AttendeeTicket, error)
}
