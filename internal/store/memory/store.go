// Package memory provides the in-memory entity store: the canonical
// collections of events, users, and tickets behind the domain repository
// interfaces. A single RWMutex guards all state, so every mutation commits as
// one atomic step and readers never observe a half-applied booking. Reads
// return snapshot copies.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"ticketflow/internal/domain"
)

// Store holds the canonical entity collections. Use Events, Users, and
// Tickets for the repository views; Store itself implements
// domain.InventoryStore.
type Store struct {
	mu            sync.RWMutex
	events        []*domain.Event
	eventsByID    map[string]*domain.Event
	users         []*domain.User
	usersByID     map[string]*domain.User
	usersByEmail  map[string]*domain.User
	tickets       []*domain.Ticket
	ticketsByPair map[string]*domain.Ticket
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		eventsByID:    make(map[string]*domain.Event),
		usersByID:     make(map[string]*domain.User),
		usersByEmail:  make(map[string]*domain.User),
		ticketsByPair: make(map[string]*domain.Ticket),
	}
}

// Events returns the event repository view of the store.
func (s *Store) Events() domain.EventRepository { return &eventStore{s} }

// Users returns the user repository view of the store.
func (s *Store) Users() domain.UserRepository { return &userStore{s} }

// Tickets returns the ticket repository view of the store.
func (s *Store) Tickets() domain.TicketRepository { return &ticketStore{s} }

// ApplyBooking commits a successful booking: the event's tickets_sold
// increment and the ticket append happen inside one critical section, so
// concurrent readers see either both or neither. It guards the store's own
// invariants (capacity, one ticket per pair) even though the inventory
// service checks them first.
func (s *Store) ApplyBooking(ctx context.Context, ticket *domain.Ticket) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.eventsByID[ticket.EventID]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	if ev.SoldOut() {
		return nil, domain.ErrSoldOut
	}
	key := pairKey(ticket.EventID, ticket.UserID)
	if _, ok := s.ticketsByPair[key]; ok {
		return nil, domain.ErrAlreadyBooked
	}

	ev.TicketsSold++
	t := cloneTicket(ticket)
	s.tickets = append(s.tickets, t)
	s.ticketsByPair[key] = t
	return cloneEvent(ev), nil
}

func pairKey(eventID, userID string) string {
	return eventID + "\x00" + userID
}

type eventStore struct{ s *Store }

func (r *eventStore) Create(ctx context.Context, event *domain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if _, ok := r.s.eventsByID[event.ID]; ok {
		return domain.ErrInvalidInput
	}
	ev := cloneEvent(event)
	r.s.events = append(r.s.events, ev)
	r.s.eventsByID[ev.ID] = ev
	return nil
}

func (r *eventStore) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ev, ok := r.s.eventsByID[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return cloneEvent(ev), nil
}

func (r *eventStore) List(ctx context.Context) ([]*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Event, 0, len(r.s.events))
	for _, ev := range r.s.events {
		out = append(out, cloneEvent(ev))
	}
	return out, nil
}

type userStore struct{ s *Store }

func (r *userStore) Create(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if _, ok := r.s.usersByID[user.ID]; ok {
		return domain.ErrInvalidInput
	}
	if _, ok := r.s.usersByEmail[user.Email]; ok {
		return domain.ErrInvalidInput
	}
	u := cloneUser(user)
	r.s.users = append(r.s.users, u)
	r.s.usersByID[u.ID] = u
	r.s.usersByEmail[u.Email] = u
	return nil
}

func (r *userStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.usersByID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *userStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.usersByEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

type ticketStore struct{ s *Store }

func (r *ticketStore) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.ticketsByPair[pairKey(eventID, userID)]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	return cloneTicket(t), nil
}

func (r *ticketStore) ListByEventID(ctx context.Context, eventID string) ([]*domain.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.Ticket
	for _, t := range r.s.tickets {
		if t.EventID == eventID {
			out = append(out, cloneTicket(t))
		}
	}
	if out == nil {
		out = []*domain.Ticket{}
	}
	return out, nil
}

func cloneEvent(ev *domain.Event) *domain.Event {
	c := *ev
	return &c
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func cloneTicket(t *domain.Ticket) *domain.Ticket {
	c := *t
	return &c
}
