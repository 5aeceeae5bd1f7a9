package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketflow/internal/clock"
	"ticketflow/internal/domain"
	"ticketflow/internal/notify"
	"ticketflow/internal/store/memory"
)

type queryFixture struct {
	store     *memory.Store
	queries   domain.QueryService
	inventory domain.InventoryService
}

func newQueryFixture(t *testing.T) *queryFixture {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, memory.Seed(context.Background(), store))
	queries := NewQueryService(store.Events(), store.Users(), store.Tickets(), 5*time.Second)
	inventory := NewInventoryService(
		store.Events(), store.Users(), store.Tickets(), store, notify.NewHub(), nil,
		clock.NewSystem(), testLogger, 5*time.Second,
	)
	return &queryFixture{store: store, queries: queries, inventory: inventory}
}

func TestQuery_ListEvents(t *testing.T) {
	f := newQueryFixture(t)

	events, err := f.queries.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "evt-gopherconf", events[0].ID)
	assert.Equal(t, "evt-css-workshop", events[1].ID)
	assert.Equal(t, "evt-toolingconf", events[2].ID)
}

func TestQuery_GetEvent(t *testing.T) {
	f := newQueryFixture(t)

	ev, err := f.queries.GetEvent(context.Background(), "evt-gopherconf")
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "GopherConf 2026", ev.Title)

	// Absence is a value, not an error.
	ev, err = f.queries.GetEvent(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestQuery_GetTicket(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture(t)

	ticket, err := f.queries.GetTicket(ctx, "evt-gopherconf", "user-attendee")
	require.NoError(t, err)
	assert.Nil(t, ticket)

	booked, err := f.inventory.BookTicket(ctx, "evt-gopherconf", "user-attendee")
	require.NoError(t, err)

	ticket, err = f.queries.GetTicket(ctx, "evt-gopherconf", "user-attendee")
	require.NoError(t, err)
	require.NotNil(t, ticket)
	assert.Equal(t, booked.ID, ticket.ID)
}

func TestQuery_ListAttendees(t *testing.T) {
	ctx := context.Background()
	f := newQueryFixture(t)

	first, err := f.inventory.BookTicket(ctx, "evt-css-workshop", "user-attendee")
	require.NoError(t, err)
	second, err := f.inventory.BookTicket(ctx, "evt-css-workshop", "user-organizer")
	require.NoError(t, err)
	// A booking on a different event must not leak into the listing.
	_, err = f.inventory.BookTicket(ctx, "evt-gopherconf", "user-attendee")
	require.NoError(t, err)

	attendees, err := f.queries.ListAttendees(ctx, "evt-css-workshop")
	require.NoError(t, err)
	require.Len(t, attendees, 2)

	assert.Equal(t, first.ID, attendees[0].Ticket.ID, "creation order preserved")
	assert.Equal(t, second.ID, attendees[1].Ticket.ID)

	assert.Equal(t, "user-attendee", attendees[0].User.ID)
	assert.Equal(t, "Sam Attendee", attendees[0].User.Name)
	assert.Equal(t, "evt-css-workshop", attendees[0].Event.ID)
	assert.Equal(t, "user-organizer", attendees[1].User.ID)
}

func TestQuery_ListAttendeesEmpty(t *testing.T) {
	f := newQueryFixture(t)

	attendees, err := f.queries.ListAttendees(context.Background(), "evt-toolingconf")
	require.NoError(t, err)
	assert.NotNil(t, attendees)
	assert.Empty(t, attendees)

	// Unknown events also yield an empty slice rather than an error.
	attendees, err = f.queries.ListAttendees(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, attendees)
}
