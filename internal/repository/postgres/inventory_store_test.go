package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketflow/internal/domain"
)

func bookingTicket() *domain.Ticket {
	return &domain.Ticket{
		ID:        "tk-1",
		EventID:   "ev-1",
		UserID:    "user-1",
		QRCode:    "payload",
		CreatedAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestInventoryStore_ApplyBooking(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ticket := bookingTicket()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE events(\s|.)*SET tickets_sold = tickets_sold \+ 1(\s|.)*RETURNING`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows(eventColumns).
			AddRow("ev-1", "GopherConf", "desc", "Online", date, 500, 121, "user-organizer", "img"))
	mock.ExpectExec(`INSERT INTO tickets`).
		WithArgs(ticket.ID, ticket.EventID, ticket.UserID, ticket.QRCode, ticket.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	store := NewInventoryStore(db)
	ev, err := store.ApplyBooking(ctx, ticket)
	require.NoError(t, err)
	assert.Equal(t, 121, ev.TicketsSold)
	assert.Equal(t, "GopherConf", ev.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryStore_ApplyBookingNoCapacity(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		exists  bool
		wantErr error
	}{
		{name: "sold out", exists: true, wantErr: domain.ErrSoldOut},
		{name: "event not found", exists: false, wantErr: domain.ErrEventNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectBegin()
			mock.ExpectQuery(`UPDATE events`).
				WithArgs("ev-1").
				WillReturnError(sql.ErrNoRows)
			mock.ExpectQuery(`SELECT EXISTS`).
				WithArgs("ev-1").
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists))
			mock.ExpectRollback()

			store := NewInventoryStore(db)
			_, err = store.ApplyBooking(ctx, bookingTicket())
			require.ErrorIs(t, err, tt.wantErr)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInventoryStore_ApplyBookingDuplicate(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ticket := bookingTicket()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE events`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows(eventColumns).
			AddRow("ev-1", "GopherConf", "desc", "Online", date, 500, 121, "user-organizer", "img"))
	mock.ExpectExec(`INSERT INTO tickets`).
		WithArgs(ticket.ID, ticket.EventID, ticket.UserID, ticket.QRCode, ticket.CreatedAt).
		WillReturnError(&pq.Error{Code: pq.ErrorCode(uniqueViolation)})
	mock.ExpectRollback()

	store := NewInventoryStore(db)
	_, err = store.ApplyBooking(ctx, ticket)
	require.ErrorIs(t, err, domain.ErrAlreadyBooked)
	require.NoError(t, mock.ExpectationsWereMet())
}
