package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"ticketflow/internal/domain"
)

// uniqueViolation is the postgres error code raised by the tickets
// (event_id, user_id) unique constraint.
const uniqueViolation = "23505"

type inventoryStore struct {
	DB *sql.DB
}

// NewInventoryStore returns an InventoryStore backed by postgres. The
// capacity-guarded UPDATE and the ticket INSERT run in one transaction, so
// readers observe either both effects or neither.
func NewInventoryStore(db *sql.DB) domain.InventoryStore {
	return &inventoryStore{DB: db}
}

func (s *inventoryStore) ApplyBooking(ctx context.Context, ticket *domain.Ticket) (*domain.Event, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	updateQuery := `
		UPDATE events
		SET tickets_sold = tickets_sold + 1
		WHERE id = $1 AND tickets_sold < total_tickets
		RETURNING id, title, description, venue, date, total_tickets, tickets_sold, created_by, image
	`
	ev := &domain.Event{}
	err = tx.QueryRowContext(ctx, updateQuery, ticket.EventID).
		Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Venue, &ev.Date,
			&ev.TotalTickets, &ev.TicketsSold, &ev.CreatedBy, &ev.Image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Either the event does not exist or it has no capacity left.
			var exists bool
			if probeErr := tx.QueryRowContext(ctx,
				`SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, ticket.EventID).
				Scan(&exists); probeErr != nil {
				return nil, probeErr
			}
			if !exists {
				return nil, domain.ErrEventNotFound
			}
			return nil, domain.ErrSoldOut
		}
		return nil, err
	}

	insertQuery := `
		INSERT INTO tickets (id, event_id, user_id, qr_code, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.ExecContext(ctx, insertQuery,
		ticket.ID, ticket.EventID, ticket.UserID, ticket.QRCode, ticket.CreatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, domain.ErrAlreadyBooked
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return ev, nil
}
