package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ticketflow/internal/domain"
)

type ticketRepository struct {
	DB *sql.DB
}

// NewTicketRepository returns a TicketRepository backed by postgres. Tickets
// are written only through the inventory store's ApplyBooking.
func NewTicketRepository(db *sql.DB) domain.TicketRepository {
	return &ticketRepository{DB: db}
}

func (r *ticketRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Ticket, error) {
	query := `
		SELECT id, event_id, user_id, qr_code, created_at
		FROM tickets
		WHERE event_id = $1 AND user_id = $2
	`
	t := &domain.Ticket{}
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).
		Scan(&t.ID, &t.EventID, &t.UserID, &t.QRCode, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *ticketRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Ticket, error) {
	query := `
		SELECT id, event_id, user_id, qr_code, created_at
		FROM tickets
		WHERE event_id = $1
		ORDER BY seq
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []*domain.Ticket
	for rows.Next() {
		t := &domain.Ticket{}
		if err := rows.Scan(&t.ID, &t.EventID, &t.UserID, &t.QRCode, &t.CreatedAt); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []*domain.Ticket{}
	}
	return tickets, nil
}
