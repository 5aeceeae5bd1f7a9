package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"ticketflow/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns an EventRepository backed by postgres.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	query := `
		INSERT INTO events (id, title, description, venue, date, total_tickets, tickets_sold, created_by, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query,
		event.ID, event.Title, event.Description, event.Venue, event.Date,
		event.TotalTickets, event.TicketsSold, event.CreatedBy, event.Image)
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, title, description, venue, date, total_tickets, tickets_sold, created_by, image
		FROM events
		WHERE id = $1
	`
	ev := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Venue, &ev.Date,
			&ev.TotalTickets, &ev.TicketsSold, &ev.CreatedBy, &ev.Image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return ev, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	// seq is a bigserial; ordering by it preserves insertion order.
	query := `
		SELECT id, title, description, venue, date, total_tickets, tickets_sold, created_by, image
		FROM events
		ORDER BY seq
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		ev := &domain.Event{}
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Venue, &ev.Date,
			&ev.TotalTickets, &ev.TicketsSold, &ev.CreatedBy, &ev.Image); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}
