package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticketflow/internal/domain"
)

type queryService struct {
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	ticketRepo     domain.TicketRepository
	contextTimeout time.Duration
}

// NewQueryService creates a QueryService over the given repositories.
func NewQueryService(
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	ticketRepo domain.TicketRepository,
	timeout time.Duration,
) domain.QueryService {
	return &queryService{
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		ticketRepo:     ticketRepo,
		contextTimeout: timeout,
	}
}

func (s *queryService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *queryService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *queryService) GetTicket(ctx context.Context, eventID, userID string) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ticket, err := s.ticketRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return ticket, nil
}

func (s *queryService) ListAttendees(ctx context.Context, eventID string) ([]*domain.AttendeeTicket, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return []*domain.AttendeeTicket{}, nil
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	tickets, err := s.ticketRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	// Fetch users one by one with a small cache (N+1). Fine at this scale;
	// a joined query can replace it if a persistent store needs one.
	usersByID := make(map[string]*domain.User)
	result := make([]*domain.AttendeeTicket, 0, len(tickets))
	for _, t := range tickets {
		user, ok := usersByID[t.UserID]
		if !ok {
			user, err = s.userRepo.GetByID(ctx, t.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					// User removed out-of-band; skip the entry.
					continue
				}
				return nil, fmt.Errorf("get user for ticket: %w", err)
			}
			usersByID[t.UserID] = user
		}
		result = append(result, &domain.AttendeeTicket{
			Ticket: t,
			User:   user,
			Event:  event,
		})
	}
	return result, nil
}
