package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"ticketflow/internal/clock"
	"ticketflow/internal/domain"
)

type inventoryService struct {
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	ticketRepo     domain.TicketRepository
	store          domain.InventoryStore
	broadcaster    domain.EventBroadcaster
	emailService   domain.EmailService
	clk            clock.Clock
	logger         *slog.Logger
	contextTimeout time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewInventoryService creates an InventoryService with the given
// collaborators. emailService may be nil to disable confirmation emails.
func NewInventoryService(
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	ticketRepo domain.TicketRepository,
	store domain.InventoryStore,
	broadcaster domain.EventBroadcaster,
	emailService domain.EmailService,
	clk clock.Clock,
	logger *slog.Logger,
	timeout time.Duration,
) domain.InventoryService {
	return &inventoryService{
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		ticketRepo:     ticketRepo,
		store:          store,
		broadcaster:    broadcaster,
		emailService:   emailService,
		clk:            clk,
		logger:         logger,
		contextTimeout: timeout,
		locks:          make(map[string]*sync.Mutex),
	}
}

// eventLock returns the mutex serializing bookings for one event. Locks are
// created on first use and kept for the service's lifetime; bookings for
// different events proceed in parallel.
func (s *inventoryService) eventLock(eventID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[eventID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[eventID] = l
	}
	return l
}

func (s *inventoryService) BookTicket(ctx context.Context, eventID, userID string) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Serialize check-and-mutate per event: a concurrent booking for the
	// same event must see this one's committed tickets_sold before deciding
	// sold-out or already-booked.
	lock := s.eventLock(eventID)
	lock.Lock()
	defer lock.Unlock()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if event.SoldOut() {
		return nil, domain.ErrSoldOut
	}

	if _, err := s.ticketRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
		return nil, domain.ErrAlreadyBooked
	} else if !errors.Is(err, domain.ErrTicketNotFound) {
		return nil, fmt.Errorf("get ticket: %w", err)
	}

	ticketID := uuid.NewString()
	qr, err := domain.EncodeQRPayload(domain.QRPayload{
		EventID:  eventID,
		UserID:   userID,
		TicketID: ticketID,
	})
	if err != nil {
		return nil, fmt.Errorf("encode qr payload: %w", err)
	}
	ticket := &domain.Ticket{
		ID:        ticketID,
		EventID:   eventID,
		UserID:    userID,
		QRCode:    qr,
		CreatedAt: s.clk.Now(),
	}

	updated, err := s.store.ApplyBooking(ctx, ticket)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound),
			errors.Is(err, domain.ErrSoldOut),
			errors.Is(err, domain.ErrAlreadyBooked):
			return nil, err
		}
		return nil, fmt.Errorf("apply booking: %w", err)
	}

	s.broadcaster.Publish(updated)

	if s.emailService != nil {
		data := &domain.TicketConfirmationEmailData{
			Email:      user.Email,
			Name:       user.Name,
			EventTitle: updated.Title,
			Venue:      updated.Venue,
			Date:       updated.Date.Format(time.RFC1123),
			QRCode:     ticket.QRCode,
		}
		// Best effort: the booking already committed, so an email failure
		// is logged and never surfaced to the caller.
		if err := s.emailService.SendTicketConfirmation(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "ticket confirmation email failed",
				"event_id", eventID, "user_id", userID, "err", err)
		}
	}

	return ticket, nil
}
