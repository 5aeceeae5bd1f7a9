package memory

import (
	"context"
	"fmt"
	"time"

	"ticketflow/internal/domain"
)

// Seed loads the demo users and events used in development and in tests.
// The organizer owns every seeded event; the attendee starts with no tickets.
func Seed(ctx context.Context, s *Store) error {
	users := []*domain.User{
		{
			ID:     "user-organizer",
			Email:  "organizer@example.com",
			Name:   "Alex Organizer",
			Avatar: "https://i.pravatar.cc/150?u=alex",
		},
		{
			ID:     "user-attendee",
			Email:  "attendee@example.com",
			Name:   "Sam Attendee",
			Avatar: "https://i.pravatar.cc/150?u=sam",
		},
	}
	for _, u := range users {
		if err := s.Users().Create(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	now := time.Now().UTC()
	events := []*domain.Event{
		{
			ID:           "evt-gopherconf",
			Title:        "GopherConf 2026",
			Description:  "Two days of talks, workshops, and hallway-track networking for Go developers.",
			Venue:        "Online",
			Date:         now.Add(10 * 24 * time.Hour),
			TotalTickets: 500,
			TicketsSold:  120,
			CreatedBy:    "user-organizer",
			Image:        "https://picsum.photos/seed/gopherconf/1200/800",
		},
		{
			ID:           "evt-css-workshop",
			Title:        "CSS Architecture Workshop",
			Description:  "A hands-on workshop on maintainable styling, from fundamentals to production patterns.",
			Venue:        "Community Hub, San Francisco",
			Date:         now.Add(25 * 24 * time.Hour),
			TotalTickets: 50,
			TicketsSold:  25,
			CreatedBy:    "user-organizer",
			Image:        "https://picsum.photos/seed/cssarch/1200/800",
		},
		{
			ID:           "evt-toolingconf",
			Title:        "ToolingConf",
			Description:  "Explore the future of developer tooling with maintainers and industry leaders.",
			Venue:        "Virtual Event",
			Date:         now.Add(40 * 24 * time.Hour),
			TotalTickets: 1000,
			TicketsSold:  850,
			CreatedBy:    "user-organizer",
			Image:        "https://picsum.photos/seed/tooling/1200/800",
		},
	}
	for _, ev := range events {
		if err := s.Events().Create(ctx, ev); err != nil {
			return fmt.Errorf("seed event %s: %w", ev.Title, err)
		}
	}
	return nil
}
