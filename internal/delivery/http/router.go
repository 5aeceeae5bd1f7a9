package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"ticketflow/internal/delivery/http/controllers"
	"ticketflow/internal/delivery/http/middleware"
	"ticketflow/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	ticketController *controllers.TicketController,
	streamController *controllers.StreamController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Events (public reads)
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEvent)
	mux.HandleFunc("GET /events/{eventID}/live", streamController.Live)

	// Tickets and dashboard (authenticated)
	mux.HandleFunc("POST /events/{eventID}/tickets", requireAuth(ticketController.BookTicket))
	mux.HandleFunc("GET /events/{eventID}/tickets/me", requireAuth(ticketController.GetMyTicket))
	mux.HandleFunc("GET /events/{eventID}/attendees", requireAuth(eventController.ListAttendees))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
