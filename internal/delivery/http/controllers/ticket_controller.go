package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "ticketflow/internal/delivery/http/helpers"
	"ticketflow/internal/delivery/http/middleware"
	"ticketflow/internal/domain"
)

type TicketController struct {
	Logger    *slog.Logger
	Inventory domain.InventoryService
	Queries   domain.QueryService
}

func NewTicketController(logger *slog.Logger, inventory domain.InventoryService, queries domain.QueryService) *TicketController {
	return &TicketController{
		Logger:    logger,
		Inventory: inventory,
		Queries:   queries,
	}
}

// BookTicket godoc
// @Summary Book a ticket for the current user
// @Description Books one ticket on the event for the authenticated user. Fails with 409 when the event is sold out or the user already holds a ticket.
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 201 {object} helpers.APIResponse "data contains the new Ticket"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: sold_out or already_booked"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/tickets [post]
func (c *TicketController) BookTicket(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}

	ticket, err := c.Inventory.BookTicket(r.Context(), eventID, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrUserNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "user not found")
		case errors.Is(err, domain.ErrSoldOut):
			h.WriteJSONError(w, http.StatusConflict, h.ErrCodeSoldOut, "event is sold out")
		case errors.Is(err, domain.ErrAlreadyBooked):
			h.WriteJSONError(w, http.StatusConflict, h.ErrCodeAlreadyBooked, "you have already booked a ticket for this event")
		default:
			c.Logger.ErrorContext(r.Context(), "book ticket failed", "event_id", eventID, "user_id", userID, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, ticket)
}

// GetMyTicket godoc
// @Summary Get the current user's ticket for an event
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the Ticket"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/tickets/me [get]
func (c *TicketController) GetMyTicket(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}

	ticket, err := c.Queries.GetTicket(r.Context(), eventID, userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "get ticket failed", "event_id", eventID, "user_id", userID, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	if ticket == nil {
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "no ticket for this event")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, ticket)
}
