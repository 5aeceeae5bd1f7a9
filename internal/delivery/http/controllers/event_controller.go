package controllers

import (
	"log/slog"
	"net/http"

	h "ticketflow/internal/delivery/http/helpers"
	"ticketflow/internal/delivery/http/middleware"
	"ticketflow/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Queries domain.QueryService
}

func NewEventController(logger *slog.Logger, queries domain.QueryService) *EventController {
	return &EventController{
		Logger:  logger,
		Queries: queries,
	}
}

// ListEvents godoc
// @Summary List all events
// @Description Returns every event in store order with current sold counts.
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains []Event"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Queries.ListEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "list events failed", "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get one event
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains Event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Queries.GetEvent(r.Context(), eventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "get event failed", "event_id", eventID, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	if event == nil {
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListAttendees godoc
// @Summary List attendees for an event
// @Description Returns the event's tickets in creation order, joined with user and event. Only the event's organizer may call this.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains []AttendeeTicket"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees [get]
func (c *EventController) ListAttendees(w http.ResponseWriter, r *http.Request) {
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

	event, err := c.Queries.GetEvent(r.Context(), eventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "get event failed", "event_id", eventID, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	if event == nil {
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
		return
	}
	if event.CreatedBy != userID {
		h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "only the organizer may view attendees")
		return
	}

	attendees, err := c.Queries.ListAttendees(r.Context(), eventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "list attendees failed", "event_id", eventID, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, attendees)
}
