package controllers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	h "ticketflow/internal/delivery/http/helpers"
	"ticketflow/internal/domain"
)

// streamBuffer bounds the per-client queue between the hub's synchronous
// fan-out and the SSE writer. A client that cannot drain it loses updates
// rather than blocking bookings.
const streamBuffer = 32

type StreamController struct {
	Logger      *slog.Logger
	Queries     domain.QueryService
	Broadcaster domain.EventBroadcaster
}

func NewStreamController(logger *slog.Logger, queries domain.QueryService, broadcaster domain.EventBroadcaster) *StreamController {
	return &StreamController{
		Logger:      logger,
		Queries:     queries,
		Broadcaster: broadcaster,
	}
}

// Live godoc
// @Summary Stream live updates for an event
// @Description Server-Sent Events stream. Sends the current event snapshot on connect, then one "event" message per committed booking. The subscription is released when the client disconnects.
// @Tags events
// @Produce text/event-stream
// @Param eventID path string true "Event ID"
// @Success 200 {string} string "SSE stream of Event snapshots"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/live [get]
func (c *StreamController) Live(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "streaming unsupported")
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

	updates := make(chan *domain.Event, streamBuffer)
	unsubscribe := c.Broadcaster.Subscribe(eventID, func(ev *domain.Event) {
		select {
		case updates <- ev:
		default:
			c.Logger.Warn("slow live stream client, dropping update", "event_id", eventID)
		}
	})
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeSSE(w, event); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-updates:
			if err := writeSSE(w, ev); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev *domain.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: event\ndata: %s\n\n", payload)
	return err
}
