package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketflow/internal/delivery/http/helpers"
	"ticketflow/internal/delivery/http/middleware"
	"ticketflow/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeInventory struct {
	ticket *domain.Ticket
	err    error

	gotEventID string
	gotUserID  string
}

func (f *fakeInventory) BookTicket(ctx context.Context, eventID, userID string) (*domain.Ticket, error) {
	f.gotEventID = eventID
	f.gotUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.ticket, nil
}

type fakeQueries struct {
	events    []*domain.Event
	event     *domain.Event
	ticket    *domain.Ticket
	attendees []*domain.AttendeeTicket
	err       error
}

func (f *fakeQueries) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	return f.events, f.err
}

func (f *fakeQueries) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	return f.event, f.err
}

func (f *fakeQueries) GetTicket(ctx context.Context, eventID, userID string) (*domain.Ticket, error) {
	return f.ticket, f.err
}

func (f *fakeQueries) ListAttendees(ctx context.Context, eventID string) ([]*domain.AttendeeTicket, error) {
	return f.attendees, f.err
}

func authedRequest(method, target, eventID, userID string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if eventID != "" {
		req.SetPathValue("eventID", eventID)
	}
	if userID != "" {
		req = req.WithContext(middleware.SetUserID(req.Context(), userID))
	}
	return req
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var resp helpers.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestTicketController_BookTicket(t *testing.T) {
	ticket := &domain.Ticket{
		ID:        "tk-1",
		EventID:   "ev-1",
		UserID:    "user-1",
		QRCode:    "payload",
		CreatedAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
	inventory := &fakeInventory{ticket: ticket}
	ctrl := NewTicketController(testLogger, inventory, &fakeQueries{})

	rec := httptest.NewRecorder()
	ctrl.BookTicket(rec, authedRequest(http.MethodPost, "/events/ev-1/tickets", "ev-1", "user-1"))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "ev-1", inventory.gotEventID)
	assert.Equal(t, "user-1", inventory.gotUserID)

	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "tk-1", data["id"])
	assert.Equal(t, "payload", data["qr_code"])
}

func TestTicketController_BookTicketErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "event not found", err: domain.ErrEventNotFound, wantStatus: http.StatusNotFound, wantCode: helpers.ErrCodeNotFound},
		{name: "user not found", err: domain.ErrUserNotFound, wantStatus: http.StatusNotFound, wantCode: helpers.ErrCodeNotFound},
		{name: "sold out", err: domain.ErrSoldOut, wantStatus: http.StatusConflict, wantCode: helpers.ErrCodeSoldOut},
		{name: "already booked", err: domain.ErrAlreadyBooked, wantStatus: http.StatusConflict, wantCode: helpers.ErrCodeAlreadyBooked},
		{name: "unexpected", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: helpers.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewTicketController(testLogger, &fakeInventory{err: tt.err}, &fakeQueries{})

			rec := httptest.NewRecorder()
			ctrl.BookTicket(rec, authedRequest(http.MethodPost, "/events/ev-1/tickets", "ev-1", "user-1"))

			require.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeResponse(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestTicketController_BookTicketUnauthenticated(t *testing.T) {
	ctrl := NewTicketController(testLogger, &fakeInventory{}, &fakeQueries{})

	rec := httptest.NewRecorder()
	ctrl.BookTicket(rec, authedRequest(http.MethodPost, "/events/ev-1/tickets", "ev-1", ""))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, helpers.ErrCodeUnauthorized, resp.Error.Code)
}

func TestTicketController_GetMyTicket(t *testing.T) {
	ticket := &domain.Ticket{ID: "tk-1", EventID: "ev-1", UserID: "user-1", QRCode: "payload"}
	ctrl := NewTicketController(testLogger, &fakeInventory{}, &fakeQueries{ticket: ticket})

	rec := httptest.NewRecorder()
	ctrl.GetMyTicket(rec, authedRequest(http.MethodGet, "/events/ev-1/tickets/me", "ev-1", "user-1"))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "tk-1", data["id"])
}

func TestTicketController_GetMyTicketNotFound(t *testing.T) {
	ctrl := NewTicketController(testLogger, &fakeInventory{}, &fakeQueries{})

	rec := httptest.NewRecorder()
	ctrl.GetMyTicket(rec, authedRequest(http.MethodGet, "/events/ev-1/tickets/me", "ev-1", "user-1"))

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, helpers.ErrCodeNotFound, resp.Error.Code)
}
