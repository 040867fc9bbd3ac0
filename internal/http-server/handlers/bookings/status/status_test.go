package status

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mentorship-service/api"
	"mentorship-service/pkg/response"

	"github.com/go-chi/chi/v5"
)

type stubUpdater struct {
	called bool
	resp   *api.BookingResponse
	err    error
}

func (s *stubUpdater) UpdateBookingStatus(_ context.Context, _ string, _ *api.BookingStatusRequest) (*api.BookingResponse, error) {
	s.called = true
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func perform(t *testing.T, updater *stubUpdater, body string) *httptest.ResponseRecorder {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := chi.NewRouter()
	router.Put("/bookings/{id}", New(log, updater))

	req := httptest.NewRequest(http.MethodPut, "/bookings/booking-1", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	return rec
}

func TestStatusHandlerShortCancelMessage(t *testing.T) {
	updater := &stubUpdater{}

	rec := perform(t, updater, `{"status":"cancelled","cancel_message":"too short","initiator_id":"mentor-1"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if updater.called {
		t.Error("service was called despite failed validation")
	}

	var resp response.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != string(response.VALIDATION) {
		t.Errorf("code = %q, want %q", resp.Code, response.VALIDATION)
	}
}

func TestStatusHandlerMissingInitiator(t *testing.T) {
	updater := &stubUpdater{}

	rec := perform(t, updater, `{"status":"confirmed"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if updater.called {
		t.Error("service was called despite failed validation")
	}
}

func TestStatusHandlerInvalidTransition(t *testing.T) {
	updater := &stubUpdater{err: response.ErrNotConfirmed}

	rec := perform(t, updater, `{"status":"completed","initiator_id":"mentor-1"}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}

	var resp response.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != string(response.INVALID_TRANSITION) {
		t.Errorf("code = %q, want %q", resp.Code, response.INVALID_TRANSITION)
	}
	if !strings.Contains(resp.Message, "not confirmed") {
		t.Errorf("message = %q, want the not-confirmed explanation", resp.Message)
	}
}

func TestStatusHandlerSuccess(t *testing.T) {
	updater := &stubUpdater{resp: &api.BookingResponse{ID: "booking-1", Status: "confirmed"}}

	rec := perform(t, updater, `{"status":"confirmed","initiator_id":"mentor-1"}`)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Booking.Status != "confirmed" {
		t.Errorf("booking status = %q, want confirmed", resp.Booking.Status)
	}
}
