package service

import (
	"context"
	"errors"
	"testing"

	"mentorship-service/api"
	"mentorship-service/internal/models"
	"mentorship-service/pkg/response"
)

func TestListNotificationsNewestFirst(t *testing.T) {
	store := newFakeStore()
	subjectID := store.addSubject("Calculus", nil)
	bookingID := store.addBooking("student-1", "mentor-1", subjectID, models.BookingPending)
	service := newTestService(store)

	_, err := service.UpdateBookingStatus(context.Background(), bookingID, &api.BookingStatusRequest{
		Status:      string(models.BookingConfirmed),
		InitiatorID: "mentor-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = service.UpdateBookingStatus(context.Background(), bookingID, &api.BookingStatusRequest{
		Status:      string(models.BookingInProgress),
		InitiatorID: "mentor-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	notifications, err := service.ListNotifications(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(notifications) != 2 {
		t.Fatalf("notifications = %d, want 2", len(notifications))
	}
	if notifications[0].Message != "your mentorship is in progress" {
		t.Errorf("first message = %q, want the most recent one", notifications[0].Message)
	}
}

func TestMarkNotificationRead(t *testing.T) {
	store := newFakeStore()
	subjectID := store.addSubject("Calculus", nil)
	service := newTestService(store)

	_, err := service.CreateBooking(context.Background(), validBookingRequest(subjectID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	id := store.notifications[0].ID

	if err := service.MarkNotificationRead(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.notifications[0].Read {
		t.Error("notification not marked as read")
	}

	// marking again stays read
	if err := service.MarkNotificationRead(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.notifications[0].Read {
		t.Error("read flag reverted")
	}
}

func TestMarkNotificationReadNotFound(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)

	err := service.MarkNotificationRead(context.Background(), "missing")
	if !errors.Is(err, response.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
