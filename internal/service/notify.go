package service

import (
	"context"
	"fmt"
	"log/slog"

	"mentorship-service/internal/models"
	"mentorship-service/pkg/sl"
)

// Notification dispatch is best-effort: a failed write is logged per
// recipient and never propagated, so the booking update it follows is
// not affected.

func (s *Service) notifyBookingCreated(ctx context.Context, booking *models.Booking) {
	s.createNotification(ctx, booking.MentorID, "new mentorship request", booking.ID)
}

func (s *Service) notifyTransition(ctx context.Context, booking *models.Booking, to models.BookingStatus, initiatorID string) {
	switch to {
	case models.BookingConfirmed:
		s.createNotification(ctx, booking.StudentID, "your mentorship was confirmed", booking.ID)
	case models.BookingInProgress:
		s.createNotification(ctx, booking.StudentID, "your mentorship is in progress", booking.ID)
		if booking.MentorID != booking.StudentID {
			s.createNotification(ctx, booking.MentorID, "your mentorship is in progress", booking.ID)
		}
	case models.BookingCompleted:
		s.createNotification(ctx, booking.StudentID, "your mentorship was completed, leave a rating for your mentor", booking.ID)
		if booking.MentorID != booking.StudentID {
			s.createNotification(ctx, booking.MentorID, "your mentorship was completed", booking.ID)
		}
	case models.BookingCancelled:
		message := "your mentorship was cancelled"
		if booking.CancelReason != nil && *booking.CancelReason != "" {
			message = fmt.Sprintf("%s: %s", message, *booking.CancelReason)
		}
		s.createNotification(ctx, counterpart(booking, initiatorID), message, booking.ID)
	default:
		s.createNotification(ctx, counterpart(booking, initiatorID),
			fmt.Sprintf("your mentorship status changed to %s", to), booking.ID)
	}
}

// counterpart returns the party that did not initiate the change.
func counterpart(booking *models.Booking, initiatorID string) string {
	if initiatorID == booking.StudentID {
		return booking.MentorID
	}

	return booking.StudentID
}

func (s *Service) createNotification(ctx context.Context, userID, message, bookingID string) {
	notification := &models.Notification{
		UserID:    userID,
		Message:   message,
		BookingID: &bookingID,
	}

	if _, err := s.store.CreateNotification(ctx, notification); err != nil {
		s.log.Error("Failed to create notification",
			slog.String("user_id", userID),
			slog.String("booking_id", bookingID),
			sl.Err(err),
		)
	}
}
