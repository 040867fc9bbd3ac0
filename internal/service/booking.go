package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mentorship-service/api"
	"mentorship-service/internal/models"
	"mentorship-service/pkg/response"
)

func (s *Service) CreateBooking(ctx context.Context, req *api.BookingRequest) (*api.BookingResponse, error) {
	const op = "service.CreateBooking"

	if req.StudentID == req.MentorID {
		return nil, fmt.Errorf("%s: %w", op, response.ErrSelfBooking)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid date: %w", op, response.ErrValidation)
	}

	bookingTime, err := time.Parse("15:04", req.Time)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid time: %w", op, response.ErrValidation)
	}

	if req.Duration <= 0 {
		return nil, fmt.Errorf("%s: invalid duration: %w", op, response.ErrValidation)
	}

	subjectID := req.SubjectID
	if subjectID == "" {
		if strings.TrimSpace(req.SubjectName) == "" {
			return nil, fmt.Errorf("%s: subject reference missing: %w", op, response.ErrValidation)
		}

		subjectID, err = s.resolveSubjectID(ctx, req.MentorID, req.SubjectName)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	booking := &models.Booking{
		StudentID:    req.StudentID,
		MentorID:     req.MentorID,
		SubjectID:    subjectID,
		Date:         date,
		Time:         bookingTime.Format("15:04:05"),
		Duration:     req.Duration,
		Objective:    req.Objective,
		StudentName:  req.StudentName,
		StudentEmail: req.StudentEmail,
		StudentPhone: req.StudentPhone,
		Status:       models.BookingPending,
	}

	if name := strings.TrimSpace(req.SubjectName); name != "" {
		booking.SubjectName = &name
	}

	id, err := s.store.CreateBooking(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("%s: create booking: %w", op, err)
	}

	created, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.notifyBookingCreated(ctx, created)

	return toBookingResponse(created), nil
}

func (s *Service) GetBooking(ctx context.Context, id string) (*api.BookingResponse, error) {
	const op = "service.GetBooking"

	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toBookingResponse(booking), nil
}

func (s *Service) UpdateBookingStatus(ctx context.Context, bookingID string, req *api.BookingStatusRequest) (*api.BookingResponse, error) {
	const op = "service.UpdateBookingStatus"

	target := models.BookingStatus(req.Status)
	if !target.Valid() {
		return nil, fmt.Errorf("%s: unknown status %q: %w", op, req.Status, response.ErrValidation)
	}

	var cancelReason *string
	if target == models.BookingCancelled {
		reason := strings.TrimSpace(req.CancelMessage)
		if len([]rune(reason)) < 10 {
			return nil, fmt.Errorf("%s: cancel_message must be at least 10 characters: %w", op, response.ErrValidation)
		}
		cancelReason = &reason
	}

	lockKey := fmt.Sprintf("booking:%s", bookingID)

	locked, err := s.locker.Lock(ctx, lockKey, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("%s: lock error: %w", op, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}
	defer func() {
		_ = s.locker.Unlock(ctx, lockKey)
	}()

	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Same-status requests and re-entry on a cancelled booking are no-ops
	// returning the current state. No notification is emitted either way.
	if booking.Status == target || booking.Status == models.BookingCancelled {
		return toBookingResponse(booking), nil
	}

	if err := transitionAllowed(booking.Status, target); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// The guard re-reads the committed status and the write applies only
	// if the row still holds it, so a concurrent transition loses cleanly.
	err = s.store.UpdateBookingStatus(ctx, bookingID, booking.Status, target, cancelReason)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.notifyTransition(ctx, updated, target, req.InitiatorID)

	return toBookingResponse(updated), nil
}

func transitionAllowed(from, to models.BookingStatus) error {
	switch to {
	case models.BookingConfirmed:
		if from == models.BookingPending {
			return nil
		}
	case models.BookingInProgress:
		if from == models.BookingPending || from == models.BookingConfirmed {
			return nil
		}
	case models.BookingCompleted:
		if from == models.BookingConfirmed || from == models.BookingInProgress {
			return nil
		}
		if from == models.BookingPending {
			return fmt.Errorf("%w: %w", response.ErrNotConfirmed, response.ErrInvalidTransition)
		}
	case models.BookingCancelled:
		if !from.Terminal() {
			return nil
		}
	}

	return fmt.Errorf("transition %s -> %s is not allowed: %w", from, to, response.ErrInvalidTransition)
}
