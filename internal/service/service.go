package service

import (
	"context"
	"log/slog"

	"mentorship-service/api"
	"mentorship-service/internal/lock"
	"mentorship-service/internal/models"
)

type Service struct {
	store  Store
	locker lock.Locker
	log    *slog.Logger
}

func NewService(store Store, locker lock.Locker, log *slog.Logger) *Service {
	return &Service{store: store, locker: locker, log: log}
}

type Store interface {
	// Bookings
	CreateBooking(ctx context.Context, booking *models.Booking) (string, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, from, to models.BookingStatus, cancelReason *string) error

	// Subjects
	FindSubjectByName(ctx context.Context, graduationID, name string) (*models.Subject, error)
	CreateSubject(ctx context.Context, name string, graduationID *string) (string, error)
	FirstSubjectByGraduation(ctx context.Context, graduationID string) (string, error)
	FirstSubjectAny(ctx context.Context) (string, error)
	GetSubjectsByIDs(ctx context.Context, ids []string) ([]*models.Subject, error)

	// Mentor profiles
	GetMentorProfile(ctx context.Context, userID string) (*models.MentorProfile, error)

	// Mentor subjects
	ReplaceMentorSubjects(ctx context.Context, mentorKey string, subjectIDs []string) error
	ListMentorSubjects(ctx context.Context, mentorKey string) ([]string, error)

	// Notifications
	CreateNotification(ctx context.Context, notification *models.Notification) (string, error)
	ListNotifications(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
}

func toBookingResponse(booking *models.Booking) *api.BookingResponse {
	return &api.BookingResponse{
		ID:           booking.ID,
		StudentID:    booking.StudentID,
		MentorID:     booking.MentorID,
		SubjectID:    booking.SubjectID,
		SubjectName:  booking.SubjectName,
		Date:         booking.Date.Format("2006-01-02"),
		Time:         booking.Time,
		Duration:     booking.Duration,
		Objective:    booking.Objective,
		StudentName:  booking.StudentName,
		StudentEmail: booking.StudentEmail,
		StudentPhone: booking.StudentPhone,
		Status:       string(booking.Status),
		CancelReason: booking.CancelReason,
		CreatedAt:    booking.CreatedAt,
		UpdatedAt:    booking.UpdatedAt,
	}
}

func toSubjectResponses(subjects []*models.Subject) []api.SubjectResponse {
	result := make([]api.SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		result = append(result, api.SubjectResponse{
			ID:           subject.ID,
			Name:         subject.Name,
			GraduationID: subject.GraduationID,
		})
	}

	return result
}
