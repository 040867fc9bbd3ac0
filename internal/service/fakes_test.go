package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"mentorship-service/internal/models"
	"mentorship-service/pkg/response"
)

type fakeStore struct {
	bookings      map[string]*models.Booking
	subjects      map[string]*models.Subject
	profiles      map[string]*models.MentorProfile
	associations  map[string][]string
	notifications []*models.Notification
	validKeys     map[string]bool
	nextID        int

	failCreateSubject      bool
	failCreateNotification bool
	conflictOnUpdate       bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bookings:     map[string]*models.Booking{},
		subjects:     map[string]*models.Subject{},
		profiles:     map[string]*models.MentorProfile{},
		associations: map[string][]string{},
		validKeys:    map[string]bool{},
	}
}

func (f *fakeStore) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeStore) addSubject(name string, graduationID *string) string {
	id := f.newID("subject")
	f.subjects[id] = &models.Subject{ID: id, Name: name, GraduationID: graduationID}
	return id
}

func (f *fakeStore) addProfile(userID string, graduationID *string) string {
	id := f.newID("profile")
	f.profiles[userID] = &models.MentorProfile{ID: id, UserID: userID, GraduationID: graduationID}
	return id
}

func (f *fakeStore) addBooking(studentID, mentorID, subjectID string, status models.BookingStatus) string {
	id := f.newID("booking")
	f.bookings[id] = &models.Booking{
		ID:        id,
		StudentID: studentID,
		MentorID:  mentorID,
		SubjectID: subjectID,
		Date:      time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		Time:      "14:00:00",
		Duration:  60,
		Status:    status,
	}
	return id
}

// Bookings

func (f *fakeStore) CreateBooking(_ context.Context, booking *models.Booking) (string, error) {
	id := f.newID("booking")
	stored := *booking
	stored.ID = id
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.bookings[id] = &stored
	return id, nil
}

func (f *fakeStore) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, response.ErrNotFound
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeStore) UpdateBookingStatus(_ context.Context, id string, from, to models.BookingStatus, cancelReason *string) error {
	booking, ok := f.bookings[id]
	if !ok {
		return response.ErrNotFound
	}
	if f.conflictOnUpdate || booking.Status != from {
		return response.ErrConflict
	}
	booking.Status = to
	if cancelReason != nil {
		booking.CancelReason = cancelReason
	}
	booking.UpdatedAt = time.Now()
	return nil
}

// Subjects

func (f *fakeStore) FindSubjectByName(_ context.Context, graduationID, name string) (*models.Subject, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, subject := range f.subjects {
		if subject.GraduationID == nil || *subject.GraduationID != graduationID {
			continue
		}
		if strings.ToLower(strings.TrimSpace(subject.Name)) == want {
			copied := *subject
			return &copied, nil
		}
	}
	return nil, response.ErrNotFound
}

func (f *fakeStore) CreateSubject(_ context.Context, name string, graduationID *string) (string, error) {
	if f.failCreateSubject {
		return "", errors.New("insert failed")
	}
	return f.addSubject(name, graduationID), nil
}

func (f *fakeStore) sortedSubjects() []*models.Subject {
	subjects := make([]*models.Subject, 0, len(f.subjects))
	for _, subject := range f.subjects {
		subjects = append(subjects, subject)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].Name < subjects[j].Name })
	return subjects
}

func (f *fakeStore) FirstSubjectByGraduation(_ context.Context, graduationID string) (string, error) {
	for _, subject := range f.sortedSubjects() {
		if subject.GraduationID != nil && *subject.GraduationID == graduationID {
			return subject.ID, nil
		}
	}
	return "", response.ErrNotFound
}

func (f *fakeStore) FirstSubjectAny(_ context.Context) (string, error) {
	subjects := f.sortedSubjects()
	if len(subjects) == 0 {
		return "", response.ErrNotFound
	}
	return subjects[0].ID, nil
}

func (f *fakeStore) GetSubjectsByIDs(_ context.Context, ids []string) ([]*models.Subject, error) {
	var result []*models.Subject
	for _, subject := range f.sortedSubjects() {
		for _, id := range ids {
			if subject.ID == id {
				copied := *subject
				result = append(result, &copied)
				break
			}
		}
	}
	return result, nil
}

// Mentor profiles

func (f *fakeStore) GetMentorProfile(_ context.Context, userID string) (*models.MentorProfile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, response.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

// Mentor subjects

func (f *fakeStore) ReplaceMentorSubjects(_ context.Context, mentorKey string, subjectIDs []string) error {
	if !f.validKeys[mentorKey] {
		return fmt.Errorf("insert: %w", response.ErrNotFound)
	}
	f.associations[mentorKey] = append([]string(nil), subjectIDs...)
	return nil
}

func (f *fakeStore) ListMentorSubjects(_ context.Context, mentorKey string) ([]string, error) {
	return f.associations[mentorKey], nil
}

// Notifications

func (f *fakeStore) CreateNotification(_ context.Context, notification *models.Notification) (string, error) {
	if f.failCreateNotification {
		return "", errors.New("insert failed")
	}
	id := f.newID("notification")
	stored := *notification
	stored.ID = id
	stored.CreatedAt = time.Now()
	f.notifications = append(f.notifications, &stored)
	return id, nil
}

func (f *fakeStore) ListNotifications(_ context.Context, userID string) ([]*models.Notification, error) {
	var result []*models.Notification
	for i := len(f.notifications) - 1; i >= 0; i-- {
		if f.notifications[i].UserID == userID {
			copied := *f.notifications[i]
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeStore) MarkNotificationRead(_ context.Context, id string) error {
	for _, notification := range f.notifications {
		if notification.ID == id {
			notification.Read = true
			return nil
		}
	}
	return response.ErrNotFound
}

var _ Store = (*fakeStore)(nil)

type fakeLocker struct {
	busy bool
}

func (f *fakeLocker) Lock(_ context.Context, _ string, _ time.Duration) (bool, error) {
	return !f.busy, nil
}

func (f *fakeLocker) Unlock(_ context.Context, _ string) error {
	return nil
}

func newTestService(store *fakeStore) *Service {
	return newTestServiceWithLocker(store, &fakeLocker{})
}

func newTestServiceWithLocker(store *fakeStore, locker *fakeLocker) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, locker, log)
}
