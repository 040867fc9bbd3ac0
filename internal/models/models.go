package models

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in-progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Terminal statuses accept no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

type Booking struct {
	ID           string        `db:"booking_id"`
	StudentID    string        `db:"student_id"`
	MentorID     string        `db:"mentor_id"`
	SubjectID    string        `db:"subject_id"`
	SubjectName  *string       `db:"subject_name"`
	Date         time.Time     `db:"booking_date"`
	Time         string        `db:"booking_time"`
	Duration     int           `db:"duration_minutes"`
	Objective    string        `db:"objective"`
	StudentName  string        `db:"student_name"`
	StudentEmail string        `db:"student_email"`
	StudentPhone string        `db:"student_phone"`
	Status       BookingStatus `db:"status"`
	CancelReason *string       `db:"cancel_reason"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

type Subject struct {
	ID           string  `db:"subject_id"`
	Name         string  `db:"name"`
	GraduationID *string `db:"graduation_id"`
}

// MentorSubject links a mentor key to a subject. The mentor key may
// reference either the mentor_profiles or the users table depending on
// which schema version created the row.
type MentorSubject struct {
	MentorKey string `db:"mentor_key"`
	SubjectID string `db:"subject_id"`
}

// MentorProfile is a read-only projection of the profile service data.
type MentorProfile struct {
	ID           string  `db:"profile_id"`
	UserID       string  `db:"user_id"`
	GraduationID *string `db:"graduation_id"`
}

type Notification struct {
	ID        string    `db:"notification_id"`
	UserID    string    `db:"user_id"`
	Message   string    `db:"message"`
	BookingID *string   `db:"booking_id"`
	Read      bool      `db:"read"`
	CreatedAt time.Time `db:"created_at"`
}
