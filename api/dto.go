package api

import "time"

type BookingRequest struct {
	StudentID    string `json:"student_id"`
	MentorID     string `json:"mentor_id"`
	SubjectID    string `json:"subject_id,omitempty"`
	SubjectName  string `json:"subject_name,omitempty"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Duration     int    `json:"duration"`
	Objective    string `json:"objective"`
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
	StudentPhone string `json:"student_phone"`
}

type BookingStatusRequest struct {
	Status        string `json:"status"`
	CancelMessage string `json:"cancel_message,omitempty"`
	InitiatorID   string `json:"initiator_id"`
}

type BookingResponse struct {
	ID           string     `json:"id"`
	StudentID    string     `json:"student_id"`
	MentorID     string     `json:"mentor_id"`
	SubjectID    string     `json:"subject_id"`
	SubjectName  *string    `json:"subject_name,omitempty"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	Duration     int        `json:"duration"`
	Objective    string     `json:"objective"`
	StudentName  string     `json:"student_name"`
	StudentEmail string     `json:"student_email"`
	StudentPhone string     `json:"student_phone"`
	Status       string     `json:"status"`
	CancelReason *string    `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type MentorSubjectsRequest struct {
	SubjectIDs []string `json:"subject_ids"`
}

type SubjectResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	GraduationID *string `json:"graduation_id,omitempty"`
}

type MentorSubjectsResponse struct {
	MentorKey string            `json:"mentor_key"`
	Subjects  []SubjectResponse `json:"subjects"`
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	BookingID *string   `json:"booking_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
