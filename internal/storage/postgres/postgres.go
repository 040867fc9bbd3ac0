package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"mentorship-service/internal/models"
	"mentorship-service/pkg/response"

	"github.com/lib/pq"
)

type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// #### bookings ####

func (s *Storage) CreateBooking(ctx context.Context, booking *models.Booking) (string, error) {
	const op = "storage.postgres.CreateBooking"

	var id string

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO bookings
		(student_id, mentor_id, subject_id, subject_name, booking_date, booking_time,
		duration_minutes, objective, student_name, student_email, student_phone, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING booking_id`,
		booking.StudentID,
		booking.MentorID,
		booking.SubjectID,
		booking.SubjectName,
		booking.Date,
		booking.Time,
		booking.Duration,
		booking.Objective,
		booking.StudentName,
		booking.StudentEmail,
		booking.StudentPhone,
		string(booking.Status),
	).Scan(&id)

	if err != nil {
		sqlErr, ok := err.(*pq.Error)
		if ok && sqlErr.Code == "23503" {
			return "", fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	const op = "storage.postgres.GetBooking"

	var booking models.Booking
	var status string

	err := s.db.QueryRowContext(ctx,
		`SELECT student_id, mentor_id, subject_id, subject_name, booking_date, booking_time,
		duration_minutes, objective, student_name, student_email, student_phone,
		status, cancel_reason, created_at, updated_at
		FROM bookings WHERE booking_id=$1`, id).
		Scan(
			&booking.StudentID,
			&booking.MentorID,
			&booking.SubjectID,
			&booking.SubjectName,
			&booking.Date,
			&booking.Time,
			&booking.Duration,
			&booking.Objective,
			&booking.StudentName,
			&booking.StudentEmail,
			&booking.StudentPhone,
			&status,
			&booking.CancelReason,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	booking.ID = id
	booking.Status = models.BookingStatus(status)

	return &booking, nil
}

// UpdateBookingStatus applies the transition only if the row still holds
// the expected current status. Zero affected rows means either a missing
// booking or a lost race with a concurrent transition.
func (s *Storage) UpdateBookingStatus(ctx context.Context, id string, from, to models.BookingStatus, cancelReason *string) error {
	const op = "storage.postgres.UpdateBookingStatus"

	res, err := s.db.ExecContext(ctx,
		`UPDATE bookings
		SET status=$1, cancel_reason=COALESCE($2, cancel_reason), updated_at=now()
		WHERE booking_id=$3 AND status=$4`,
		string(to), cancelReason, id, string(from),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		var current string
		err := s.db.QueryRowContext(ctx, `SELECT status FROM bookings WHERE booking_id=$1`, id).Scan(&current)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		return fmt.Errorf("%s: status changed concurrently to %s: %w", op, current, response.ErrConflict)
	}

	return nil
}

// #### subjects ####

func (s *Storage) FindSubjectByName(ctx context.Context, graduationID, name string) (*models.Subject, error) {
	const op = "storage.postgres.FindSubjectByName"

	var subject models.Subject

	err := s.db.QueryRowContext(ctx,
		`SELECT subject_id, name, graduation_id FROM subjects
		WHERE graduation_id=$1 AND LOWER(TRIM(name))=LOWER(TRIM($2))
		ORDER BY name LIMIT 1`,
		graduationID, name).
		Scan(&subject.ID, &subject.Name, &subject.GraduationID)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &subject, nil
}

func (s *Storage) CreateSubject(ctx context.Context, name string, graduationID *string) (string, error) {
	const op = "storage.postgres.CreateSubject"

	var id string

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO subjects (name, graduation_id) VALUES ($1, $2) RETURNING subject_id`,
		name, graduationID).Scan(&id)

	if err != nil {
		sqlErr, ok := err.(*pq.Error)
		if ok && sqlErr.Code == "23503" {
			return "", fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) FirstSubjectByGraduation(ctx context.Context, graduationID string) (string, error) {
	const op = "storage.postgres.FirstSubjectByGraduation"

	var id string

	err := s.db.QueryRowContext(ctx,
		`SELECT subject_id FROM subjects WHERE graduation_id=$1 ORDER BY name LIMIT 1`,
		graduationID).Scan(&id)

	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) FirstSubjectAny(ctx context.Context) (string, error) {
	const op = "storage.postgres.FirstSubjectAny"

	var id string

	err := s.db.QueryRowContext(ctx,
		`SELECT subject_id FROM subjects ORDER BY name LIMIT 1`).Scan(&id)

	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) GetSubjectsByIDs(ctx context.Context, ids []string) ([]*models.Subject, error) {
	const op = "storage.postgres.GetSubjectsByIDs"

	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT subject_id, name, graduation_id FROM subjects
		WHERE subject_id = ANY($1) ORDER BY name`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var subjects []*models.Subject

	for rows.Next() {
		var subject models.Subject

		err := rows.Scan(&subject.ID, &subject.Name, &subject.GraduationID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		subjects = append(subjects, &subject)
	}

	return subjects, nil
}

// #### mentor profiles ####

func (s *Storage) GetMentorProfile(ctx context.Context, userID string) (*models.MentorProfile, error) {
	const op = "storage.postgres.GetMentorProfile"

	var profile models.MentorProfile

	err := s.db.QueryRowContext(ctx,
		`SELECT profile_id, graduation_id FROM mentor_profiles WHERE user_id=$1`,
		userID).Scan(&profile.ID, &profile.GraduationID)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	profile.UserID = userID

	return &profile, nil
}

// #### mentor subjects ####

// ReplaceMentorSubjects swaps the full association set for one mentor key.
// The delete and the bulk insert run in one transaction so a failed key
// attempt leaves no partial state behind.
func (s *Storage) ReplaceMentorSubjects(ctx context.Context, mentorKey string, subjectIDs []string) error {
	const op = "storage.postgres.ReplaceMentorSubjects"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `DELETE FROM mentor_subjects WHERE mentor_key=$1`, mentorKey)
	if err != nil {
		return fmt.Errorf("%s: delete: %w", op, err)
	}

	if len(subjectIDs) > 0 {
		placeholders := make([]string, 0, len(subjectIDs))
		args := make([]any, 0, len(subjectIDs)+1)
		args = append(args, mentorKey)

		for i, subjectID := range subjectIDs {
			placeholders = append(placeholders, fmt.Sprintf("($1, $%d)", i+2))
			args = append(args, subjectID)
		}

		query := fmt.Sprintf(`
			INSERT INTO mentor_subjects (mentor_key, subject_id)
			VALUES %s
			ON CONFLICT DO NOTHING;
			`,
			strings.Join(placeholders, ","),
		)

		_, err = tx.ExecContext(ctx, query, args...)
		if err != nil {
			sqlErr, ok := err.(*pq.Error)
			if ok && sqlErr.Code == "23503" {
				return fmt.Errorf("%s: insert: %w", op, response.ErrNotFound)
			}

			return fmt.Errorf("%s: insert: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

func (s *Storage) ListMentorSubjects(ctx context.Context, mentorKey string) ([]string, error) {
	const op = "storage.postgres.ListMentorSubjects"

	rows, err := s.db.QueryContext(ctx,
		`SELECT subject_id FROM mentor_subjects WHERE mentor_key=$1`, mentorKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var subjectIDs []string
	var subjectID string

	for rows.Next() {
		err := rows.Scan(&subjectID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		subjectIDs = append(subjectIDs, subjectID)
	}

	return subjectIDs, nil
}

// #### notifications ####

func (s *Storage) CreateNotification(ctx context.Context, notification *models.Notification) (string, error) {
	const op = "storage.postgres.CreateNotification"

	var id string

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO notifications (user_id, message, booking_id)
		VALUES ($1, $2, $3) RETURNING notification_id`,
		notification.UserID,
		notification.Message,
		notification.BookingID,
	).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) ListNotifications(ctx context.Context, userID string) ([]*models.Notification, error) {
	const op = "storage.postgres.ListNotifications"

	rows, err := s.db.QueryContext(ctx,
		`SELECT notification_id, message, booking_id, read, created_at
		FROM notifications WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var notifications []*models.Notification

	for rows.Next() {
		var notification models.Notification

		err := rows.Scan(
			&notification.ID,
			&notification.Message,
			&notification.BookingID,
			&notification.Read,
			&notification.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		notification.UserID = userID

		notifications = append(notifications, &notification)
	}

	return notifications, nil
}

func (s *Storage) MarkNotificationRead(ctx context.Context, id string) error {
	const op = "storage.postgres.MarkNotificationRead"

	res, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET read=TRUE WHERE notification_id=$1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}
