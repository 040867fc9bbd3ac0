package service

import (
	"context"
	"errors"
	"testing"

	"mentorship-service/pkg/response"
)

func strptr(s string) *string { return &s }

func TestResolveSubjectMatchesCaseInsensitiveWithinProgram(t *testing.T) {
	store := newFakeStore()
	store.addProfile("mentor-1", strptr("grad-cs"))
	wantID := store.addSubject("Algebra Linear", strptr("grad-cs"))
	store.addSubject("Algebra Linear", strptr("grad-math"))
	service := newTestService(store)

	id, err := service.resolveSubjectID(context.Background(), "mentor-1", "  algebra linear ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != wantID {
		t.Errorf("id = %q, want %q (the subject scoped to the mentor's program)", id, wantID)
	}

	subjectCount := len(store.subjects)
	if subjectCount != 2 {
		t.Errorf("subjects = %d, want 2 (no duplicate created)", subjectCount)
	}
}

func TestResolveSubjectCreatesWhenNoMatchInProgram(t *testing.T) {
	store := newFakeStore()
	store.addProfile("mentor-1", strptr("grad-cs"))
	store.addSubject("Calculus", strptr("grad-cs"))
	service := newTestService(store)

	id, err := service.resolveSubjectID(context.Background(), "mentor-1", "Compilers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	created, ok := store.subjects[id]
	if !ok {
		t.Fatalf("resolved id %q does not exist in the store", id)
	}
	if created.Name != "Compilers" {
		t.Errorf("created subject name = %q", created.Name)
	}
	if created.GraduationID == nil || *created.GraduationID != "grad-cs" {
		t.Errorf("created subject graduation = %v, want grad-cs", created.GraduationID)
	}
}

func TestResolveSubjectCreationFailureFallsBackToProgram(t *testing.T) {
	store := newFakeStore()
	store.addProfile("mentor-1", strptr("grad-cs"))
	wantID := store.addSubject("Calculus", strptr("grad-cs"))
	store.failCreateSubject = true
	service := newTestService(store)

	id, err := service.resolveSubjectID(context.Background(), "mentor-1", "Compilers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != wantID {
		t.Errorf("id = %q, want fallback to %q", id, wantID)
	}
}

func TestResolveSubjectNoProgramFallsBackToAnySubject(t *testing.T) {
	store := newFakeStore()
	wantID := store.addSubject("Calculus", strptr("grad-math"))
	service := newTestService(store)

	id, err := service.resolveSubjectID(context.Background(), "mentor-1", "Outros")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != wantID {
		t.Errorf("id = %q, want %q (any existing subject)", id, wantID)
	}

	if len(store.subjects) != 1 {
		t.Errorf("subjects = %d, want 1 (nothing created without a program)", len(store.subjects))
	}
}

func TestResolveSubjectNoSubjectsConfigured(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)

	_, err := service.resolveSubjectID(context.Background(), "mentor-1", "Outros")
	if !errors.Is(err, response.ErrNoSubjects) {
		t.Fatalf("error = %v, want ErrNoSubjects", err)
	}
}

func TestCreateBookingSurfacesNoSubjectsError(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)

	req := validBookingRequest("")
	req.SubjectName = "Outros"

	_, err := service.CreateBooking(context.Background(), req)
	if !errors.Is(err, response.ErrNoSubjects) {
		t.Fatalf("error = %v, want ErrNoSubjects", err)
	}
	if len(store.bookings) != 0 {
		t.Errorf("bookings = %d, want 0 when the subject cannot be resolved", len(store.bookings))
	}
}

func TestCreateBookingPersistsResolvedSubject(t *testing.T) {
	store := newFakeStore()
	store.addProfile("mentor-1", strptr("grad-cs"))
	wantID := store.addSubject("Algebra", strptr("grad-cs"))
	service := newTestService(store)

	req := validBookingRequest("")
	req.SubjectName = "ALGEBRA"

	booking, err := service.CreateBooking(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.SubjectID != wantID {
		t.Errorf("subject_id = %q, want %q", booking.SubjectID, wantID)
	}
	if booking.SubjectName == nil || *booking.SubjectName != "ALGEBRA" {
		t.Errorf("subject_name = %v, want the caller-supplied name kept", booking.SubjectName)
	}
}
