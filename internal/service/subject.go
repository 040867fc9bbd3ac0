package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"mentorship-service/pkg/response"
	"mentorship-service/pkg/sl"
)

// subjectStep is one strategy in the resolution chain. It returns the
// resolved subject id, whether it resolved one, and a hard error that
// aborts the whole chain.
type subjectStep func(ctx context.Context) (string, bool, error)

// resolveSubjectID maps a free-text subject name to a subject id for a
// booking. Strategies run in order until one resolves: exact match within
// the mentor's program, create under the program, any subject under the
// program, any subject at all. A mentor without a known program skips
// straight to the global fallback.
func (s *Service) resolveSubjectID(ctx context.Context, mentorID, subjectName string) (string, error) {
	const op = "service.resolveSubjectID"

	name := strings.TrimSpace(subjectName)

	var graduationID *string
	if profile, err := s.store.GetMentorProfile(ctx, mentorID); err == nil {
		graduationID = profile.GraduationID
	}

	steps := []subjectStep{
		s.subjectByProgramName(graduationID, name),
		s.subjectCreate(graduationID, name),
		s.subjectAnyInProgram(graduationID),
		s.subjectAnyAtAll(),
	}

	for _, step := range steps {
		id, ok, err := step(ctx)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		if ok {
			return id, nil
		}
	}

	return "", fmt.Errorf("%s: %w", op, response.ErrNoSubjects)
}

func (s *Service) subjectByProgramName(graduationID *string, name string) subjectStep {
	return func(ctx context.Context) (string, bool, error) {
		if graduationID == nil || name == "" {
			return "", false, nil
		}

		subject, err := s.store.FindSubjectByName(ctx, *graduationID, name)
		if err != nil {
			if errors.Is(err, response.ErrNotFound) {
				return "", false, nil
			}

			return "", false, err
		}

		return subject.ID, true, nil
	}
}

func (s *Service) subjectCreate(graduationID *string, name string) subjectStep {
	return func(ctx context.Context) (string, bool, error) {
		if graduationID == nil || name == "" {
			return "", false, nil
		}

		id, err := s.store.CreateSubject(ctx, name, graduationID)
		if err != nil {
			// creation is best-effort, later steps fall back to existing rows
			s.log.Warn("Failed to create subject during resolution",
				slog.String("name", name),
				sl.Err(err),
			)

			return "", false, nil
		}
		if id == "" {
			return "", false, nil
		}

		return id, true, nil
	}
}

func (s *Service) subjectAnyInProgram(graduationID *string) subjectStep {
	return func(ctx context.Context) (string, bool, error) {
		if graduationID == nil {
			return "", false, nil
		}

		id, err := s.store.FirstSubjectByGraduation(ctx, *graduationID)
		if err != nil {
			if errors.Is(err, response.ErrNotFound) {
				return "", false, nil
			}

			return "", false, err
		}

		return id, true, nil
	}
}

func (s *Service) subjectAnyAtAll() subjectStep {
	return func(ctx context.Context) (string, bool, error) {
		id, err := s.store.FirstSubjectAny(ctx)
		if err != nil {
			if errors.Is(err, response.ErrNotFound) {
				return "", false, nil
			}

			return "", false, err
		}

		return id, true, nil
	}
}
