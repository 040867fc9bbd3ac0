package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"mentorship-service/api"
	"mentorship-service/pkg/response"
	"mentorship-service/pkg/sl"
)

// mentorKeyCandidates builds the ordered list of keys that may own rows in
// mentor_subjects. Depending on which schema version wrote the foreign key,
// the association references either the mentor profile or the user record,
// so the profile-derived key is tried first and the raw caller id second.
func (s *Service) mentorKeyCandidates(ctx context.Context, mentorID string) []string {
	var candidates []string

	profile, err := s.store.GetMentorProfile(ctx, mentorID)
	if err == nil && profile.ID != "" {
		candidates = append(candidates, profile.ID)
	}

	if mentorID != "" && (profile == nil || profile.ID != mentorID) {
		candidates = append(candidates, mentorID)
	}

	return candidates
}

// applyWithMentorKey attempts apply with each candidate key in order and
// returns the first key that succeeds. Attempts are strictly sequential: a
// failed attempt must be fully rolled back (apply is an all-or-nothing unit)
// before the next key is tried.
func (s *Service) applyWithMentorKey(ctx context.Context, candidates []string, apply func(ctx context.Context, key string) error) (string, error) {
	const op = "service.applyWithMentorKey"

	if len(candidates) == 0 {
		return "", fmt.Errorf("%s: %w", op, response.ErrMentorKeyUnresolved)
	}

	var lastErr error

	for _, key := range candidates {
		err := apply(ctx, key)
		if err != nil {
			s.log.Warn("Mentor key attempt failed",
				slog.String("mentor_key", key),
				sl.Err(err),
			)
			lastErr = err

			continue
		}

		return key, nil
	}

	return "", fmt.Errorf("%s: tried keys [%s]: %v: %w",
		op, strings.Join(candidates, ", "), lastErr, response.ErrMentorKeyUnresolved)
}

func (s *Service) ReplaceMentorSubjects(ctx context.Context, mentorID string, subjectIDs []string) (*api.MentorSubjectsResponse, error) {
	const op = "service.ReplaceMentorSubjects"

	candidates := s.mentorKeyCandidates(ctx, mentorID)

	key, err := s.applyWithMentorKey(ctx, candidates, func(ctx context.Context, key string) error {
		return s.store.ReplaceMentorSubjects(ctx, key, subjectIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	subjects, err := s.store.GetSubjectsByIDs(ctx, subjectIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.MentorSubjectsResponse{
		MentorKey: key,
		Subjects:  toSubjectResponses(subjects),
	}, nil
}

func (s *Service) GetMentorSubjects(ctx context.Context, mentorID string) (*api.MentorSubjectsResponse, error) {
	const op = "service.GetMentorSubjects"

	candidates := s.mentorKeyCandidates(ctx, mentorID)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%s: %w", op, response.ErrMentorKeyUnresolved)
	}

	var key string
	var subjectIDs []string
	var lastErr error

	for _, candidate := range candidates {
		ids, err := s.store.ListMentorSubjects(ctx, candidate)
		if err != nil {
			lastErr = err
			continue
		}

		if key == "" {
			key = candidate
			subjectIDs = ids
		}

		if len(ids) > 0 {
			key = candidate
			subjectIDs = ids
			break
		}
	}

	if key == "" {
		return nil, fmt.Errorf("%s: tried keys [%s]: %w", op, strings.Join(candidates, ", "), lastErr)
	}

	subjects, err := s.store.GetSubjectsByIDs(ctx, subjectIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.MentorSubjectsResponse{
		MentorKey: key,
		Subjects:  toSubjectResponses(subjects),
	}, nil
}
