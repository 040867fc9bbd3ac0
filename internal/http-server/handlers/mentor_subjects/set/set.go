package set

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"mentorship-service/api"
	"mentorship-service/pkg/response"
	"mentorship-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type MentorSubjectsReplacer interface {
	ReplaceMentorSubjects(ctx context.Context, mentorID string, subjectIDs []string) (*api.MentorSubjectsResponse, error)
}

type Request struct {
	api.MentorSubjectsRequest
}

type Response struct {
	response.Response
	MentorSubjects api.MentorSubjectsResponse `json:"mentor_subjects,omitempty"`
}

func New(log *slog.Logger, replacer MentorSubjectsReplacer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.mentor_subjects.set.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		mentorID := chi.URLParam(r, "mentorId")
		if mentorID == "" {
			log.Error("mentorId is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "mentorId is required"))
			return
		}

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		log.Info("Request body decoded", slog.Any("request", req))

		mentorSubjects, err := replacer.ReplaceMentorSubjects(r.Context(), mentorID, req.SubjectIDs)

		if errors.Is(err, response.ErrMentorKeyUnresolved) {
			log.Error("no mentor key candidate worked", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(string(response.MENTOR_KEY), "could not resolve a mentor key for the association"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to replace mentor subjects", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to replace mentor subjects"))
			return
		}

		log.Info("Mentor subjects replaced", slog.Any("mentor_subjects", mentorSubjects))
		responseOK(w, r, mentorSubjects)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, mentorSubjects *api.MentorSubjectsResponse) {
	render.JSON(w, r, Response{
		MentorSubjects: *mentorSubjects,
	})
}
