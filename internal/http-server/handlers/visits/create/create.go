package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"visit-scheduler/api"
	"visit-scheduler/internal/http-server/middleware/auth"
	"visit-scheduler/pkg/response"
	"visit-scheduler/pkg/sl"
)

type VisitCreator interface {
	CreateVisit(ctx context.Context, req *api.VisitCreateRequest, principalID string) (*api.VisitResponse, error)
}

type Request struct {
	api.VisitCreateRequest
}

type Response struct {
	response.Response
	Visit api.VisitResponse `json:"visit,omitempty"`
}

func New(log *slog.Logger, creator VisitCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.visits.create.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		log.Info("Request body decoded", slog.Any("request", req))

		principalID := auth.PrincipalID(r.Context())

		visit, err := creator.CreateVisit(r.Context(), &req.VisitCreateRequest, principalID)

		if errors.Is(err, response.ErrMissingField) {
			log.Error("Missing required field", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.MISSING_FIELD), "participantId, studyVisitId and scheduledDate are required"))
			return
		}

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("Invalid request", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid request"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if errors.Is(err, response.ErrConflict) {
			log.Error("booking conflict", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.CONFLICT), "an active visit already exists for this participant and study visit"))
			return
		}

		if errors.Is(err, response.ErrLocked) {
			log.Error("resource is locked")
			w.WriteHeader(http.StatusLocked)
			render.JSON(w, r, response.Error(string(response.LOCKED), "resource is locked"))
			return
		}

		if err != nil {
			log.Error("Failed to create visit", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create visit"))
			return
		}

		log.Info("Visit created", slog.String("visit_id", visit.ID))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{
			Visit: *visit,
		})
	}
}
