package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"visit-scheduler/api"
	"visit-scheduler/pkg/response"
	"visit-scheduler/pkg/sl"
)

type VisitUpdater interface {
	UpdateVisit(ctx context.Context, req *api.VisitUpdateRequest) (*api.VisitResponse, error)
}

type Request struct {
	api.VisitUpdateRequest
}

type Response struct {
	response.Response
	Visit api.VisitResponse `json:"visit,omitempty"`
}

func New(log *slog.Logger, updater VisitUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.visits.update.New"

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

		visit, err := updater.UpdateVisit(r.Context(), &req.VisitUpdateRequest)

		if errors.Is(err, response.ErrMissingField) {
			log.Error("Missing required field", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.MISSING_FIELD), "id is required"))
			return
		}

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("Invalid patch", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid patch"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "visit not found"))
			return
		}

		if errors.Is(err, response.ErrConflict) {
			log.Error("invalid status transition", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.CONFLICT), "status transition not allowed"))
			return
		}

		if err != nil {
			log.Error("Failed to update visit", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to update visit"))
			return
		}

		log.Info("Visit updated", slog.String("visit_id", visit.ID), slog.String("status", visit.Status))

		render.JSON(w, r, Response{
			Visit: *visit,
		})
	}
}
