package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"visit-scheduler/api"
	"visit-scheduler/pkg/response"
	"visit-scheduler/pkg/sl"
)

type TimeOffUpdater interface {
	UpdateTimeOff(ctx context.Context, id string, req *api.TimeOffRequestBody) (*api.TimeOffResponse, error)
}

type Request struct {
	api.TimeOffRequestBody
}

type Response struct {
	response.Response
	TimeOff api.TimeOffResponse `json:"time_off,omitempty"`
}

func New(log *slog.Logger, updater TimeOffUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.time_off.update.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		timeOff, err := updater.UpdateTimeOff(r.Context(), id, &req.TimeOffRequestBody)

		if errors.Is(err, response.ErrMissingField) || errors.Is(err, response.ErrBadRequest) {
			log.Error("Invalid time-off request", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid time-off request"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to update time-off request", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to update time-off request"))
			return
		}

		log.Info("Time-off request updated", slog.String("time_off_id", timeOff.ID))

		render.JSON(w, r, Response{
			TimeOff: *timeOff,
		})
	}
}
