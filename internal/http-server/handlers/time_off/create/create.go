package create

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

type TimeOffCreator interface {
	CreateTimeOff(ctx context.Context, req *api.TimeOffRequestBody) (*api.TimeOffResponse, error)
}

type Request struct {
	api.TimeOffRequestBody
}

type Response struct {
	response.Response
	TimeOff api.TimeOffResponse `json:"time_off,omitempty"`
}

func New(log *slog.Logger, creator TimeOffCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.time_off.create.New"

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

		timeOff, err := creator.CreateTimeOff(r.Context(), &req.TimeOffRequestBody)

		if errors.Is(err, response.ErrMissingField) || errors.Is(err, response.ErrBadRequest) {
			log.Error("Invalid time-off request", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid time-off request"))
			return
		}

		if err != nil {
			log.Error("Failed to create time-off request", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create time-off request"))
			return
		}

		log.Info("Time-off request created", slog.String("time_off_id", timeOff.ID))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{
			TimeOff: *timeOff,
		})
	}
}
