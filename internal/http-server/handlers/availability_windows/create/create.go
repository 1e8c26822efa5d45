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

type WindowCreator interface {
	CreateAvailabilityWindow(ctx context.Context, req *api.AvailabilityWindowRequest) (*api.AvailabilityWindowResponse, error)
}

type Request struct {
	api.AvailabilityWindowRequest
}

type Response struct {
	response.Response
	Window api.AvailabilityWindowResponse `json:"window,omitempty"`
}

func New(log *slog.Logger, creator WindowCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability_windows.create.New"

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

		window, err := creator.CreateAvailabilityWindow(r.Context(), &req.AvailabilityWindowRequest)

		if errors.Is(err, response.ErrMissingField) || errors.Is(err, response.ErrBadRequest) {
			log.Error("Invalid window", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid availability window"))
			return
		}

		if err != nil {
			log.Error("Failed to create availability window", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create availability window"))
			return
		}

		log.Info("Availability window created", slog.String("window_id", window.ID))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{
			Window: *window,
		})
	}
}
