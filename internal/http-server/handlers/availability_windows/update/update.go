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

type WindowUpdater interface {
	UpdateAvailabilityWindow(ctx context.Context, id string, req *api.AvailabilityWindowRequest) (*api.AvailabilityWindowResponse, error)
}

type Request struct {
	api.AvailabilityWindowRequest
}

type Response struct {
	response.Response
	Window api.AvailabilityWindowResponse `json:"window,omitempty"`
}

func New(log *slog.Logger, updater WindowUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability_windows.update.New"

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

		window, err := updater.UpdateAvailabilityWindow(r.Context(), id, &req.AvailabilityWindowRequest)

		if errors.Is(err, response.ErrMissingField) || errors.Is(err, response.ErrBadRequest) {
			log.Error("Invalid window", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid availability window"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to update availability window", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to update availability window"))
			return
		}

		log.Info("Availability window updated", slog.String("window_id", window.ID))

		render.JSON(w, r, Response{
			Window: *window,
		})
	}
}
