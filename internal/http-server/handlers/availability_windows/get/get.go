package get

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

type WindowGetter interface {
	GetAvailabilityWindow(ctx context.Context, id string) (*api.AvailabilityWindowResponse, error)
}

type Response struct {
	response.Response
	Window api.AvailabilityWindowResponse `json:"window,omitempty"`
}

func New(log *slog.Logger, getter WindowGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability_windows.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		window, err := getter.GetAvailabilityWindow(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to get availability window", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get availability window"))
			return
		}

		log.Info("Availability window retrieved", slog.String("window_id", window.ID))

		render.JSON(w, r, Response{
			Window: *window,
		})
	}
}
