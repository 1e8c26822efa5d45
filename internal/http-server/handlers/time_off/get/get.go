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

type TimeOffGetter interface {
	GetTimeOff(ctx context.Context, id string) (*api.TimeOffResponse, error)
}

type Response struct {
	response.Response
	TimeOff api.TimeOffResponse `json:"time_off,omitempty"`
}

func New(log *slog.Logger, getter TimeOffGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.time_off.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		timeOff, err := getter.GetTimeOff(r.Context(), id)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to get time-off request", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get time-off request"))
			return
		}

		log.Info("Time-off request retrieved", slog.String("time_off_id", timeOff.ID))

		render.JSON(w, r, Response{
			TimeOff: *timeOff,
		})
	}
}
