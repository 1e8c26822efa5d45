package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"visit-scheduler/api"
	"visit-scheduler/internal/service"
	"visit-scheduler/pkg/response"
	"visit-scheduler/pkg/sl"
)

type SlotFinder interface {
	FindSlots(ctx context.Context, q *service.SlotQuery) ([]api.CandidateSlot, int, error)
}

type Response struct {
	response.Response
	Slots           []api.CandidateSlot `json:"slots"`
	TotalSlotsFound int                 `json:"totalSlotsFound"`
}

func New(log *slog.Logger, finder SlotFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.slots.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		query := &service.SlotQuery{
			StudyVisitID: r.URL.Query().Get("studyVisitId"),
			StartDate:    r.URL.Query().Get("startDate"),
			EndDate:      r.URL.Query().Get("endDate"),
		}

		if durationStr := r.URL.Query().Get("duration"); durationStr != "" {
			duration, err := strconv.Atoi(durationStr)
			if err != nil {
				log.Error("Invalid duration", slog.String("duration", durationStr))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "duration must be a number of minutes"))
				return
			}
			query.DurationMinutes = &duration
		}

		slots, total, err := finder.FindSlots(r.Context(), query)

		if errors.Is(err, response.ErrMissingField) {
			log.Error("Missing required parameter", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.MISSING_FIELD), "studyVisitId, startDate and endDate are required"))
			return
		}

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("Invalid slot query", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid slot query"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "study visit not found or no active coordinators assigned"))
			return
		}

		if err != nil {
			log.Error("Failed to find slots", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to find slots"))
			return
		}

		log.Info("Slots computed", slog.Int("returned", len(slots)), slog.Int("total", total))

		render.JSON(w, r, Response{
			Slots:           slots,
			TotalSlotsFound: total,
		})
	}
}
