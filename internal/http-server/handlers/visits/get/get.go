package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"visit-scheduler/api"
	"visit-scheduler/internal/service"
	"visit-scheduler/pkg/response"
	"visit-scheduler/pkg/sl"
)

type VisitLister interface {
	ListVisits(ctx context.Context, filters *service.VisitFilters) ([]*api.VisitResponse, error)
}

type Response struct {
	response.Response
	Visits []api.VisitResponse `json:"visits"`
}

func New(log *slog.Logger, lister VisitLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.visits.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		filters := &service.VisitFilters{}

		if coordinatorID := r.URL.Query().Get("coordinatorId"); coordinatorID != "" {
			filters.CoordinatorID = &coordinatorID
		}
		if participantID := r.URL.Query().Get("participantId"); participantID != "" {
			filters.ParticipantID = &participantID
		}
		if studyID := r.URL.Query().Get("studyId"); studyID != "" {
			filters.StudyID = &studyID
		}
		if status := r.URL.Query().Get("status"); status != "" {
			filters.Status = &status
		}

		if fromStr := r.URL.Query().Get("startDate"); fromStr != "" {
			t, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid startDate"))
				return
			}
			filters.From = &t
		}
		if toStr := r.URL.Query().Get("endDate"); toStr != "" {
			t, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "invalid endDate"))
				return
			}
			filters.To = &t
		}

		visits, err := lister.ListVisits(r.Context(), filters)
		if err != nil {
			log.Error("Failed to list visits", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list visits"))
			return
		}

		log.Info("Visits listed", slog.Int("count", len(visits)))

		visitsResponse := make([]api.VisitResponse, len(visits))
		for i, v := range visits {
			visitsResponse[i] = *v
		}

		render.JSON(w, r, Response{
			Visits: visitsResponse,
		})
	}
}
