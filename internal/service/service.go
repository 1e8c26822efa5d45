package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"visit-scheduler/api"
	"visit-scheduler/internal/config"
	"visit-scheduler/internal/lock"
	"visit-scheduler/internal/models"
	"visit-scheduler/internal/scheduler"
	"visit-scheduler/pkg/response"
)

type Service struct {
	store  Store
	locker lock.Locker
	cfg    config.Scheduler
	now    func() time.Time
}

func NewService(store Store, locker lock.Locker, cfg config.Scheduler) *Service {
	return &Service{store: store, locker: locker, cfg: cfg, now: time.Now}
}

type Store interface {
	BeginTx(ctx context.Context) (*sql.Tx, error)

	// Scheduling reads
	GetStudyVisit(ctx context.Context, id string) (*models.StudyVisit, error)
	ListStudyCoordinators(ctx context.Context, studyID string) ([]models.Coordinator, error)
	ListAvailabilityWindows(ctx context.Context, coordinatorIDs []string) ([]models.AvailabilityWindow, error)
	ListTimeOff(ctx context.Context, coordinatorIDs []string, from, to time.Time) ([]models.TimeOffRequest, error)
	ListBookedVisits(ctx context.Context, coordinatorIDs []string, from, to time.Time) ([]scheduler.BookedVisit, error)

	// Visits
	HasActiveVisit(ctx context.Context, tx *sql.Tx, participantID, studyVisitID string) (bool, error)
	CreateVisit(ctx context.Context, tx *sql.Tx, visit *models.ParticipantVisit) (string, error)
	GetVisitDetail(ctx context.Context, id string) (*models.VisitDetail, error)
	ListVisits(ctx context.Context, filters *VisitFilters) ([]*models.VisitDetail, error)
	UpdateVisit(ctx context.Context, visit *models.ParticipantVisit) error

	// Facilities
	GetFacility(ctx context.Context, id string) (*models.Facility, error)
	HasFacilityConflict(ctx context.Context, tx *sql.Tx, facilityID string, start, end time.Time) (bool, error)
	CreateFacilityBooking(ctx context.Context, tx *sql.Tx, booking *models.FacilityBooking) (string, error)

	// Availability windows
	CreateAvailabilityWindow(ctx context.Context, w *models.AvailabilityWindow) (string, error)
	GetAvailabilityWindow(ctx context.Context, id string) (*models.AvailabilityWindow, error)
	UpdateAvailabilityWindow(ctx context.Context, w *models.AvailabilityWindow) error
	DeleteAvailabilityWindow(ctx context.Context, id string) error

	// Time off
	CreateTimeOff(ctx context.Context, req *models.TimeOffRequest) (string, error)
	GetTimeOff(ctx context.Context, id string) (*models.TimeOffRequest, error)
	UpdateTimeOff(ctx context.Context, req *models.TimeOffRequest) error
	DeleteTimeOff(ctx context.Context, id string) error
}

// SlotQuery is the typed form of GET /scheduling/slots query parameters.
type SlotQuery struct {
	StudyVisitID    string
	StartDate       string
	EndDate         string
	DurationMinutes *int
}

// VisitFilters is the typed form of GET /scheduling/visits query parameters.
type VisitFilters struct {
	CoordinatorID *string
	ParticipantID *string
	StudyID       *string
	Status        *string
	From          *time.Time
	To            *time.Time
}

// Slot finder

// FindSlots computes the ranked candidate slots for a study visit template
// over a date range. Returns the ranked top slots and the total number of
// feasible slots found before ranking. An empty result is not an error.
func (s *Service) FindSlots(ctx context.Context, q *SlotQuery) ([]api.CandidateSlot, int, error) {
	const op = "service.FindSlots"

	if q.StudyVisitID == "" {
		return nil, 0, fmt.Errorf("%s: studyVisitId: %w", op, response.ErrMissingField)
	}
	if q.StartDate == "" {
		return nil, 0, fmt.Errorf("%s: startDate: %w", op, response.ErrMissingField)
	}
	if q.EndDate == "" {
		return nil, 0, fmt.Errorf("%s: endDate: %w", op, response.ErrMissingField)
	}

	from, err := time.Parse("2006-01-02", q.StartDate)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: invalid startDate: %w", op, response.ErrBadRequest)
	}
	to, err := time.Parse("2006-01-02", q.EndDate)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: invalid endDate: %w", op, response.ErrBadRequest)
	}
	if to.Before(from) {
		return nil, 0, fmt.Errorf("%s: endDate is before startDate: %w", op, response.ErrBadRequest)
	}
	if int(to.Sub(from).Hours()/24) > s.cfg.MaxRangeDays {
		return nil, 0, fmt.Errorf("%s: range exceeds %d days: %w", op, s.cfg.MaxRangeDays, response.ErrBadRequest)
	}

	duration := s.cfg.DefaultVisitMinutes
	if q.DurationMinutes != nil {
		duration = *q.DurationMinutes
	}
	if duration <= 0 {
		return nil, 0, fmt.Errorf("%s: invalid duration: %w", op, response.ErrBadRequest)
	}

	tpl, err := s.store.GetStudyVisit(ctx, q.StudyVisitID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, 0, fmt.Errorf("%s: study visit: %w", op, response.ErrNotFound)
		}
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	roster, err := s.store.ListStudyCoordinators(ctx, tpl.StudyID)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	if len(roster) == 0 {
		return nil, 0, fmt.Errorf("%s: no active coordinators assigned: %w", op, response.ErrNotFound)
	}

	snap, err := s.loadSnapshot(ctx, roster, from, to)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	step := time.Duration(s.cfg.StepMinutes) * time.Minute
	all := scheduler.Generate(snap, from, to, time.Duration(duration)*time.Minute, step)
	ranked := scheduler.Rank(all, snap, s.now(), s.cfg.MaxResults)

	slots := make([]api.CandidateSlot, 0, len(ranked))
	for _, slot := range ranked {
		slots = append(slots, api.CandidateSlot{
			Start:           slot.Start,
			End:             slot.End,
			CoordinatorID:   slot.CoordinatorID,
			CoordinatorName: slot.CoordinatorName,
			Score:           slot.Score,
			Availability:    "available",
		})
	}

	return slots, len(all), nil
}

// loadSnapshot reads the supporting collections for one generation call.
// The snapshot is a read-only view; nothing here takes locks.
func (s *Service) loadSnapshot(ctx context.Context, roster []models.Coordinator, from, to time.Time) (*scheduler.Snapshot, error) {
	ids := make([]string, 0, len(roster))
	for _, c := range roster {
		ids = append(ids, c.ID)
	}

	windows, err := s.store.ListAvailabilityWindows(ctx, ids)
	if err != nil {
		return nil, err
	}

	timeOff, err := s.store.ListTimeOff(ctx, ids, from, to)
	if err != nil {
		return nil, err
	}

	visits, err := s.store.ListBookedVisits(ctx, ids, from, to)
	if err != nil {
		return nil, err
	}

	snap := &scheduler.Snapshot{
		Coordinators: roster,
		Windows:      make(map[string][]models.AvailabilityWindow, len(roster)),
		TimeOff:      make(map[string][]models.TimeOffRequest, len(roster)),
		Visits:       make(map[string][]scheduler.BookedVisit, len(roster)),
	}
	for _, w := range windows {
		snap.Windows[w.CoordinatorID] = append(snap.Windows[w.CoordinatorID], w)
	}
	for _, t := range timeOff {
		snap.TimeOff[t.CoordinatorID] = append(snap.TimeOff[t.CoordinatorID], t)
	}
	for _, v := range visits {
		snap.Visits[v.CoordinatorID] = append(snap.Visits[v.CoordinatorID], v)
	}

	return snap, nil
}

// Visits

func (s *Service) CreateVisit(ctx context.Context, req *api.VisitCreateRequest, principalID string) (*api.VisitResponse, error) {
	const op = "service.CreateVisit"

	if req.ParticipantID == "" {
		return nil, fmt.Errorf("%s: participantId: %w", op, response.ErrMissingField)
	}
	if req.StudyVisitID == "" {
		return nil, fmt.Errorf("%s: studyVisitId: %w", op, response.ErrMissingField)
	}
	if req.ScheduledDate == "" {
		return nil, fmt.Errorf("%s: scheduledDate: %w", op, response.ErrMissingField)
	}

	scheduled, err := time.Parse(time.RFC3339, req.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid scheduledDate: %w", op, response.ErrBadRequest)
	}

	method := models.SchedulingManual
	if req.SchedulingMethod != nil {
		method = models.SchedulingMethod(*req.SchedulingMethod)
		if method != models.SchedulingManual && method != models.SchedulingAutoSuggested {
			return nil, fmt.Errorf("%s: invalid schedulingMethod: %w", op, response.ErrBadRequest)
		}
	}

	tpl, err := s.store.GetStudyVisit(ctx, req.StudyVisitID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: study visit: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var facility *models.Facility
	if req.FacilityID != nil {
		facility, err = s.store.GetFacility(ctx, *req.FacilityID)
		if err != nil {
			if errors.Is(err, response.ErrNotFound) {
				return nil, fmt.Errorf("%s: facility: %w", op, response.ErrNotFound)
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !facility.Active {
			return nil, fmt.Errorf("%s: facility retired: %w", op, response.ErrNotFound)
		}
	}

	lockKey := fmt.Sprintf("visit:%s:%s", req.ParticipantID, req.StudyVisitID)

	locked, err := s.locker.Lock(ctx, lockKey, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("%s: lock error: %w", op, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}
	defer func() {
		_ = s.locker.Unlock(ctx, lockKey)
	}()

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: begin tx: %w", op, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	active, err := s.store.HasActiveVisit(ctx, tx, req.ParticipantID, req.StudyVisitID)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if active {
		_ = tx.Rollback()
		return nil, fmt.Errorf("%s: active visit already exists for participant: %w", op, response.ErrConflict)
	}

	visit := &models.ParticipantVisit{
		ParticipantID:    req.ParticipantID,
		StudyVisitID:     req.StudyVisitID,
		ScheduledDate:    scheduled,
		CoordinatorID:    req.CoordinatorID,
		SchedulingMethod: method,
		Status:           models.VisitScheduled,
		Notes:            req.Notes,
	}

	visitID, err := s.store.CreateVisit(ctx, tx, visit)
	if err != nil {
		_ = tx.Rollback()
		if errors.Is(err, response.ErrConflict) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrConflict)
		}
		return nil, fmt.Errorf("%s: create visit: %w", op, err)
	}

	if facility != nil {
		minutes := tpl.DurationMinutes
		if minutes <= 0 {
			minutes = scheduler.DefaultVisitMinutes
		}
		end := scheduled.Add(time.Duration(minutes) * time.Minute)

		busy, err := s.store.HasFacilityConflict(ctx, tx, facility.ID, scheduled, end)
		if err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if busy {
			_ = tx.Rollback()
			return nil, fmt.Errorf("%s: facility already booked: %w", op, response.ErrConflict)
		}

		booking := &models.FacilityBooking{
			FacilityID: facility.ID,
			VisitID:    visitID,
			Start:      scheduled,
			End:        end,
			Purpose:    tpl.Name,
			BookedBy:   principalID,
			Status:     models.FacilityBooked,
		}
		if _, err := s.store.CreateFacilityBooking(ctx, tx, booking); err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("%s: create facility booking: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: commit: %w", op, err)
	}

	return s.GetVisit(ctx, visitID)
}

func (s *Service) GetVisit(ctx context.Context, id string) (*api.VisitResponse, error) {
	const op = "service.GetVisit"

	detail, err := s.store.GetVisitDetail(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return visitResponse(detail), nil
}

func (s *Service) ListVisits(ctx context.Context, filters *VisitFilters) ([]*api.VisitResponse, error) {
	const op = "service.ListVisits"

	visits, err := s.store.ListVisits(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.VisitResponse, 0, len(visits))
	for _, detail := range visits {
		result = append(result, visitResponse(detail))
	}

	return result, nil
}

// UpdateVisit applies a partial patch to a visit. The persisted row is always
// re-read first; wait-time derivation uses the persisted check-in time unless
// the same patch sets it, and always the scheduled time read before the patch.
func (s *Service) UpdateVisit(ctx context.Context, req *api.VisitUpdateRequest) (*api.VisitResponse, error) {
	const op = "service.UpdateVisit"

	if req.ID == "" {
		return nil, fmt.Errorf("%s: id: %w", op, response.ErrMissingField)
	}

	detail, err := s.store.GetVisitDetail(ctx, req.ID)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	visit := detail.ParticipantVisit
	originalScheduled := visit.ScheduledDate

	if req.ScheduledDate != nil {
		scheduled, err := time.Parse(time.RFC3339, *req.ScheduledDate)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid scheduledDate: %w", op, response.ErrBadRequest)
		}
		visit.ScheduledDate = scheduled
	}

	if req.CoordinatorID != nil {
		visit.CoordinatorID = req.CoordinatorID
	}
	if req.Notes != nil {
		visit.Notes = req.Notes
	}
	if req.NoShowReason != nil {
		visit.NoShowReason = req.NoShowReason
	}

	if req.CheckInTime != nil {
		checkIn, err := time.Parse(time.RFC3339, *req.CheckInTime)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid checkInTime: %w", op, response.ErrBadRequest)
		}
		visit.CheckInTime = &checkIn
	}

	if req.CheckOutTime != nil {
		checkOut, err := time.Parse(time.RFC3339, *req.CheckOutTime)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid checkOutTime: %w", op, response.ErrBadRequest)
		}
		visit.CheckOutTime = &checkOut

		if visit.CheckInTime != nil {
			wait := int(visit.CheckInTime.Sub(originalScheduled).Minutes())
			visit.WaitTimeMinutes = &wait
		}
	}

	if req.Status != nil {
		status := models.VisitStatus(*req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%s: invalid status %q: %w", op, *req.Status, response.ErrBadRequest)
		}
		if !models.CanTransition(visit.Status, status) {
			return nil, fmt.Errorf("%s: transition %s -> %s: %w", op, visit.Status, status, response.ErrConflict)
		}
		if status == models.VisitNoShow && visit.NoShowReason == nil {
			return nil, fmt.Errorf("%s: noShowReason: %w", op, response.ErrMissingField)
		}
		if status == models.VisitCompleted && visit.CompletedDate == nil {
			completed := s.now()
			visit.CompletedDate = &completed
		}
		visit.Status = status
	}

	if err := s.store.UpdateVisit(ctx, &visit); err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetVisit(ctx, visit.ID)
}

func visitResponse(detail *models.VisitDetail) *api.VisitResponse {
	resp := &api.VisitResponse{
		ID:               detail.ID,
		ScheduledDate:    detail.ScheduledDate,
		Status:           string(detail.Status),
		SchedulingMethod: string(detail.SchedulingMethod),
		Notes:            detail.Notes,
		NoShowReason:     detail.NoShowReason,
		CheckInTime:      detail.CheckInTime,
		CheckOutTime:     detail.CheckOutTime,
		WaitTimeMinutes:  detail.WaitTimeMinutes,
		CompletedDate:    detail.CompletedDate,
		Participant: api.ParticipantSummary{
			ID:   detail.ParticipantID,
			Name: detail.ParticipantName,
		},
		StudyVisit: api.StudyVisitSummary{
			ID:              detail.StudyVisitID,
			StudyID:         detail.StudyID,
			Name:            detail.VisitName,
			VisitNumber:     detail.VisitNumber,
			DurationMinutes: detail.VisitDurationMinutes,
		},
	}

	if detail.CoordinatorID != nil {
		name := ""
		if detail.CoordinatorName != nil {
			name = *detail.CoordinatorName
		}
		resp.Coordinator = &api.CoordinatorSummary{ID: *detail.CoordinatorID, Name: name}
	}

	if fb := detail.FacilityBooking; fb != nil {
		resp.FacilityBooking = &api.FacilityBookingSummary{
			ID:         fb.ID,
			FacilityID: fb.FacilityID,
			Start:      fb.Start,
			End:        fb.End,
			Purpose:    fb.Purpose,
			BookedBy:   fb.BookedBy,
			Status:     string(fb.Status),
		}
	}

	return resp
}

// Availability Windows

func (s *Service) CreateAvailabilityWindow(ctx context.Context, req *api.AvailabilityWindowRequest) (*api.AvailabilityWindowResponse, error) {
	const op = "service.CreateAvailabilityWindow"

	window, err := availabilityWindowFromRequest(op, req)
	if err != nil {
		return nil, err
	}

	id, err := s.store.CreateAvailabilityWindow(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetAvailabilityWindow(ctx, id)
}

func (s *Service) GetAvailabilityWindow(ctx context.Context, id string) (*api.AvailabilityWindowResponse, error) {
	const op = "service.GetAvailabilityWindow"

	window, err := s.store.GetAvailabilityWindow(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := &api.AvailabilityWindowResponse{
		ID:            window.ID,
		CoordinatorID: window.CoordinatorID,
		DayOfWeek:     window.DayOfWeek,
		StartTime:     window.StartTime.Format("15:04"),
		EndTime:       window.EndTime.Format("15:04"),
		EffectiveFrom: window.EffectiveFrom.Format("2006-01-02"),
	}
	if window.EffectiveTo != nil {
		to := window.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &to
	}

	return resp, nil
}

func (s *Service) UpdateAvailabilityWindow(ctx context.Context, id string, req *api.AvailabilityWindowRequest) (*api.AvailabilityWindowResponse, error) {
	const op = "service.UpdateAvailabilityWindow"

	existing, err := s.store.GetAvailabilityWindow(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	window, err := availabilityWindowFromRequest(op, req)
	if err != nil {
		return nil, err
	}
	window.ID = existing.ID

	if err := s.store.UpdateAvailabilityWindow(ctx, window); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetAvailabilityWindow(ctx, id)
}

func (s *Service) DeleteAvailabilityWindow(ctx context.Context, id string) error {
	const op = "service.DeleteAvailabilityWindow"

	err := s.store.DeleteAvailabilityWindow(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func availabilityWindowFromRequest(op string, req *api.AvailabilityWindowRequest) (*models.AvailabilityWindow, error) {
	if req.CoordinatorID == "" {
		return nil, fmt.Errorf("%s: coordinator_id: %w", op, response.ErrMissingField)
	}
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, fmt.Errorf("%s: day_of_week out of range: %w", op, response.ErrBadRequest)
	}

	startTime, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid start_time: %w", op, response.ErrBadRequest)
	}
	endTime, err := time.Parse("15:04", req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid end_time: %w", op, response.ErrBadRequest)
	}
	if !endTime.After(startTime) {
		return nil, fmt.Errorf("%s: start_time must be before end_time: %w", op, response.ErrBadRequest)
	}

	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid effective_from: %w", op, response.ErrBadRequest)
	}

	window := &models.AvailabilityWindow{
		CoordinatorID: req.CoordinatorID,
		DayOfWeek:     req.DayOfWeek,
		StartTime:     startTime,
		EndTime:       endTime,
		EffectiveFrom: effectiveFrom,
	}

	if req.EffectiveTo != nil {
		effectiveTo, err := time.Parse("2006-01-02", *req.EffectiveTo)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid effective_to: %w", op, response.ErrBadRequest)
		}
		window.EffectiveTo = &effectiveTo
	}

	return window, nil
}

// Time Off

func (s *Service) CreateTimeOff(ctx context.Context, req *api.TimeOffRequestBody) (*api.TimeOffResponse, error) {
	const op = "service.CreateTimeOff"

	timeOff, err := timeOffFromRequest(op, req)
	if err != nil {
		return nil, err
	}

	id, err := s.store.CreateTimeOff(ctx, timeOff)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetTimeOff(ctx, id)
}

func (s *Service) GetTimeOff(ctx context.Context, id string) (*api.TimeOffResponse, error) {
	const op = "service.GetTimeOff"

	timeOff, err := s.store.GetTimeOff(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.TimeOffResponse{
		ID:            timeOff.ID,
		CoordinatorID: timeOff.CoordinatorID,
		StartDate:     timeOff.StartDate.Format("2006-01-02"),
		EndDate:       timeOff.EndDate.Format("2006-01-02"),
		Status:        string(timeOff.Status),
		Reason:        timeOff.Reason,
	}, nil
}

func (s *Service) UpdateTimeOff(ctx context.Context, id string, req *api.TimeOffRequestBody) (*api.TimeOffResponse, error) {
	const op = "service.UpdateTimeOff"

	existing, err := s.store.GetTimeOff(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	timeOff, err := timeOffFromRequest(op, req)
	if err != nil {
		return nil, err
	}
	timeOff.ID = existing.ID

	if err := s.store.UpdateTimeOff(ctx, timeOff); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetTimeOff(ctx, id)
}

func (s *Service) DeleteTimeOff(ctx context.Context, id string) error {
	const op = "service.DeleteTimeOff"

	err := s.store.DeleteTimeOff(ctx, id)
	if err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func timeOffFromRequest(op string, req *api.TimeOffRequestBody) (*models.TimeOffRequest, error) {
	if req.CoordinatorID == "" {
		return nil, fmt.Errorf("%s: coordinator_id: %w", op, response.ErrMissingField)
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid start_date: %w", op, response.ErrBadRequest)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid end_date: %w", op, response.ErrBadRequest)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%s: end_date before start_date: %w", op, response.ErrBadRequest)
	}

	status := models.TimeOffStatus(req.Status)
	if status != models.TimeOffPending && status != models.TimeOffApproved && status != models.TimeOffDenied {
		return nil, fmt.Errorf("%s: invalid status: %w", op, response.ErrBadRequest)
	}

	return &models.TimeOffRequest{
		CoordinatorID: req.CoordinatorID,
		StartDate:     startDate,
		EndDate:       endDate,
		Status:        status,
		Reason:        req.Reason,
	}, nil
}
