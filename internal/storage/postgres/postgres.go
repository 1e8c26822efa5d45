package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"visit-scheduler/internal/models"
	"visit-scheduler/internal/scheduler"
	"visit-scheduler/internal/service"
	"visit-scheduler/pkg/response"
)

type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

func (s *Storage) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
}

// mapPqError translates constraint violations into domain sentinels.
func mapPqError(op string, err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w", op, response.ErrConflict)
		case "23503":
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

// #### scheduling reads ####

func (s *Storage) GetStudyVisit(ctx context.Context, id string) (*models.StudyVisit, error) {
	const op = "storage.postgres.GetStudyVisit"

	var sv models.StudyVisit

	err := s.db.QueryRowContext(ctx,
		`SELECT study_visit_id, study_id, visit_name, visit_number, visit_type, duration_minutes
		FROM study_visits WHERE study_visit_id=$1`, id).
		Scan(
			&sv.ID,
			&sv.StudyID,
			&sv.Name,
			&sv.VisitNumber,
			&sv.VisitType,
			&sv.DurationMinutes,
		)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &sv, nil
}

func (s *Storage) ListStudyCoordinators(ctx context.Context, studyID string) ([]models.Coordinator, error) {
	const op = "storage.postgres.ListStudyCoordinators"

	rows, err := s.db.QueryContext(ctx,
		`SELECT c.coordinator_id, c.display_name
		FROM study_coordinators sc
		JOIN coordinators c ON c.coordinator_id = sc.coordinator_id
		WHERE sc.study_id=$1 AND sc.is_active=TRUE
		ORDER BY c.display_name`, studyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var roster []models.Coordinator

	for rows.Next() {
		var c models.Coordinator
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		roster = append(roster, c)
	}

	return roster, nil
}

func (s *Storage) ListAvailabilityWindows(ctx context.Context, coordinatorIDs []string) ([]models.AvailabilityWindow, error) {
	const op = "storage.postgres.ListAvailabilityWindows"

	rows, err := s.db.QueryContext(ctx,
		`SELECT window_id, coordinator_id, day_of_week, start_time, end_time, effective_from, effective_to
		FROM availability_windows
		WHERE coordinator_id = ANY($1)`, pq.Array(coordinatorIDs))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var windows []models.AvailabilityWindow

	for rows.Next() {
		var w models.AvailabilityWindow
		var effectiveTo sql.NullTime

		err := rows.Scan(&w.ID, &w.CoordinatorID, &w.DayOfWeek, &w.StartTime, &w.EndTime, &w.EffectiveFrom, &effectiveTo)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if effectiveTo.Valid {
			w.EffectiveTo = &effectiveTo.Time
		}

		windows = append(windows, w)
	}

	return windows, nil
}

func (s *Storage) ListTimeOff(ctx context.Context, coordinatorIDs []string, from, to time.Time) ([]models.TimeOffRequest, error) {
	const op = "storage.postgres.ListTimeOff"

	rows, err := s.db.QueryContext(ctx,
		`SELECT time_off_id, coordinator_id, start_date, end_date, status, reason
		FROM time_off_requests
		WHERE coordinator_id = ANY($1) AND start_date <= $3 AND end_date >= $2`,
		pq.Array(coordinatorIDs), from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var requests []models.TimeOffRequest

	for rows.Next() {
		var r models.TimeOffRequest
		var reason sql.NullString

		err := rows.Scan(&r.ID, &r.CoordinatorID, &r.StartDate, &r.EndDate, &r.Status, &reason)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if reason.Valid {
			r.Reason = &reason.String
		}

		requests = append(requests, r)
	}

	return requests, nil
}

func (s *Storage) ListBookedVisits(ctx context.Context, coordinatorIDs []string, from, to time.Time) ([]scheduler.BookedVisit, error) {
	const op = "storage.postgres.ListBookedVisits"

	rows, err := s.db.QueryContext(ctx,
		`SELECT pv.coordinator_id, pv.scheduled_date, sv.duration_minutes, pv.status
		FROM participant_visits pv
		JOIN study_visits sv ON sv.study_visit_id = pv.study_visit_id
		WHERE pv.coordinator_id = ANY($1)
		AND pv.status IN ('scheduled', 'confirmed')
		AND pv.scheduled_date >= $2
		AND pv.scheduled_date < $3 + INTERVAL '1 day'`,
		pq.Array(coordinatorIDs), from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var visits []scheduler.BookedVisit

	for rows.Next() {
		var v scheduler.BookedVisit
		if err := rows.Scan(&v.CoordinatorID, &v.Start, &v.DurationMinutes, &v.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		visits = append(visits, v)
	}

	return visits, nil
}

// #### visits ####

func (s *Storage) HasActiveVisit(ctx context.Context, tx *sql.Tx, participantID, studyVisitID string) (bool, error) {
	const op = "storage.postgres.HasActiveVisit"

	var exists bool

	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM participant_visits
			WHERE participant_id=$1 AND study_visit_id=$2
			AND status IN ('scheduled', 'confirmed'))`,
		participantID, studyVisitID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func (s *Storage) CreateVisit(ctx context.Context, tx *sql.Tx, visit *models.ParticipantVisit) (string, error) {
	const op = "storage.postgres.CreateVisit"

	id := uuid.NewString()

	_, err := tx.ExecContext(ctx,
		`INSERT INTO participant_visits
		(visit_id, participant_id, study_visit_id, scheduled_date, coordinator_id, scheduling_method, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id,
		visit.ParticipantID,
		visit.StudyVisitID,
		visit.ScheduledDate,
		visit.CoordinatorID,
		string(visit.SchedulingMethod),
		string(visit.Status),
		visit.Notes,
	)
	if err != nil {
		return "", mapPqError(op, err)
	}

	return id, nil
}

const visitDetailColumns = `
	pv.visit_id, pv.participant_id, pv.study_visit_id, pv.scheduled_date,
	pv.coordinator_id, pv.scheduling_method, pv.status, pv.notes,
	pv.no_show_reason, pv.check_in_time, pv.check_out_time,
	pv.wait_time_minutes, pv.completed_date,
	p.full_name,
	sv.study_id, sv.visit_name, sv.visit_number, sv.duration_minutes,
	c.display_name,
	fb.facility_booking_id, fb.facility_id, fb.start_time, fb.end_time,
	fb.purpose, fb.booked_by, fb.status`

const visitDetailJoins = `
	FROM participant_visits pv
	JOIN participants p ON p.participant_id = pv.participant_id
	JOIN study_visits sv ON sv.study_visit_id = pv.study_visit_id
	LEFT JOIN coordinators c ON c.coordinator_id = pv.coordinator_id
	LEFT JOIN facility_bookings fb ON fb.visit_id = pv.visit_id`

func scanVisitDetail(scan func(dest ...any) error) (*models.VisitDetail, error) {
	var d models.VisitDetail
	var coordinatorID, notes, noShowReason, coordinatorName sql.NullString
	var checkIn, checkOut, completed sql.NullTime
	var waitTime sql.NullInt64
	var fbID, fbFacilityID, fbPurpose, fbBookedBy, fbStatus sql.NullString
	var fbStart, fbEnd sql.NullTime

	err := scan(
		&d.ID, &d.ParticipantID, &d.StudyVisitID, &d.ScheduledDate,
		&coordinatorID, &d.SchedulingMethod, &d.Status, &notes,
		&noShowReason, &checkIn, &checkOut,
		&waitTime, &completed,
		&d.ParticipantName,
		&d.StudyID, &d.VisitName, &d.VisitNumber, &d.VisitDurationMinutes,
		&coordinatorName,
		&fbID, &fbFacilityID, &fbStart, &fbEnd,
		&fbPurpose, &fbBookedBy, &fbStatus,
	)
	if err != nil {
		return nil, err
	}

	if coordinatorID.Valid {
		d.CoordinatorID = &coordinatorID.String
	}
	if coordinatorName.Valid {
		d.CoordinatorName = &coordinatorName.String
	}
	if notes.Valid {
		d.Notes = &notes.String
	}
	if noShowReason.Valid {
		d.NoShowReason = &noShowReason.String
	}
	if checkIn.Valid {
		d.CheckInTime = &checkIn.Time
	}
	if checkOut.Valid {
		d.CheckOutTime = &checkOut.Time
	}
	if waitTime.Valid {
		wait := int(waitTime.Int64)
		d.WaitTimeMinutes = &wait
	}
	if completed.Valid {
		d.CompletedDate = &completed.Time
	}

	if fbID.Valid {
		d.FacilityBooking = &models.FacilityBooking{
			ID:         fbID.String,
			FacilityID: fbFacilityID.String,
			VisitID:    d.ID,
			Start:      fbStart.Time,
			End:        fbEnd.Time,
			Purpose:    fbPurpose.String,
			BookedBy:   fbBookedBy.String,
			Status:     models.FacilityBookingStatus(fbStatus.String),
		}
	}

	return &d, nil
}

func (s *Storage) GetVisitDetail(ctx context.Context, id string) (*models.VisitDetail, error) {
	const op = "storage.postgres.GetVisitDetail"

	row := s.db.QueryRowContext(ctx,
		`SELECT `+visitDetailColumns+visitDetailJoins+` WHERE pv.visit_id=$1`, id)

	detail, err := scanVisitDetail(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return detail, nil
}

func (s *Storage) ListVisits(ctx context.Context, filters *service.VisitFilters) ([]*models.VisitDetail, error) {
	const op = "storage.postgres.ListVisits"

	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.CoordinatorID != nil {
		conditions = append(conditions, "pv.coordinator_id = "+arg(*filters.CoordinatorID))
	}
	if filters.ParticipantID != nil {
		conditions = append(conditions, "pv.participant_id = "+arg(*filters.ParticipantID))
	}
	if filters.StudyID != nil {
		conditions = append(conditions, "sv.study_id = "+arg(*filters.StudyID))
	}
	if filters.Status != nil {
		conditions = append(conditions, "pv.status = "+arg(*filters.Status))
	}
	if filters.From != nil {
		conditions = append(conditions, "pv.scheduled_date >= "+arg(*filters.From))
	}
	if filters.To != nil {
		conditions = append(conditions, "pv.scheduled_date < "+arg(*filters.To)+" + INTERVAL '1 day'")
	}

	query := `SELECT ` + visitDetailColumns + visitDetailJoins
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY pv.scheduled_date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var visits []*models.VisitDetail

	for rows.Next() {
		detail, err := scanVisitDetail(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		visits = append(visits, detail)
	}

	return visits, nil
}

func (s *Storage) UpdateVisit(ctx context.Context, visit *models.ParticipantVisit) error {
	const op = "storage.postgres.UpdateVisit"

	res, err := s.db.ExecContext(ctx,
		`UPDATE participant_visits SET
		scheduled_date=$1, coordinator_id=$2, status=$3, notes=$4,
		no_show_reason=$5, check_in_time=$6, check_out_time=$7,
		wait_time_minutes=$8, completed_date=$9
		WHERE visit_id=$10`,
		visit.ScheduledDate,
		visit.CoordinatorID,
		string(visit.Status),
		visit.Notes,
		visit.NoShowReason,
		visit.CheckInTime,
		visit.CheckOutTime,
		visit.WaitTimeMinutes,
		visit.CompletedDate,
		visit.ID,
	)
	if err != nil {
		return mapPqError(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

// #### facilities ####

func (s *Storage) GetFacility(ctx context.Context, id string) (*models.Facility, error) {
	const op = "storage.postgres.GetFacility"

	var f models.Facility

	err := s.db.QueryRowContext(ctx,
		`SELECT facility_id, facility_name, is_active FROM facilities WHERE facility_id=$1`, id).
		Scan(&f.ID, &f.Name, &f.Active)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &f, nil
}

func (s *Storage) HasFacilityConflict(ctx context.Context, tx *sql.Tx, facilityID string, start, end time.Time) (bool, error) {
	const op = "storage.postgres.HasFacilityConflict"

	var exists bool

	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM facility_bookings
			WHERE facility_id=$1 AND status='booked'
			AND start_time < $3 AND end_time > $2)`,
		facilityID, start, end).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func (s *Storage) CreateFacilityBooking(ctx context.Context, tx *sql.Tx, booking *models.FacilityBooking) (string, error) {
	const op = "storage.postgres.CreateFacilityBooking"

	id := uuid.NewString()

	_, err := tx.ExecContext(ctx,
		`INSERT INTO facility_bookings
		(facility_booking_id, facility_id, visit_id, start_time, end_time, purpose, booked_by, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id,
		booking.FacilityID,
		booking.VisitID,
		booking.Start,
		booking.End,
		booking.Purpose,
		booking.BookedBy,
		string(booking.Status),
	)
	if err != nil {
		return "", mapPqError(op, err)
	}

	return id, nil
}

// #### availability windows ####

func (s *Storage) CreateAvailabilityWindow(ctx context.Context, w *models.AvailabilityWindow) (string, error) {
	const op = "storage.postgres.CreateAvailabilityWindow"

	id := uuid.NewString()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO availability_windows
		(window_id, coordinator_id, day_of_week, start_time, end_time, effective_from, effective_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id,
		w.CoordinatorID,
		w.DayOfWeek,
		w.StartTime.Format("15:04:05"),
		w.EndTime.Format("15:04:05"),
		w.EffectiveFrom,
		w.EffectiveTo,
	)
	if err != nil {
		return "", mapPqError(op, err)
	}

	return id, nil
}

func (s *Storage) GetAvailabilityWindow(ctx context.Context, id string) (*models.AvailabilityWindow, error) {
	const op = "storage.postgres.GetAvailabilityWindow"

	var w models.AvailabilityWindow
	var effectiveTo sql.NullTime

	err := s.db.QueryRowContext(ctx,
		`SELECT window_id, coordinator_id, day_of_week, start_time, end_time, effective_from, effective_to
		FROM availability_windows WHERE window_id=$1`, id).
		Scan(&w.ID, &w.CoordinatorID, &w.DayOfWeek, &w.StartTime, &w.EndTime, &w.EffectiveFrom, &effectiveTo)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if effectiveTo.Valid {
		w.EffectiveTo = &effectiveTo.Time
	}

	return &w, nil
}

func (s *Storage) UpdateAvailabilityWindow(ctx context.Context, w *models.AvailabilityWindow) error {
	const op = "storage.postgres.UpdateAvailabilityWindow"

	res, err := s.db.ExecContext(ctx,
		`UPDATE availability_windows SET
		coordinator_id=$1, day_of_week=$2, start_time=$3, end_time=$4, effective_from=$5, effective_to=$6
		WHERE window_id=$7`,
		w.CoordinatorID,
		w.DayOfWeek,
		w.StartTime.Format("15:04:05"),
		w.EndTime.Format("15:04:05"),
		w.EffectiveFrom,
		w.EffectiveTo,
		w.ID,
	)
	if err != nil {
		return mapPqError(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

func (s *Storage) DeleteAvailabilityWindow(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteAvailabilityWindow"

	res, err := s.db.ExecContext(ctx, `DELETE FROM availability_windows WHERE window_id=$1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

// #### time off ####

func (s *Storage) CreateTimeOff(ctx context.Context, req *models.TimeOffRequest) (string, error) {
	const op = "storage.postgres.CreateTimeOff"

	id := uuid.NewString()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO time_off_requests
		(time_off_id, coordinator_id, start_date, end_date, status, reason)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id,
		req.CoordinatorID,
		req.StartDate,
		req.EndDate,
		string(req.Status),
		req.Reason,
	)
	if err != nil {
		return "", mapPqError(op, err)
	}

	return id, nil
}

func (s *Storage) GetTimeOff(ctx context.Context, id string) (*models.TimeOffRequest, error) {
	const op = "storage.postgres.GetTimeOff"

	var r models.TimeOffRequest
	var reason sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT time_off_id, coordinator_id, start_date, end_date, status, reason
		FROM time_off_requests WHERE time_off_id=$1`, id).
		Scan(&r.ID, &r.CoordinatorID, &r.StartDate, &r.EndDate, &r.Status, &reason)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if reason.Valid {
		r.Reason = &reason.String
	}

	return &r, nil
}

func (s *Storage) UpdateTimeOff(ctx context.Context, req *models.TimeOffRequest) error {
	const op = "storage.postgres.UpdateTimeOff"

	res, err := s.db.ExecContext(ctx,
		`UPDATE time_off_requests SET
		coordinator_id=$1, start_date=$2, end_date=$3, status=$4, reason=$5
		WHERE time_off_id=$6`,
		req.CoordinatorID,
		req.StartDate,
		req.EndDate,
		string(req.Status),
		req.Reason,
		req.ID,
	)
	if err != nil {
		return mapPqError(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

func (s *Storage) DeleteTimeOff(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteTimeOff"

	res, err := s.db.ExecContext(ctx, `DELETE FROM time_off_requests WHERE time_off_id=$1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}
