package models

import "time"

type VisitStatus string

const (
	VisitScheduled VisitStatus = "scheduled"
	VisitConfirmed VisitStatus = "confirmed"
	VisitCompleted VisitStatus = "completed"
	VisitCancelled VisitStatus = "cancelled"
	VisitNoShow    VisitStatus = "no_show"
)

// Blocking reports whether a visit in this status occupies its coordinator's
// calendar and counts against the one-active-visit invariant.
func (s VisitStatus) Blocking() bool {
	return s == VisitScheduled || s == VisitConfirmed
}

func (s VisitStatus) Terminal() bool {
	return s == VisitCompleted || s == VisitCancelled || s == VisitNoShow
}

func (s VisitStatus) Valid() bool {
	switch s {
	case VisitScheduled, VisitConfirmed, VisitCompleted, VisitCancelled, VisitNoShow:
		return true
	}
	return false
}

// CanTransition encodes the visit lifecycle: scheduled -> confirmed ->
// completed, with cancelled and no_show reachable from either active state.
func CanTransition(from, to VisitStatus) bool {
	if from == to {
		return true
	}
	if from.Terminal() {
		return false
	}

	switch to {
	case VisitConfirmed:
		return from == VisitScheduled
	case VisitCompleted, VisitCancelled, VisitNoShow:
		return from == VisitScheduled || from == VisitConfirmed
	}
	return false
}

type TimeOffStatus string

const (
	TimeOffPending  TimeOffStatus = "pending"
	TimeOffApproved TimeOffStatus = "approved"
	TimeOffDenied   TimeOffStatus = "denied"
)

type SchedulingMethod string

const (
	SchedulingManual        SchedulingMethod = "manual"
	SchedulingAutoSuggested SchedulingMethod = "auto_suggested"
)

type FacilityBookingStatus string

const (
	FacilityBooked   FacilityBookingStatus = "booked"
	FacilityReleased FacilityBookingStatus = "released"
)

type Coordinator struct {
	ID   string `db:"coordinator_id"`
	Name string `db:"display_name"`
}

type AvailabilityWindow struct {
	ID            string     `db:"window_id"`
	CoordinatorID string     `db:"coordinator_id"`
	DayOfWeek     int        `db:"day_of_week"`
	StartTime     time.Time  `db:"start_time"`
	EndTime       time.Time  `db:"end_time"`
	EffectiveFrom time.Time  `db:"effective_from"`
	EffectiveTo   *time.Time `db:"effective_to"`
}

type TimeOffRequest struct {
	ID            string        `db:"time_off_id"`
	CoordinatorID string        `db:"coordinator_id"`
	StartDate     time.Time     `db:"start_date"`
	EndDate       time.Time     `db:"end_date"`
	Status        TimeOffStatus `db:"status"`
	Reason        *string       `db:"reason"`
}

type Facility struct {
	ID     string `db:"facility_id"`
	Name   string `db:"facility_name"`
	Active bool   `db:"is_active"`
}

type StudyVisit struct {
	ID              string `db:"study_visit_id"`
	StudyID         string `db:"study_id"`
	Name            string `db:"visit_name"`
	VisitNumber     int    `db:"visit_number"`
	VisitType       string `db:"visit_type"`
	DurationMinutes int    `db:"duration_minutes"`
}

type ParticipantVisit struct {
	ID               string           `db:"visit_id"`
	ParticipantID    string           `db:"participant_id"`
	StudyVisitID     string           `db:"study_visit_id"`
	ScheduledDate    time.Time        `db:"scheduled_date"`
	CoordinatorID    *string          `db:"coordinator_id"`
	SchedulingMethod SchedulingMethod `db:"scheduling_method"`
	Status           VisitStatus      `db:"status"`
	Notes            *string          `db:"notes"`
	NoShowReason     *string          `db:"no_show_reason"`
	CheckInTime      *time.Time       `db:"check_in_time"`
	CheckOutTime     *time.Time       `db:"check_out_time"`
	WaitTimeMinutes  *int             `db:"wait_time_minutes"`
	CompletedDate    *time.Time       `db:"completed_date"`
}

type FacilityBooking struct {
	ID         string                `db:"facility_booking_id"`
	FacilityID string                `db:"facility_id"`
	VisitID    string                `db:"visit_id"`
	Start      time.Time             `db:"start_time"`
	End        time.Time             `db:"end_time"`
	Purpose    string                `db:"purpose"`
	BookedBy   string                `db:"booked_by"`
	Status     FacilityBookingStatus `db:"status"`
}

// VisitDetail is a ParticipantVisit joined with the summaries the list and
// mutation endpoints return alongside it.
type VisitDetail struct {
	ParticipantVisit
	ParticipantName      string `db:"participant_name"`
	StudyID              string `db:"study_id"`
	VisitName            string `db:"visit_name"`
	VisitNumber          int    `db:"visit_number"`
	VisitDurationMinutes int    `db:"duration_minutes"`
	CoordinatorName      *string
	FacilityBooking      *FacilityBooking
}
