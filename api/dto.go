package api

import "time"

// CandidateSlot is one ranked suggestion from the slot finder. It is
// transient: consumed by the caller or discarded, never persisted.
type CandidateSlot struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	CoordinatorID   string    `json:"coordinatorId"`
	CoordinatorName string    `json:"coordinatorName"`
	Score           int       `json:"score"`
	Availability    string    `json:"availability"`
}

type VisitCreateRequest struct {
	ParticipantID    string  `json:"participantId"`
	StudyVisitID     string  `json:"studyVisitId"`
	ScheduledDate    string  `json:"scheduledDate"`
	CoordinatorID    *string `json:"coordinatorId,omitempty"`
	FacilityID       *string `json:"facilityId,omitempty"`
	SchedulingMethod *string `json:"schedulingMethod,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

type VisitUpdateRequest struct {
	ID            string  `json:"id"`
	ScheduledDate *string `json:"scheduledDate,omitempty"`
	CoordinatorID *string `json:"coordinatorId,omitempty"`
	Status        *string `json:"status,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	NoShowReason  *string `json:"noShowReason,omitempty"`
	CheckInTime   *string `json:"checkInTime,omitempty"`
	CheckOutTime  *string `json:"checkOutTime,omitempty"`
}

type ParticipantSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type StudyVisitSummary struct {
	ID              string `json:"id"`
	StudyID         string `json:"studyId"`
	Name            string `json:"name"`
	VisitNumber     int    `json:"visitNumber"`
	DurationMinutes int    `json:"durationMinutes"`
}

type CoordinatorSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type FacilityBookingSummary struct {
	ID         string    `json:"id"`
	FacilityID string    `json:"facilityId"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Purpose    string    `json:"purpose"`
	BookedBy   string    `json:"bookedBy"`
	Status     string    `json:"status"`
}

type VisitResponse struct {
	ID               string                  `json:"id"`
	ScheduledDate    time.Time               `json:"scheduledDate"`
	Status           string                  `json:"status"`
	SchedulingMethod string                  `json:"schedulingMethod"`
	Notes            *string                 `json:"notes,omitempty"`
	NoShowReason     *string                 `json:"noShowReason,omitempty"`
	CheckInTime      *time.Time              `json:"checkInTime,omitempty"`
	CheckOutTime     *time.Time              `json:"checkOutTime,omitempty"`
	WaitTimeMinutes  *int                    `json:"waitTimeMinutes,omitempty"`
	CompletedDate    *time.Time              `json:"completedDate,omitempty"`
	Participant      ParticipantSummary      `json:"participant"`
	StudyVisit       StudyVisitSummary       `json:"studyVisit"`
	Coordinator      *CoordinatorSummary     `json:"coordinator,omitempty"`
	FacilityBooking  *FacilityBookingSummary `json:"facilityBooking,omitempty"`
}

type AvailabilityWindowRequest struct {
	CoordinatorID string  `json:"coordinator_id"`
	DayOfWeek     int     `json:"day_of_week"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to,omitempty"`
}

type AvailabilityWindowResponse struct {
	ID            string  `json:"id"`
	CoordinatorID string  `json:"coordinator_id"`
	DayOfWeek     int     `json:"day_of_week"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to,omitempty"`
}

type TimeOffRequestBody struct {
	CoordinatorID string  `json:"coordinator_id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Status        string  `json:"status"`
	Reason        *string `json:"reason,omitempty"`
}

type TimeOffResponse struct {
	ID            string  `json:"id"`
	CoordinatorID string  `json:"coordinator_id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Status        string  `json:"status"`
	Reason        *string `json:"reason,omitempty"`
}
