package scheduler

import (
	"time"

	"visit-scheduler/internal/models"
)

// DefaultVisitMinutes is assumed for any existing visit whose template does
// not carry a duration.
const DefaultVisitMinutes = 60

// BookedVisit is the slice of a persisted visit the scheduler needs to
// reason about a coordinator's calendar.
type BookedVisit struct {
	CoordinatorID   string
	Start           time.Time
	DurationMinutes int
	Status          models.VisitStatus
}

func (v BookedVisit) Interval() Interval {
	minutes := v.DurationMinutes
	if minutes <= 0 {
		minutes = DefaultVisitMinutes
	}

	return Interval{
		Start: v.Start,
		End:   v.Start.Add(time.Duration(minutes) * time.Minute),
	}
}

// HasConflict reports whether the candidate interval overlaps any blocking
// visit, using open-interval comparison: touching boundaries do not conflict.
// Cancelled, no-show and completed visits never block.
func HasConflict(candidate Interval, visits []BookedVisit) bool {
	for _, v := range visits {
		if !v.Status.Blocking() {
			continue
		}

		booked := v.Interval()
		if candidate.Start.Before(booked.End) && candidate.End.After(booked.Start) {
			return true
		}
	}

	return false
}
