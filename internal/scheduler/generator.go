package scheduler

import (
	"time"

	"visit-scheduler/internal/models"
)

// DefaultStepMinutes is the cursor advance between candidate start times.
const DefaultStepMinutes = 30

// Snapshot is the read-only view of scheduling inputs for one generation
// call, keyed by coordinator id.
type Snapshot struct {
	Coordinators []models.Coordinator
	Windows      map[string][]models.AvailabilityWindow
	TimeOff      map[string][]models.TimeOffRequest
	Visits       map[string][]BookedVisit
}

// Slot is a transient candidate appointment; it is never persisted.
type Slot struct {
	Start           time.Time
	End             time.Time
	CoordinatorID   string
	CoordinatorName string
	Score           int
}

// Generate enumerates every feasible candidate slot of the given duration
// across [from, to] inclusive, for every coordinator in the snapshot.
//
// The cursor always advances by step regardless of duration, so consecutive
// candidates may overlap each other. That is intentional: it multiplies the
// convenient start times offered to the caller.
func Generate(snap *Snapshot, from, to time.Time, duration, step time.Duration) []Slot {
	if duration <= 0 {
		return nil
	}
	if step <= 0 {
		step = DefaultStepMinutes * time.Minute
	}

	loc := from.Location()
	first := truncateToDate(from, loc)
	last := truncateToDate(to, loc)

	var slots []Slot

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		for _, c := range snap.Coordinators {
			intervals := OpenIntervals(d, snap.Windows[c.ID], snap.TimeOff[c.ID])

			for _, open := range intervals {
				for cur := open.Start; !cur.Add(duration).After(open.End); cur = cur.Add(step) {
					candidate := Interval{Start: cur, End: cur.Add(duration)}

					if HasConflict(candidate, snap.Visits[c.ID]) {
						continue
					}

					slots = append(slots, Slot{
						Start:           candidate.Start,
						End:             candidate.End,
						CoordinatorID:   c.ID,
						CoordinatorName: c.Name,
					})
				}
			}
		}
	}

	return slots
}
