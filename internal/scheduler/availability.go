package scheduler

import (
	"sort"
	"time"

	"visit-scheduler/internal/models"
)

// Interval is a half-open [Start, End) span within one calendar day.
type Interval struct {
	Start time.Time
	End   time.Time
}

// OpenIntervals resolves the open time-of-day intervals for one coordinator
// on one concrete calendar date. Time-off is all-day: any approved request
// whose date range contains the day suppresses every window, regardless of
// hours. Absence of data is a valid "not available" result, not an error.
func OpenIntervals(day time.Time, windows []models.AvailabilityWindow, timeOff []models.TimeOffRequest) []Interval {
	loc := day.Location()
	d := truncateToDate(day, loc)

	for _, req := range timeOff {
		if req.Status != models.TimeOffApproved {
			continue
		}
		start := truncateToDate(req.StartDate, loc)
		end := truncateToDate(req.EndDate, loc)
		if !d.Before(start) && !d.After(end) {
			return nil
		}
	}

	var intervals []Interval

	for _, w := range windows {
		if w.DayOfWeek != int(d.Weekday()) {
			continue
		}
		if d.Before(truncateToDate(w.EffectiveFrom, loc)) {
			continue
		}
		if w.EffectiveTo != nil && d.After(truncateToDate(*w.EffectiveTo, loc)) {
			continue
		}

		start := time.Date(d.Year(), d.Month(), d.Day(), w.StartTime.Hour(), w.StartTime.Minute(), 0, 0, loc)
		end := time.Date(d.Year(), d.Month(), d.Day(), w.EndTime.Hour(), w.EndTime.Minute(), 0, 0, loc)
		if !end.After(start) {
			continue
		}

		intervals = append(intervals, Interval{Start: start, End: end})
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})

	return intervals
}

// truncateToDate возвращает дату с нулевым временем в указанной локации
func truncateToDate(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
