package scheduler

import (
	"testing"
	"time"

	"visit-scheduler/internal/models"
)

func clock(hour, minute int) time.Time {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// monday is a fixed reference Monday used across the package tests.
var monday = date(2026, time.January, 5)

func window(day int, startHour, endHour int, from time.Time, to *time.Time) models.AvailabilityWindow {
	return models.AvailabilityWindow{
		ID:            "w1",
		CoordinatorID: "c1",
		DayOfWeek:     day,
		StartTime:     clock(startHour, 0),
		EndTime:       clock(endHour, 0),
		EffectiveFrom: from,
		EffectiveTo:   to,
	}
}

func TestOpenIntervals(t *testing.T) {
	effectiveFrom := date(2025, time.January, 1)
	expired := date(2025, time.December, 31)

	tests := []struct {
		name    string
		windows []models.AvailabilityWindow
		timeOff []models.TimeOffRequest
		want    []Interval
	}{
		{
			name:    "single window on matching weekday",
			windows: []models.AvailabilityWindow{window(1, 9, 12, effectiveFrom, nil)},
			want: []Interval{
				{Start: monday.Add(9 * time.Hour), End: monday.Add(12 * time.Hour)},
			},
		},
		{
			name:    "no window for weekday",
			windows: []models.AvailabilityWindow{window(2, 9, 12, effectiveFrom, nil)},
			want:    nil,
		},
		{
			name:    "window not yet effective",
			windows: []models.AvailabilityWindow{window(1, 9, 12, date(2026, time.February, 1), nil)},
			want:    nil,
		},
		{
			name:    "window expired",
			windows: []models.AvailabilityWindow{window(1, 9, 12, effectiveFrom, &expired)},
			want:    nil,
		},
		{
			name: "split shifts sorted by start",
			windows: []models.AvailabilityWindow{
				window(1, 14, 17, effectiveFrom, nil),
				window(1, 9, 12, effectiveFrom, nil),
			},
			want: []Interval{
				{Start: monday.Add(9 * time.Hour), End: monday.Add(12 * time.Hour)},
				{Start: monday.Add(14 * time.Hour), End: monday.Add(17 * time.Hour)},
			},
		},
		{
			name:    "degenerate window skipped",
			windows: []models.AvailabilityWindow{window(1, 12, 12, effectiveFrom, nil)},
			want:    nil,
		},
		{
			name:    "approved time off suppresses everything",
			windows: []models.AvailabilityWindow{window(1, 9, 12, effectiveFrom, nil)},
			timeOff: []models.TimeOffRequest{{
				CoordinatorID: "c1",
				StartDate:     date(2026, time.January, 5),
				EndDate:       date(2026, time.January, 9),
				Status:        models.TimeOffApproved,
			}},
			want: nil,
		},
		{
			name:    "pending time off is ignored",
			windows: []models.AvailabilityWindow{window(1, 9, 12, effectiveFrom, nil)},
			timeOff: []models.TimeOffRequest{{
				CoordinatorID: "c1",
				StartDate:     date(2026, time.January, 5),
				EndDate:       date(2026, time.January, 9),
				Status:        models.TimeOffPending,
			}},
			want: []Interval{
				{Start: monday.Add(9 * time.Hour), End: monday.Add(12 * time.Hour)},
			},
		},
		{
			name:    "time off ending before the day",
			windows: []models.AvailabilityWindow{window(1, 9, 12, effectiveFrom, nil)},
			timeOff: []models.TimeOffRequest{{
				CoordinatorID: "c1",
				StartDate:     date(2026, time.January, 1),
				EndDate:       date(2026, time.January, 4),
				Status:        models.TimeOffApproved,
			}},
			want: []Interval{
				{Start: monday.Add(9 * time.Hour), End: monday.Add(12 * time.Hour)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OpenIntervals(monday, tt.windows, tt.timeOff)

			if len(got) != len(tt.want) {
				t.Fatalf("got %d intervals, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if !got[i].Start.Equal(tt.want[i].Start) || !got[i].End.Equal(tt.want[i].End) {
					t.Errorf("interval %d = [%v, %v), want [%v, %v)",
						i, got[i].Start, got[i].End, tt.want[i].Start, tt.want[i].End)
				}
			}
		})
	}
}

func TestOpenIntervalsInclusiveTimeOffBounds(t *testing.T) {
	windows := []models.AvailabilityWindow{window(1, 9, 12, date(2025, time.January, 1), nil)}

	for _, day := range []time.Time{date(2026, time.January, 5), date(2026, time.January, 9)} {
		timeOff := []models.TimeOffRequest{{
			StartDate: date(2026, time.January, 5),
			EndDate:   date(2026, time.January, 9),
			Status:    models.TimeOffApproved,
		}}
		if got := OpenIntervals(day, windows, timeOff); got != nil {
			t.Errorf("day %v inside inclusive time-off range produced intervals: %v", day, got)
		}
	}
}
