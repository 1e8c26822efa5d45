package scheduler

import (
	"testing"
	"time"

	"visit-scheduler/internal/models"
)

func snapshotOneCoordinator(windows []models.AvailabilityWindow, timeOff []models.TimeOffRequest, visits []BookedVisit) *Snapshot {
	return &Snapshot{
		Coordinators: []models.Coordinator{{ID: "c1", Name: "Dana Reyes"}},
		Windows:      map[string][]models.AvailabilityWindow{"c1": windows},
		TimeOff:      map[string][]models.TimeOffRequest{"c1": timeOff},
		Visits:       map[string][]BookedVisit{"c1": visits},
	}
}

func TestGenerateMondayMorning(t *testing.T) {
	snap := snapshotOneCoordinator(
		[]models.AvailabilityWindow{window(1, 9, 12, date(2025, time.January, 1), nil)},
		nil, nil,
	)

	slots := Generate(snap, monday, monday, 60*time.Minute, 30*time.Minute)

	wantStarts := []time.Time{
		monday.Add(9 * time.Hour),
		monday.Add(9*time.Hour + 30*time.Minute),
		monday.Add(10 * time.Hour),
		monday.Add(10*time.Hour + 30*time.Minute),
		monday.Add(11 * time.Hour),
	}

	if len(slots) != len(wantStarts) {
		t.Fatalf("got %d slots, want %d: %+v", len(slots), len(wantStarts), slots)
	}

	for i, slot := range slots {
		if !slot.Start.Equal(wantStarts[i]) {
			t.Errorf("slot %d starts at %v, want %v", i, slot.Start, wantStarts[i])
		}
		if got := slot.End.Sub(slot.Start); got != 60*time.Minute {
			t.Errorf("slot %d duration = %v, want 60m", i, got)
		}
		if slot.CoordinatorID != "c1" || slot.CoordinatorName != "Dana Reyes" {
			t.Errorf("slot %d carries wrong coordinator: %+v", i, slot)
		}
	}
}

func TestGenerateExcludesTimeOff(t *testing.T) {
	snap := snapshotOneCoordinator(
		[]models.AvailabilityWindow{window(1, 9, 12, date(2025, time.January, 1), nil)},
		[]models.TimeOffRequest{{
			StartDate: monday,
			EndDate:   monday,
			Status:    models.TimeOffApproved,
		}},
		nil,
	)

	if slots := Generate(snap, monday, monday, 60*time.Minute, 30*time.Minute); len(slots) != 0 {
		t.Fatalf("expected no slots on an approved time-off day, got %d", len(slots))
	}
}

func TestGenerateSkipsConflicts(t *testing.T) {
	snap := snapshotOneCoordinator(
		[]models.AvailabilityWindow{window(1, 9, 12, date(2025, time.January, 1), nil)},
		nil,
		[]BookedVisit{{
			CoordinatorID:   "c1",
			Start:           monday.Add(10 * time.Hour),
			DurationMinutes: 60,
			Status:          models.VisitScheduled,
		}},
	)

	slots := Generate(snap, monday, monday, 60*time.Minute, 30*time.Minute)

	// 09:30, 10:00 and 10:30 all overlap the 10:00-11:00 visit.
	wantStarts := []time.Time{
		monday.Add(9 * time.Hour),
		monday.Add(11 * time.Hour),
	}

	if len(slots) != len(wantStarts) {
		t.Fatalf("got %d slots, want %d: %+v", len(slots), len(wantStarts), slots)
	}
	for i, slot := range slots {
		if !slot.Start.Equal(wantStarts[i]) {
			t.Errorf("slot %d starts at %v, want %v", i, slot.Start, wantStarts[i])
		}
	}
}

func TestGenerateNoConflictInvariant(t *testing.T) {
	visits := []BookedVisit{
		{CoordinatorID: "c1", Start: monday.Add(9*time.Hour + 30*time.Minute), DurationMinutes: 45, Status: models.VisitScheduled},
		{CoordinatorID: "c1", Start: monday.Add(11 * time.Hour), DurationMinutes: 30, Status: models.VisitConfirmed},
	}
	snap := snapshotOneCoordinator(
		[]models.AvailabilityWindow{window(1, 8, 17, date(2025, time.January, 1), nil)},
		nil, visits,
	)

	for _, slot := range Generate(snap, monday, monday, 30*time.Minute, 30*time.Minute) {
		if HasConflict(Interval{Start: slot.Start, End: slot.End}, visits) {
			t.Errorf("generated slot [%v, %v) overlaps an existing visit", slot.Start, slot.End)
		}
	}
}

func TestGenerateEdgeCases(t *testing.T) {
	windows := []models.AvailabilityWindow{window(1, 9, 12, date(2025, time.January, 1), nil)}

	t.Run("inverted range", func(t *testing.T) {
		snap := snapshotOneCoordinator(windows, nil, nil)
		if slots := Generate(snap, monday, monday.AddDate(0, 0, -1), 60*time.Minute, 30*time.Minute); len(slots) != 0 {
			t.Fatalf("inverted range produced %d slots", len(slots))
		}
	})

	t.Run("duration exceeds window", func(t *testing.T) {
		snap := snapshotOneCoordinator(windows, nil, nil)
		if slots := Generate(snap, monday, monday, 4*time.Hour, 30*time.Minute); len(slots) != 0 {
			t.Fatalf("oversized duration produced %d slots", len(slots))
		}
	})

	t.Run("no coordinators", func(t *testing.T) {
		snap := &Snapshot{}
		if slots := Generate(snap, monday, monday, 60*time.Minute, 30*time.Minute); len(slots) != 0 {
			t.Fatalf("empty roster produced %d slots", len(slots))
		}
	})

	t.Run("non-positive duration", func(t *testing.T) {
		snap := snapshotOneCoordinator(windows, nil, nil)
		if slots := Generate(snap, monday, monday, 0, 30*time.Minute); len(slots) != 0 {
			t.Fatalf("zero duration produced %d slots", len(slots))
		}
	})
}

func TestGenerateMultiDayRange(t *testing.T) {
	// Window applies Mondays only; a Monday-to-Wednesday range yields Monday slots once.
	snap := snapshotOneCoordinator(
		[]models.AvailabilityWindow{window(1, 9, 11, date(2025, time.January, 1), nil)},
		nil, nil,
	)

	slots := Generate(snap, monday, monday.AddDate(0, 0, 2), 60*time.Minute, 30*time.Minute)

	// 09:00, 09:30 and 10:00 fit in a two-hour window.
	if len(slots) != 3 {
		t.Fatalf("got %d slots, want 3: %+v", len(slots), slots)
	}
	for _, slot := range slots {
		if slot.Start.Weekday() != time.Monday {
			t.Errorf("slot on %v, want Monday only", slot.Start.Weekday())
		}
	}
}
