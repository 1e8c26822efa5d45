package scheduler

import (
	"testing"
	"time"

	"visit-scheduler/internal/models"
)

func TestScoreSlot(t *testing.T) {
	// Evaluation time far from every slot date so the proximity bonus is off
	// unless a case opts in.
	farNow := date(2025, time.June, 1)
	nearNow := monday

	saturday := date(2026, time.January, 10)

	slotAt := func(day time.Time, hour int) Slot {
		return Slot{
			Start:         day.Add(time.Duration(hour) * time.Hour),
			End:           day.Add(time.Duration(hour+1) * time.Hour),
			CoordinatorID: "c1",
		}
	}

	tests := []struct {
		name    string
		slot    Slot
		dayLoad int
		now     time.Time
		want    int
	}{
		{"weekday morning", slotAt(monday, 9), 0, farNow, 100 + 20 + 15},
		{"last morning hour", slotAt(monday, 11), 0, farNow, 100 + 20 + 15},
		{"weekday midday", slotAt(monday, 12), 0, farNow, 100 + 10 + 15},
		{"weekday afternoon", slotAt(monday, 14), 0, farNow, 100 + 5 + 15},
		{"weekday evening no bonus", slotAt(monday, 18), 0, farNow, 100 + 15},
		{"early weekday no bonus", slotAt(monday, 8), 0, farNow, 100 + 15},
		{"saturday morning", slotAt(saturday, 9), 0, farNow, 100 + 20},
		{"coordinator load penalty", slotAt(monday, 9), 3, farNow, 100 + 20 + 15 - 15},
		{"proximity bonus same week", slotAt(monday, 9), 0, nearNow, 100 + 20 + 15 + 10},
		{"proximity bonus six days out", slotAt(monday, 9), 0, monday.AddDate(0, 0, -6), 100 + 20 + 15 + 10},
		{"no proximity bonus seven days out", slotAt(monday, 9), 0, monday.AddDate(0, 0, -7), 100 + 20 + 15},
		{"score floored at zero", slotAt(saturday, 3), 25, farNow, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreSlot(tt.slot, tt.dayLoad, tt.now); got != tt.want {
				t.Errorf("ScoreSlot() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRank(t *testing.T) {
	now := date(2025, time.June, 1)
	saturday := date(2026, time.January, 10)

	var slots []Slot
	// Saturday slots score lower than Monday slots at the same hour.
	for hour := 9; hour < 12; hour++ {
		slots = append(slots, Slot{
			Start:         saturday.Add(time.Duration(hour) * time.Hour),
			End:           saturday.Add(time.Duration(hour+1) * time.Hour),
			CoordinatorID: "c1",
		})
		slots = append(slots, Slot{
			Start:         monday.Add(time.Duration(hour) * time.Hour),
			End:           monday.Add(time.Duration(hour+1) * time.Hour),
			CoordinatorID: "c1",
		})
	}

	snap := snapshotOneCoordinator(nil, nil, nil)

	ranked := Rank(slots, snap, now, 4)

	if len(ranked) != 4 {
		t.Fatalf("got %d ranked slots, want 4", len(ranked))
	}

	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("ranking not score-descending at %d: %d > %d", i, ranked[i].Score, ranked[i-1].Score)
		}
	}

	// The three Monday slots (135 each) must all rank above any Saturday slot.
	for i := 0; i < 3; i++ {
		if ranked[i].Start.Weekday() != time.Monday {
			t.Errorf("slot %d is on %v, expected weekday slots first", i, ranked[i].Start.Weekday())
		}
	}

	// Nothing cut from the list may outscore anything kept.
	full := Rank(slots, snap, now, len(slots))
	cutoff := ranked[len(ranked)-1].Score
	for _, slot := range full[4:] {
		if slot.Score > cutoff {
			t.Errorf("dropped slot scores %d, above kept minimum %d", slot.Score, cutoff)
		}
	}
}

func TestRankAccountsForDayLoad(t *testing.T) {
	now := date(2025, time.June, 1)

	slot := Slot{
		Start:         monday.Add(9 * time.Hour),
		End:           monday.Add(10 * time.Hour),
		CoordinatorID: "c1",
	}

	// Two blocking visits earlier that Monday, one cancelled, one on another day.
	snap := snapshotOneCoordinator(nil, nil, []BookedVisit{
		{CoordinatorID: "c1", Start: monday.Add(7 * time.Hour), DurationMinutes: 60, Status: models.VisitScheduled},
		{CoordinatorID: "c1", Start: monday.Add(8 * time.Hour), DurationMinutes: 60, Status: models.VisitConfirmed},
		{CoordinatorID: "c1", Start: monday.Add(13 * time.Hour), DurationMinutes: 60, Status: models.VisitCancelled},
		{CoordinatorID: "c1", Start: monday.AddDate(0, 0, 1).Add(9 * time.Hour), DurationMinutes: 60, Status: models.VisitScheduled},
	})

	ranked := Rank([]Slot{slot}, snap, now, 20)

	want := 100 + 20 + 15 - 2*5
	if ranked[0].Score != want {
		t.Errorf("score = %d, want %d", ranked[0].Score, want)
	}
}
