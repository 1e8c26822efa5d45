package scheduler

import (
	"sort"
	"time"
)

// DefaultMaxResults caps the ranked result set handed back to the caller.
const DefaultMaxResults = 20

const (
	baseScore           = 100
	morningBonus        = 20 // start hour in [9, 12)
	middayBonus         = 10 // start hour in [12, 14)
	afternoonBonus      = 5  // start hour in [14, 17)
	weekdayBonus        = 15
	proximityBonus      = 10 // fewer than 7 days out
	perVisitLoadPenalty = 5
)

// ScoreSlot assigns the heuristic desirability score: a base of 100 with
// independent additive adjustments, floored at zero. dayLoad is the number
// of blocking visits the slot's coordinator already has on that date.
func ScoreSlot(s Slot, dayLoad int, now time.Time) int {
	score := baseScore

	switch hour := s.Start.Hour(); {
	case hour >= 9 && hour < 12:
		score += morningBonus
	case hour >= 12 && hour < 14:
		score += middayBonus
	case hour >= 14 && hour < 17:
		score += afternoonBonus
	}

	if wd := s.Start.Weekday(); wd >= time.Monday && wd <= time.Friday {
		score += weekdayBonus
	}

	score -= dayLoad * perVisitLoadPenalty

	loc := now.Location()
	if truncateToDate(s.Start, loc).Sub(truncateToDate(now, loc)) < 7*24*time.Hour {
		score += proximityBonus
	}

	if score < 0 {
		score = 0
	}

	return score
}

// Rank scores every slot against the snapshot, sorts by score descending and
// returns at most max slots. Ties keep generation order (stable sort).
func Rank(slots []Slot, snap *Snapshot, now time.Time, max int) []Slot {
	if max <= 0 {
		max = DefaultMaxResults
	}

	ranked := make([]Slot, len(slots))
	copy(ranked, slots)

	for i := range ranked {
		load := dayLoad(snap.Visits[ranked[i].CoordinatorID], ranked[i].Start)
		ranked[i].Score = ScoreSlot(ranked[i], load, now)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > max {
		ranked = ranked[:max]
	}

	return ranked
}

// dayLoad counts the coordinator's blocking visits on the slot's calendar
// date. Measured independently from the conflict check: a visit earlier the
// same day never overlaps the slot yet still makes the coordinator busier.
func dayLoad(visits []BookedVisit, day time.Time) int {
	loc := day.Location()
	d := truncateToDate(day, loc)

	load := 0
	for _, v := range visits {
		if !v.Status.Blocking() {
			continue
		}
		if truncateToDate(v.Start, loc).Equal(d) {
			load++
		}
	}

	return load
}
