package engine

import (
	"sort"

	"github.com/pvermeer/horae/internal/app"
	"github.com/pvermeer/horae/internal/domain"
)

// OrderMeetings sorts meetings by the deterministic assignment order:
// 1. Priority: higher first
// 2. Flexibility: less flexible first (they have fewer viable slots)
// 3. ID: lexical ascending
// The least flexible, highest-priority meetings get first pick of slots.
func OrderMeetings(meetings []domain.Meeting) []domain.Meeting {
	ordered := make([]domain.Meeting, len(meetings))
	copy(ordered, meetings)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		fa, fb := domain.FlexibilityOrdinal(a.Flexibility), domain.FlexibilityOrdinal(b.Flexibility)
		if fa != fb {
			return fa < fb
		}
		return a.ID < b.ID
	})
	return ordered
}

// RankSlots sorts scored slots by the deterministic canonical rules:
// 1. Score: higher first
// 2. Start time: earlier first (prefer the soonest reasonable slot)
func RankSlots(slots []app.ScoredSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Slot.Start.Before(b.Slot.Start)
	})
}

// BestSlot returns the top-ranked slot, or nil when no candidates exist.
func BestSlot(slots []app.ScoredSlot) *app.ScoredSlot {
	if len(slots) == 0 {
		return nil
	}
	RankSlots(slots)
	return &slots[0]
}
