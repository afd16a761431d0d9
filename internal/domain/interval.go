package domain

import "time"

// TimeSlot is a candidate or assigned [Start, End) interval of exactly a
// meeting's duration. Score is zero until the slot has been scored.
type TimeSlot struct {
	Start time.Time
	End   time.Time
	Score float64
}

// Overlaps reports whether two half-open intervals intersect.
func (s TimeSlot) Overlaps(start, end time.Time) bool {
	return s.Start.Before(end) && s.End.After(start)
}

// BlockedInterval is a hard- or soft-exclusion window supplied by a
// constraint source. Read-only input to the engine.
type BlockedInterval struct {
	Start  time.Time
	End    time.Time
	Type   BlockType
	Reason string
}

// Overlaps reports whether the block intersects the half-open interval
// [start, end).
func (b BlockedInterval) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && b.End.After(start)
}

// EnergyPoint is a predicted energy level at a timestamp, with the
// prediction's confidence. Supplied by the energy provider; read-only.
type EnergyPoint struct {
	At         time.Time
	Level      float64 // 0..100
	Confidence float64 // 0..1
}

// Window is a [Start, End) query range.
type Window struct {
	Start time.Time
	End   time.Time
}
