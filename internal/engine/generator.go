package engine

import (
	"time"

	"github.com/pvermeer/horae/internal/domain"
)

// GenerateConfig controls candidate enumeration. Values come from the
// application config; the engine itself has no defaults.
type GenerateConfig struct {
	Granularity time.Duration

	// Daily candidate windows by flexibility, as local hours.
	CoreStartHour     int
	CoreEndHour       int
	BusinessStartHour int
	BusinessEndHour   int
	ExtendedStartHour int
	ExtendedEndHour   int

	// FocusOverridePriority is the minimum meeting priority allowed to claim
	// a slot inside a focus_time block.
	FocusOverridePriority int
}

// GenerateSlots enumerates unscored candidate slots for a meeting within
// [horizonStart, horizonEnd), ascending by start time. Candidates
// overlapping a hard block are discarded unconditionally; focus_time blocks
// are discarded unless the meeting's priority meets the override threshold.
// An empty result means the meeting is unschedulable, not an error.
func GenerateSlots(m domain.Meeting, horizonStart, horizonEnd time.Time, blocked []domain.BlockedInterval, cfg GenerateConfig) []domain.TimeSlot {
	if !horizonEnd.After(horizonStart) {
		return nil
	}

	duration := m.Duration()
	startHour, endHour := candidateWindow(m.Flexibility, cfg)

	var slots []domain.TimeSlot
	current := alignToGrid(horizonStart, cfg.Granularity)
	for current.Before(horizonEnd) {
		dayStart := atHour(current, startHour)
		dayEnd := atHour(current, endHour)

		if current.Before(dayStart) {
			current = dayStart
			continue
		}

		end := current.Add(duration)
		if end.After(dayEnd) {
			current = atHour(current.AddDate(0, 0, 1), startHour)
			continue
		}
		if end.After(horizonEnd) {
			break
		}

		if admissible(m, current, end, blocked, cfg) {
			slots = append(slots, domain.TimeSlot{Start: current, End: end})
		}
		current = current.Add(cfg.Granularity)
	}
	return slots
}

// OverlapsFocus reports whether [start, end) intersects any focus_time
// block. Used to annotate slots won by a focus-time override.
func OverlapsFocus(start, end time.Time, blocked []domain.BlockedInterval) bool {
	for _, b := range blocked {
		if b.Type == domain.BlockFocusTime && b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

func admissible(m domain.Meeting, start, end time.Time, blocked []domain.BlockedInterval, cfg GenerateConfig) bool {
	for _, b := range blocked {
		if !b.Overlaps(start, end) {
			continue
		}
		if b.Type.IsHard() {
			return false
		}
		if b.Type == domain.BlockFocusTime && m.Priority < cfg.FocusOverridePriority {
			return false
		}
	}
	return true
}

func candidateWindow(f domain.Flexibility, cfg GenerateConfig) (startHour, endHour int) {
	switch f {
	case domain.FlexibilityLow:
		return cfg.CoreStartHour, cfg.CoreEndHour
	case domain.FlexibilityHigh:
		return cfg.ExtendedStartHour, cfg.ExtendedEndHour
	default:
		return cfg.BusinessStartHour, cfg.BusinessEndHour
	}
}

// alignToGrid rounds t up to the next granularity boundary, measured from
// midnight so candidates land on wall-clock marks.
func alignToGrid(t time.Time, granularity time.Duration) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := t.Sub(midnight)
	aligned := offset.Truncate(granularity)
	if aligned != offset {
		aligned += granularity
	}
	return midnight.Add(aligned)
}

func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}
