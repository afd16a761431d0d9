package domain

import (
	"fmt"
	"time"
)

const (
	PriorityMin = 1
	PriorityMax = 10
)

// Meeting is the schedulable unit. Immutable for the duration of one
// optimization run; the Scheduled* fields are persistence-side state and
// are never read by the engine.
type Meeting struct {
	ID           string
	UserID       string
	Title        string
	DurationMin  int
	Type         MeetingType
	Participants []string
	Priority     int
	Flexibility  Flexibility

	ScheduledStart *time.Time
	ScheduledEnd   *time.Time
	ScheduledScore *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the caller-supplied invariants. Violations fail the whole
// call; they are never silently coerced.
func (m Meeting) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("meeting id is required")
	}
	if m.DurationMin <= 0 {
		return fmt.Errorf("meeting %s: duration must be positive, got %d", m.ID, m.DurationMin)
	}
	if !ValidMeetingTypes[string(m.Type)] {
		return fmt.Errorf("meeting %s: unknown meeting type %q", m.ID, m.Type)
	}
	if m.Priority < PriorityMin || m.Priority > PriorityMax {
		return fmt.Errorf("meeting %s: priority must be in [%d,%d], got %d", m.ID, PriorityMin, PriorityMax, m.Priority)
	}
	switch m.Flexibility {
	case FlexibilityLow, FlexibilityMedium, FlexibilityHigh:
	default:
		return fmt.Errorf("meeting %s: unknown flexibility %q", m.ID, m.Flexibility)
	}
	return nil
}

// Duration returns the meeting length as a time.Duration.
func (m Meeting) Duration() time.Duration {
	return time.Duration(m.DurationMin) * time.Minute
}
