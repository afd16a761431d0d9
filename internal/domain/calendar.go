package domain

import (
	"fmt"
	"time"
)

// CalendarBlock is a persisted one-off exclusion window on a user's
// calendar (an existing booking, a focus block, personal time, or a
// single-day no-meeting block).
type CalendarBlock struct {
	ID        string
	UserID    string
	Start     time.Time
	End       time.Time
	Type      BlockType
	Reason    string
	CreatedAt time.Time
}

func (b CalendarBlock) Validate() error {
	if b.UserID == "" {
		return fmt.Errorf("block user id is required")
	}
	if !b.End.After(b.Start) {
		return fmt.Errorf("block end must be after start")
	}
	switch b.Type {
	case BlockNoMeetingDay, BlockExistingBooking, BlockFocusTime, BlockPersonalTime:
	default:
		return fmt.Errorf("unknown block type %q", b.Type)
	}
	return nil
}

// Interval converts the persisted block into the provider-facing value.
func (b CalendarBlock) Interval() BlockedInterval {
	return BlockedInterval{Start: b.Start, End: b.End, Type: b.Type, Reason: b.Reason}
}

// NoMeetingRule is a recurring weekly no-meeting day configuration.
type NoMeetingRule struct {
	ID        string
	UserID    string
	Weekday   time.Weekday
	Active    bool
	CreatedAt time.Time
}

// EnergySample is a single self-reported or inferred energy observation,
// the raw material for pattern analysis.
type EnergySample struct {
	ID         string
	UserID     string
	RecordedAt time.Time
	Level      float64 // 0..100
}

func (s EnergySample) Validate() error {
	if s.UserID == "" {
		return fmt.Errorf("energy sample user id is required")
	}
	if s.Level < 0 || s.Level > 100 {
		return fmt.Errorf("energy level must be in [0,100], got %.1f", s.Level)
	}
	return nil
}
