package domain

type MeetingType string

const (
	MeetingCollaborative  MeetingType = "collaborative"
	MeetingDeepWork       MeetingType = "deep_work"
	MeetingRoutine        MeetingType = "routine"
	MeetingCreative       MeetingType = "creative"
	MeetingAdministrative MeetingType = "administrative"
)

// ValidMeetingTypes is the canonical set of accepted meeting type strings.
// Scoring behavior is defined exhaustively over this set; unknown strings
// are rejected at validation, never dispatched on.
var ValidMeetingTypes = map[string]bool{
	"collaborative": true, "deep_work": true, "routine": true,
	"creative": true, "administrative": true,
}

type Flexibility string

const (
	FlexibilityLow    Flexibility = "low"
	FlexibilityMedium Flexibility = "medium"
	FlexibilityHigh   Flexibility = "high"
)

// FlexibilityOrdinal returns a sort ordinal (lower = less flexible).
// Less flexible meetings get first pick of slots.
func FlexibilityOrdinal(f Flexibility) int {
	switch f {
	case FlexibilityLow:
		return 0
	case FlexibilityMedium:
		return 1
	case FlexibilityHigh:
		return 2
	default:
		return 1
	}
}

type BlockType string

const (
	BlockNoMeetingDay    BlockType = "no_meeting_day"
	BlockExistingBooking BlockType = "existing_booking"
	BlockFocusTime       BlockType = "focus_time"
	BlockPersonalTime    BlockType = "personal_time"
)

// IsHard reports whether a block type excludes candidates unconditionally.
// Focus time is soft: a sufficiently high priority meeting may override it.
func (t BlockType) IsHard() bool {
	switch t {
	case BlockNoMeetingDay, BlockExistingBooking, BlockPersonalTime:
		return true
	default:
		return false
	}
}

type ViolationSeverity string

const (
	SeverityLow    ViolationSeverity = "low"
	SeverityMedium ViolationSeverity = "medium"
	SeverityHigh   ViolationSeverity = "high"
)
