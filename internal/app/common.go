package app

import (
	"time"

	"github.com/pvermeer/horae/internal/domain"
)

type ReasonCode string

const (
	ReasonEnergyPeak      ReasonCode = "ENERGY_PEAK"
	ReasonEnergyModerate  ReasonCode = "ENERGY_MODERATE_FIT"
	ReasonEnergyLow       ReasonCode = "ENERGY_LOW"
	ReasonEnergyNoData    ReasonCode = "ENERGY_NO_DATA"
	ReasonLowConfidence   ReasonCode = "LOW_CONFIDENCE"
	ReasonPriorityPeak    ReasonCode = "PRIORITY_PEAK_HOURS"
	ReasonPriorityOffPeak ReasonCode = "PRIORITY_OFF_PEAK"
	ReasonAdjacency       ReasonCode = "ADJACENT_TO_BOOKING"
	ReasonFragmentation   ReasonCode = "FRAGMENTS_CALENDAR"
	ReasonFocusOverride   ReasonCode = "FOCUS_TIME_OVERRIDE"
)

// Reason is one explainable component of a slot's score. WeightDelta is the
// weighted contribution of the factor to the total.
type Reason struct {
	Code        ReasonCode
	Message     string
	WeightDelta *float64
}

// ScoredSlot is a candidate slot with its computed score and explanation.
// Reason holds the human-readable summary derived from the dominant factor;
// Reasons holds the full breakdown.
type ScoredSlot struct {
	Slot          domain.TimeSlot
	Score         float64
	Reason        string
	Reasons       []Reason
	LowConfidence bool
}

// ScheduledMeeting pairs a meeting with its committed slot.
type ScheduledMeeting struct {
	Meeting domain.Meeting
	Slot    domain.TimeSlot
	Score   float64
	Reasons []Reason
}

// OptimizationMetrics summarizes a batch run. SuccessRate is defined as 100
// for an empty batch (vacuously successful).
type OptimizationMetrics struct {
	TotalMeetings         int
	ScheduledCount        int
	UnscheduledCount      int
	SuccessRate           float64 // 0..100
	AverageScore          float64 // over scheduled slots
	HighPriorityScheduled int     // scheduled meetings with priority >= 7
}

// OptimizationResult is the batch engine output. Every input meeting id
// appears in exactly one of Scheduled or Unscheduled, and no two scheduled
// slots overlap.
type OptimizationResult struct {
	Scheduled       map[string]ScheduledMeeting
	Unscheduled     []domain.Meeting
	Metrics         OptimizationMetrics
	Recommendations []string
	Warnings        []string
}

type OptimizeRequest struct {
	UserID       string
	Meetings     []domain.Meeting
	HorizonStart time.Time
	HorizonEnd   time.Time
}

type SuggestRequest struct {
	UserID       string
	Meeting      domain.Meeting
	Participants []string
	RangeStart   time.Time
	RangeEnd     time.Time
	TopK         int
}

type RescheduleRequest struct {
	UserID     string
	MeetingID  string
	RangeStart time.Time
	RangeEnd   time.Time
}

// RescheduleProposal is returned when a materially better slot exists for
// an already-assigned meeting. Improved is false when the current slot
// should be kept.
type RescheduleProposal struct {
	MeetingID    string
	Current      domain.TimeSlot
	CurrentScore float64
	Proposed     *ScoredSlot
	Improved     bool
}
