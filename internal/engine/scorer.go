package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/pvermeer/horae/internal/app"
	"github.com/pvermeer/horae/internal/domain"
)

type Weights struct {
	Energy        float64
	Priority      float64
	Fragmentation float64
}

func DefaultWeights() Weights {
	return Weights{
		Energy:        0.5,
		Priority:      0.3,
		Fragmentation: 0.2,
	}
}

// energyRequirements maps each meeting type to the energy level it needs.
// From the productivity model: demanding work wants high energy, routine
// work wastes it.
var energyRequirements = map[domain.MeetingType]float64{
	domain.MeetingDeepWork:       80,
	domain.MeetingCreative:       75,
	domain.MeetingCollaborative:  60,
	domain.MeetingRoutine:        40,
	domain.MeetingAdministrative: 30,
}

const (
	neutralScore        = 50.0
	lowConfidenceCutoff = 0.4
)

type ScoreInput struct {
	Meeting domain.Meeting
	Slot    domain.TimeSlot

	// Energy is the provider's prediction for the slot start, nil when the
	// provider returned no data.
	Energy *domain.EnergyPoint

	// Commitments are existing bookings plus already-committed slots,
	// used for the fragmentation factor.
	Commitments []domain.BlockedInterval

	// OverlapsFocus marks a slot claimed inside a focus_time block via the
	// priority override; it adds an explanatory reason, not a score change.
	OverlapsFocus bool

	MinUsableGap time.Duration
	Weights      Weights
}

// ScoreSlot computes the weighted desirability of a (meeting, slot) pair,
// clamped to [0, 100], with a reason per factor. Ties between equal scores
// are broken downstream by earlier start time.
func ScoreSlot(input ScoreInput) app.ScoredSlot {
	result := app.ScoredSlot{Slot: input.Slot}

	factors := []func(ScoreInput) (float64, float64, *app.Reason, bool){
		scoreEnergyFit,
		scorePriorityAlignment,
		scoreFragmentation,
	}

	var total float64
	for _, f := range factors {
		points, weight, reason, lowConfidence := f(input)
		delta := points * weight
		total += delta
		if reason != nil {
			reason.WeightDelta = &delta
			result.Reasons = append(result.Reasons, *reason)
		}
		if lowConfidence {
			result.LowConfidence = true
		}
	}

	if input.OverlapsFocus {
		zero := 0.0
		result.Reasons = append(result.Reasons, app.Reason{
			Code:        app.ReasonFocusOverride,
			Message:     "High priority overrides a focus-time block",
			WeightDelta: &zero,
		})
	}

	result.Score = clampScore(total)
	result.Slot.Score = result.Score
	result.Reason = SummarizeReasons(result.Reasons)
	return result
}

// scoreEnergyFit rates how well predicted energy matches the meeting type's
// demand. Demanding types score monotonically with energy; routine types
// peak at moderate energy (very high energy is wasted on them). Predictions
// are shrunk toward the neutral midpoint by their confidence.
func scoreEnergyFit(input ScoreInput) (float64, float64, *app.Reason, bool) {
	required := energyRequirements[input.Meeting.Type]

	if input.Energy == nil {
		return neutralScore, input.Weights.Energy, &app.Reason{
			Code:    app.ReasonEnergyNoData,
			Message: "No energy data for this time; assuming neutral",
		}, true
	}

	level := input.Energy.Level
	confidence := clamp01(input.Energy.Confidence)

	var fit float64
	switch input.Meeting.Type {
	case domain.MeetingDeepWork, domain.MeetingCreative:
		if level >= required {
			fit = 100 - (level-required)/2
		} else {
			fit = (level / required) * 70
		}
	default:
		// Inverted-U: moderate energy is ideal for low-demand types.
		ideal := required + 10
		fit = 100 - math.Abs(level-ideal)*1.25
	}
	fit = clampScore(fit)

	// Shrink toward neutral when the prediction is uncertain.
	fit = neutralScore + (fit-neutralScore)*confidence
	lowConfidence := confidence < lowConfidenceCutoff

	reason := &app.Reason{Code: app.ReasonEnergyModerate}
	switch {
	case lowConfidence:
		reason.Code = app.ReasonLowConfidence
		reason.Message = "Energy prediction has low confidence"
	case fit >= 70 && (input.Meeting.Type == domain.MeetingDeepWork || input.Meeting.Type == domain.MeetingCreative):
		reason.Code = app.ReasonEnergyPeak
		reason.Message = fmt.Sprintf("Peak energy period for %s", meetingTypeLabel(input.Meeting.Type))
	case fit >= 70:
		reason.Message = fmt.Sprintf("Energy level suits %s work", meetingTypeLabel(input.Meeting.Type))
	case fit < 40:
		reason.Code = app.ReasonEnergyLow
		reason.Message = fmt.Sprintf("Predicted energy is a poor match for %s", meetingTypeLabel(input.Meeting.Type))
	default:
		reason.Message = "Acceptable energy fit"
	}

	return fit, input.Weights.Energy, reason, lowConfidence
}

// scorePriorityAlignment scales the meeting's priority by the desirability
// of the slot's hour, so peak hours reward high-priority meetings more.
func scorePriorityAlignment(input ScoreInput) (float64, float64, *app.Reason, bool) {
	desirability := hourDesirability(input.Slot.Start.Hour())
	points := float64(input.Meeting.Priority) * 10 * desirability

	reason := &app.Reason{Code: app.ReasonPriorityOffPeak, Message: "Off-peak hour for this priority"}
	if desirability >= 1.0 {
		reason.Code = app.ReasonPriorityPeak
		reason.Message = "Peak hour matches meeting priority"
	}
	return points, input.Weights.Priority, reason, false
}

// scoreFragmentation rewards slots adjacent to existing commitments
// (contiguous blocks cost fewer context switches) and penalizes slots that
// strand gaps too short to use.
func scoreFragmentation(input ScoreInput) (float64, float64, *app.Reason, bool) {
	points := 70.0
	adjacent := false
	fragments := false

	for _, c := range input.Commitments {
		if c.End.Equal(input.Slot.Start) || c.Start.Equal(input.Slot.End) {
			adjacent = true
			continue
		}
		if gap := input.Slot.Start.Sub(c.End); gap > 0 && gap < input.MinUsableGap {
			fragments = true
		}
		if gap := c.Start.Sub(input.Slot.End); gap > 0 && gap < input.MinUsableGap {
			fragments = true
		}
	}

	if adjacent {
		points += 25
	}
	if fragments {
		points -= 35
	}
	points = clampScore(points)

	var reason *app.Reason
	switch {
	case fragments:
		reason = &app.Reason{
			Code:    app.ReasonFragmentation,
			Message: "Leaves an unusably short gap next to another commitment",
		}
	case adjacent:
		reason = &app.Reason{
			Code:    app.ReasonAdjacency,
			Message: "Back-to-back with an existing commitment",
		}
	}
	return points, input.Weights.Fragmentation, reason, false
}

// hourDesirability rates an hour of day for scheduling. Mid-morning and
// mid-afternoon are the common productive peaks.
func hourDesirability(hour int) float64 {
	switch {
	case hour >= 9 && hour < 12:
		return 1.0
	case hour >= 14 && hour < 16:
		return 1.0
	case hour == 8 || (hour >= 16 && hour < 18):
		return 0.8
	case hour >= 12 && hour < 14:
		return 0.6
	default:
		return 0.4
	}
}

// SummarizeReasons returns the message of the dominant (largest positive
// contribution) reason, for use as the one-line explanation on suggestions.
func SummarizeReasons(reasons []app.Reason) string {
	best := ""
	bestDelta := 0.0
	for _, r := range reasons {
		if r.WeightDelta != nil && *r.WeightDelta > bestDelta {
			bestDelta = *r.WeightDelta
			best = r.Message
		}
	}
	return best
}

func meetingTypeLabel(t domain.MeetingType) string {
	switch t {
	case domain.MeetingDeepWork:
		return "deep work"
	case domain.MeetingCreative:
		return "creative work"
	default:
		return string(t)
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
