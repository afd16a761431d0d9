package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvermeer/horae/internal/app"
	"github.com/pvermeer/horae/internal/domain"
)

func slotAt(hour int) domain.TimeSlot {
	start := time.Date(2026, time.September, 7, hour, 0, 0, 0, time.UTC)
	return domain.TimeSlot{Start: start, End: start.Add(time.Hour)}
}

func scoreInput(m domain.Meeting, slot domain.TimeSlot, energy *domain.EnergyPoint) ScoreInput {
	return ScoreInput{
		Meeting:      m,
		Slot:         slot,
		Energy:       energy,
		MinUsableGap: 15 * time.Minute,
		Weights:      DefaultWeights(),
	}
}

func energyAt(slot domain.TimeSlot, level, confidence float64) *domain.EnergyPoint {
	return &domain.EnergyPoint{At: slot.Start, Level: level, Confidence: confidence}
}

func TestScoreSlot_BoundedAndDeterministic(t *testing.T) {
	m := meeting(60, 10, domain.FlexibilityMedium)
	slot := slotAt(9)
	in := scoreInput(m, slot, energyAt(slot, 95, 1))

	first := ScoreSlot(in)
	second := ScoreSlot(in)

	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first.Score, 0.0)
	assert.LessOrEqual(t, first.Score, 100.0)
	assert.NotEmpty(t, first.Reasons)
}

func TestScoreSlot_DeepWorkPrefersHighEnergy(t *testing.T) {
	m := meeting(60, 5, domain.FlexibilityMedium)
	m.Type = domain.MeetingDeepWork
	slot := slotAt(9)

	high := ScoreSlot(scoreInput(m, slot, energyAt(slot, 90, 1)))
	low := ScoreSlot(scoreInput(m, slot, energyAt(slot, 30, 1)))

	assert.Greater(t, high.Score, low.Score)
}

func TestScoreSlot_RoutinePeaksAtModerateEnergy(t *testing.T) {
	m := meeting(30, 5, domain.FlexibilityMedium)
	m.Type = domain.MeetingRoutine
	slot := slotAt(10)

	moderate := ScoreSlot(scoreInput(m, slot, energyAt(slot, 50, 1)))
	veryHigh := ScoreSlot(scoreInput(m, slot, energyAt(slot, 100, 1)))

	assert.Greater(t, moderate.Score, veryHigh.Score,
		"very high energy is wasted on routine work")
}

func TestScoreSlot_NoEnergyDataIsNeutralAndLowConfidence(t *testing.T) {
	m := meeting(60, 5, domain.FlexibilityMedium)
	slot := slotAt(9)

	result := ScoreSlot(scoreInput(m, slot, nil))

	assert.True(t, result.LowConfidence)
	found := false
	for _, r := range result.Reasons {
		if r.Code == app.ReasonEnergyNoData {
			found = true
		}
	}
	assert.True(t, found, "expected an ENERGY_NO_DATA reason")
}

func TestScoreSlot_LowConfidenceShrinksTowardNeutral(t *testing.T) {
	m := meeting(60, 5, domain.FlexibilityMedium)
	m.Type = domain.MeetingDeepWork
	slot := slotAt(9)

	confident := ScoreSlot(scoreInput(m, slot, energyAt(slot, 95, 1)))
	shaky := ScoreSlot(scoreInput(m, slot, energyAt(slot, 95, 0.2)))

	assert.True(t, shaky.LowConfidence)
	assert.False(t, confident.LowConfidence)
	assert.Less(t, shaky.Score, confident.Score,
		"an uncertain great prediction is worth less than a certain one")
}

func TestScoreSlot_HigherPriorityScoresHigherAtSameSlot(t *testing.T) {
	slot := slotAt(10)
	energy := energyAt(slot, 60, 1)

	low := meeting(60, 2, domain.FlexibilityMedium)
	high := meeting(60, 9, domain.FlexibilityMedium)

	lowScore := ScoreSlot(scoreInput(low, slot, energy))
	highScore := ScoreSlot(scoreInput(high, slot, energy))

	assert.Greater(t, highScore.Score, lowScore.Score)
}

func TestScoreSlot_AdjacencyRewarded(t *testing.T) {
	m := meeting(60, 5, domain.FlexibilityMedium)
	slot := slotAt(10)
	energy := energyAt(slot, 60, 1)

	free := scoreInput(m, slot, energy)
	adjacent := scoreInput(m, slot, energy)
	adjacent.Commitments = []domain.BlockedInterval{{
		Start: slotAt(9).Start,
		End:   slot.Start,
		Type:  domain.BlockExistingBooking,
	}}

	freeResult := ScoreSlot(free)
	adjacentResult := ScoreSlot(adjacent)

	assert.Greater(t, adjacentResult.Score, freeResult.Score)

	found := false
	for _, r := range adjacentResult.Reasons {
		if r.Code == app.ReasonAdjacency {
			found = true
		}
	}
	assert.True(t, found)
}

func TestScoreSlot_SmallGapPenalized(t *testing.T) {
	m := meeting(60, 5, domain.FlexibilityMedium)
	slot := slotAt(10)
	energy := energyAt(slot, 60, 1)

	fragmenting := scoreInput(m, slot, energy)
	fragmenting.Commitments = []domain.BlockedInterval{{
		// Ends 10 minutes before the slot: strands an unusable gap.
		Start: slot.Start.Add(-70 * time.Minute),
		End:   slot.Start.Add(-10 * time.Minute),
		Type:  domain.BlockExistingBooking,
	}}

	clean := ScoreSlot(scoreInput(m, slot, energy))
	fragged := ScoreSlot(fragmenting)

	assert.Less(t, fragged.Score, clean.Score)
}

func TestScoreSlot_FocusOverrideAnnotatedWithoutScoreChange(t *testing.T) {
	m := meeting(60, 9, domain.FlexibilityMedium)
	slot := slotAt(9)
	energy := energyAt(slot, 60, 1)

	plain := scoreInput(m, slot, energy)
	override := scoreInput(m, slot, energy)
	override.OverlapsFocus = true

	plainResult := ScoreSlot(plain)
	overrideResult := ScoreSlot(override)

	assert.Equal(t, plainResult.Score, overrideResult.Score)

	var reason *app.Reason
	for i := range overrideResult.Reasons {
		if overrideResult.Reasons[i].Code == app.ReasonFocusOverride {
			reason = &overrideResult.Reasons[i]
		}
	}
	require.NotNil(t, reason)
	require.NotNil(t, reason.WeightDelta)
	assert.Zero(t, *reason.WeightDelta)
}

func TestSummarizeReasons_PicksDominantContribution(t *testing.T) {
	small, big := 5.0, 20.0
	reasons := []app.Reason{
		{Code: app.ReasonPriorityOffPeak, Message: "small", WeightDelta: &small},
		{Code: app.ReasonEnergyPeak, Message: "big", WeightDelta: &big},
	}
	assert.Equal(t, "big", SummarizeReasons(reasons))
	assert.Empty(t, SummarizeReasons(nil))
}
