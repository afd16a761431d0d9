package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvermeer/horae/internal/app"
	"github.com/pvermeer/horae/internal/config"
	"github.com/pvermeer/horae/internal/domain"
	"github.com/pvermeer/horae/internal/testutil"
)

const testUser = "u-1"

func optimizeFixture(energy app.EnergyProvider, constraints app.ConstraintProvider) OptimizeService {
	return NewOptimizeService(energy, constraints, config.Default())
}

func morningPeakProvider() *testutil.HourlyEnergyProvider {
	return &testutil.HourlyEnergyProvider{
		Levels: map[int]float64{
			8: 80, 9: 90, 10: 90, 11: 80,
			12: 60, 13: 50, 14: 50, 15: 45, 16: 40, 17: 35,
		},
		Confidence: 1,
	}
}

func horizon(days int) (time.Time, time.Time) {
	start := testutil.Day(2026, time.September, 7) // a Monday
	return start, start.AddDate(0, 0, days)
}

func TestOptimize_DeepWorkLandsInHighEnergyMorning(t *testing.T) {
	svc := optimizeFixture(morningPeakProvider(), &testutil.StaticConstraintProvider{})
	from, to := horizon(1)

	m := testutil.NewTestMeeting(testUser, "Design session",
		testutil.WithType(domain.MeetingDeepWork),
		testutil.WithPriority(7),
		testutil.WithDuration(60))

	result, err := svc.Optimize(context.Background(), app.OptimizeRequest{
		UserID:       testUser,
		Meetings:     []domain.Meeting{*m},
		HorizonStart: from,
		HorizonEnd:   to,
	})
	require.NoError(t, err)
	require.Contains(t, result.Scheduled, m.ID)

	sm := result.Scheduled[m.ID]
	assert.GreaterOrEqual(t, sm.Slot.Start.Hour(), 8)
	assert.Less(t, sm.Slot.Start.Hour(), 12, "deep work belongs in the morning energy peak")

	peak := false
	for _, r := range sm.Reasons {
		if r.Code == app.ReasonEnergyPeak {
			peak = true
		}
	}
	assert.True(t, peak, "expected an ENERGY_PEAK reason, got %+v", sm.Reasons)
}

func TestOptimize_FullyBlockedDayYieldsPartialResult(t *testing.T) {
	from, to := horizon(1)
	constraints := &testutil.StaticConstraintProvider{
		Blocked: []domain.BlockedInterval{{
			Start: from, End: to, Type: domain.BlockNoMeetingDay, Reason: "Recurring no-meeting day",
		}},
	}
	svc := optimizeFixture(morningPeakProvider(), constraints)

	m := testutil.NewTestMeeting(testUser, "Standup", testutil.WithPriority(10))

	result, err := svc.Optimize(context.Background(), app.OptimizeRequest{
		UserID:       testUser,
		Meetings:     []domain.Meeting{*m},
		HorizonStart: from,
		HorizonEnd:   to,
	})
	require.NoError(t, err, "an unschedulable meeting is a partial result, not an error")

	assert.Empty(t, result.Scheduled)
	require.Len(t, result.Unscheduled, 1)
	assert.Equal(t, m.ID, result.Unscheduled[0].ID)
	assert.Zero(t, result.Metrics.SuccessRate)
	assert.NotEmpty(t, result.Recommendations)
}

func TestOptimize_HighPriorityOverridesFocusTime(t *testing.T) {
	from, to := horizon(1)
	blocked := []domain.BlockedInterval{
		{Start: from.Add(8 * time.Hour), End: from.Add(9 * time.Hour), Type: domain.BlockExistingBooking},
		{Start: from.Add(9 * time.Hour), End: from.Add(11 * time.Hour), Type: domain.BlockFocusTime},
		{Start: from.Add(11 * time.Hour), End: from.Add(18 * time.Hour), Type: domain.BlockExistingBooking},
	}
	constraints := &testutil.StaticConstraintProvider{Blocked: blocked}
	svc := optimizeFixture(morningPeakProvider(), constraints)

	urgent := testutil.NewTestMeeting(testUser, "Incident review", testutil.WithPriority(9))
	casual := testutil.NewTestMeeting(testUser, "Coffee chat", testutil.WithPriority(5))

	result, err := svc.Optimize(context.Background(), app.OptimizeRequest{
		UserID:       testUser,
		Meetings:     []domain.Meeting{*urgent, *casual},
		HorizonStart: from,
		HorizonEnd:   to,
	})
	require.NoError(t, err)

	require.Contains(t, result.Scheduled, urgent.ID, "priority 9 may claim focus time")
	sm := result.Scheduled[urgent.ID]
	assert.GreaterOrEqual(t, sm.Slot.Start.Hour(), 9)
	assert.Less(t, sm.Slot.Start.Hour(), 11)

	override := false
	for _, r := range sm.Reasons {
		if r.Code == app.ReasonFocusOverride {
			override = true
		}
	}
	assert.True(t, override, "focus override must be surfaced in the reasons")

	require.Len(t, result.Unscheduled, 1)
	assert.Equal(t, casual.ID, result.Unscheduled[0].ID, "priority 5 may not claim focus time")
}

func TestOptimize_SoloWorkAllowedIntoFocusTimeByPolicy(t *testing.T) {
	from, to := horizon(1)
	blocked := []domain.BlockedInterval{
		{Start: from.Add(8 * time.Hour), End: from.Add(9 * time.Hour), Type: domain.BlockExistingBooking},
		{Start: from.Add(9 * time.Hour), End: from.Add(11 * time.Hour), Type: domain.BlockFocusTime},
		{Start: from.Add(11 * time.Hour), End: from.Add(18 * time.Hour), Type: domain.BlockExistingBooking},
	}
	constraints := &testutil.StaticConstraintProvider{Blocked: blocked, AllowInFocus: true}
	svc := optimizeFixture(morningPeakProvider(), constraints)

	solo := testutil.NewTestMeeting(testUser, "Writing block",
		testutil.WithType(domain.MeetingDeepWork),
		testutil.WithPriority(4))

	result, err := svc.Optimize(context.Background(), app.OptimizeRequest{
		UserID:       testUser,
		Meetings:     []domain.Meeting{*solo},
		HorizonStart: from,
		HorizonEnd:   to,
	})
	require.NoError(t, err)
	require.Contains(t, result.Scheduled, solo.ID)
	assert.GreaterOrEqual(t, result.Scheduled[solo.ID].Slot.Start.Hour(), 9)
}

func TestOptimize_ScheduledSlotsNeverOverlap(t *testing.T) {
	svc := optimizeFixture(morningPeakProvider(), &testutil.StaticConstraintProvider{})
	from, to := horizon(1)

	var meetings []domain.Meeting
	for i := 0; i < 6; i++ {
		m := testutil.NewTestMeeting(testUser, fmt.Sprintf("Sync %d", i),
			testutil.WithMeetingID(fmt.Sprintf("m-%d", i)),
			testutil.WithType(domain.MeetingDeepWork),
			testutil.WithPriority(7),
			testutil.WithDuration(60))
		meetings = append(meetings, *m)
	}

	result, err := svc.Optimize(context.Background(), app.OptimizeRequest{
		UserID:       testUser,
		Meetings:     meetings,
		HorizonStart: from,
		HorizonEnd:   to,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Scheduled)

	scheduled := make([]app.ScheduledMeeting, 0, len(result.Scheduled))
	for _, sm := range result.Scheduled {
		scheduled = append(scheduled, sm)
	}
	for i := 0; i < len(scheduled); i++ {
		for j := i + 1; j < len(scheduled); j++ {
			a, b := scheduled[i].Slot, scheduled[j].Slot
			assert.False(t, a.Overlaps(b.Start, b.End),
				"%s and %s overlap", scheduled[i].Meeting.ID, scheduled[j].Meeting.ID)
		}
	}
}

func TestOptimize_PartitionInvariant(t *testing.T) {
	from, to := horizon(1)
	constraints := &testutil.StaticConstraintProvider{
		Blocked: []domain.BlockedInterval{{
			// Only 9:00-12:00 is free within business hours.
			Start: from.Add(12 * time.Hour), End: from.Add(18 * time.Hour),
			Type: domain.BlockExistingBooking,
		}, {
			Start: from.Add(8 * time.Hour), End: from.Add(9 * time.Hour),
			Type: domain.BlockPersonalTime,
		}},
	}
	svc := optimizeFixture(morningPeakProvider(), constraints)

	var meetings []domain.Meeting
	for i := 0; i < 5; i++ {
		m := testutil.NewTestMeeting(testUser, fmt.Sprintf("Block %d", i),
			testutil.WithMeetingID(fmt.Sprintf("m-%d", i)),
			testutil.WithDuration(60),
			testutil.WithPriority(i+3))
		meetings = append(meetings, *m)
	}

	result, err := svc.Optimize(context.Background(), app.OptimizeRequest{
		UserID:       testUser,
		Meetings:     meetings,
		HorizonStart: from,
		HorizonEnd:   to,
	})
	require.NoError(t, err)

	assert.Equal(t, len(meetings), len(result.Scheduled)+len(result.Unscheduled))
	for _, m := range meetings {
		_, scheduled := result.Scheduled[m.ID]
		unscheduled := false
		for _, u := range result.Unscheduled {
			if u.ID == m.ID {
				unscheduled = true
			}
		}
		assert.NotEqual(t, scheduled, unscheduled,
			"meeting %s must appear in exactly one partition", m.ID)
	}

	assert.Equal(t, result.Metrics.ScheduledCount, len(result.Scheduled))
	assert.Equal(t, result.Metrics.UnscheduledCount, len(result.Unscheduled))
}

func TestOptimize_HigherPriorityWinsScarceCapacity(t *testing.T) {
	from, to := horizon(1)
	constraints := &testutil.StaticConstraintProvider{
		Blocked: []domain.BlockedInterval{
			{Start: from.Add(8 * time.Hour), End: from.Add(10 * time.Hour), Type: domain.BlockExistingBooking},
			{Start: from.Add(11 * time.Hour), End: from.Add(18 * time.Hour), Type: domain.BlockExistingBooking},
		},
	}
	svc := optimizeFixture(morningPeakProvider(), constraints)

	important := testutil.NewTestMeeting(testUser, "Board prep",
		testutil.WithPriority(9), testutil.WithDuration(60))
	optional := testutil.NewTestMeeting(testUser, "Catch-up",
		testutil.WithPriority(2), testutil.WithDuration(60))

	// Only one 60-minute slot exists; submit lower priority first.
	result, err := svc.Optimize(context.Background(), app.OptimizeRequest{
		UserID:       testUser,
		Meetings:     []domain.Meeting{*optional, *important},
		HorizonStart: from,
		HorizonEnd:   to,
	})
	require.NoError(t, err)

	assert.Contains(t, result.Scheduled, important.ID)
	require.Len(t, result.Unscheduled, 1)
	assert.Equal(t, optional.ID, result.Unscheduled[0].ID)
}

func TestOptimize_Deterministic(t *testing.T) {
	from, to := horizon(2)
	run := func() *app.OptimizationResult {
		svc := optimizeFixture(morningPeakProvider(), &testutil.StaticConstraintProvider{})
		var meetings []domain.Meeting
		for i := 0; i < 4; i++ {
			m := testutil.NewTestMeeting(testUser, fmt.Sprintf("M%d", i),
				testutil.WithMeetingID(fmt.Sprintf("m-%d", i)),
				testutil.WithPriority(5))
			meetings = append(meetings, *m)
		}
		result, err := svc.Optimize(context.Background(), app.OptimizeRequest{
			UserID:       testUser,
			Meetings:     meetings,
			HorizonStart: from,
			HorizonEnd:   to,
		})
		require.NoError(t, err)
		return result
	}

	first := run()
	second := run()

	require.Equal(t, len(first.Scheduled), len(second.Scheduled))
	for id, sm := range first.Scheduled {
		other, ok := second.Scheduled[id]
		require.True(t, ok)
		assert.Equal(t, sm.Slot, other.Slot, "meeting %s moved between identical runs", id)
		assert.Equal(t, sm.Score, other.Score)
	}
}

func TestOptimize_EmptyBatchIsVacuouslySuccessful(t *testing.T) {
	svc := optimizeFixture(morningPeakProvider(), &testutil.StaticConstraintProvider{})
	from, to := horizon(1)

	result, err := svc.Optimize(context.Background(), app.OptimizeRequest{
		UserID:       testUser,
		HorizonStart: from,
		HorizonEnd:   to,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Scheduled)
	assert.Empty(t, result.Unscheduled)
	assert.Equal(t, 100.0, result.Metrics.SuccessRate)
	assert.Empty(t, result.Recommendations)
}

func TestOptimize_InvalidRequests(t *testing.T) {
	svc := optimizeFixture(morningPeakProvider(), &testutil.StaticConstraintProvider{})
	from, to := horizon(1)

	t.Run("inverted horizon", func(t *testing.T) {
		_, err := svc.Optimize(context.Background(), app.OptimizeRequest{
			UserID: testUser, HorizonStart: to, HorizonEnd: from,
		})
		var reqErr *app.RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, app.ErrInvalidHorizon, reqErr.Code)
	})

	t.Run("invalid meeting", func(t *testing.T) {
		bad := testutil.NewTestMeeting(testUser, "Bad", testutil.WithPriority(11))
		_, err := svc.Optimize(context.Background(), app.OptimizeRequest{
			UserID: testUser, Meetings: []domain.Meeting{*bad},
			HorizonStart: from, HorizonEnd: to,
		})
		var reqErr *app.RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, app.ErrInvalidMeeting, reqErr.Code)
	})

	t.Run("duplicate meeting ids", func(t *testing.T) {
		m := testutil.NewTestMeeting(testUser, "Dup", testutil.WithMeetingID("m-dup"))
		_, err := svc.Optimize(context.Background(), app.OptimizeRequest{
			UserID: testUser, Meetings: []domain.Meeting{*m, *m},
			HorizonStart: from, HorizonEnd: to,
		})
		var reqErr *app.RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, app.ErrInvalidMeeting, reqErr.Code)
	})
}

func TestOptimize_CancelledContextReturnsPartialResult(t *testing.T) {
	svc := optimizeFixture(morningPeakProvider(), &testutil.StaticConstraintProvider{})
	from, to := horizon(1)

	m := testutil.NewTestMeeting(testUser, "Never scheduled")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := svc.Optimize(ctx, app.OptimizeRequest{
		UserID:       testUser,
		Meetings:     []domain.Meeting{*m},
		HorizonStart: from,
		HorizonEnd:   to,
	})
	require.NoError(t, err, "cancellation yields a partial result, not a failure")

	assert.Empty(t, result.Scheduled)
	require.Len(t, result.Unscheduled, 1)
	assert.NotEmpty(t, result.Warnings)
}

func TestOptimize_ProviderFailuresAreDistinct(t *testing.T) {
	from, to := horizon(1)
	m := testutil.NewTestMeeting(testUser, "Doomed")

	t.Run("energy provider down", func(t *testing.T) {
		svc := optimizeFixture(
			&testutil.HourlyEnergyProvider{Err: errors.New("model offline")},
			&testutil.StaticConstraintProvider{})
		_, err := svc.Optimize(context.Background(), app.OptimizeRequest{
			UserID: testUser, Meetings: []domain.Meeting{*m},
			HorizonStart: from, HorizonEnd: to,
		})
		var provErr *app.ProviderError
		require.ErrorAs(t, err, &provErr)
		assert.Equal(t, "energy", provErr.Provider)
	})

	t.Run("constraint provider down", func(t *testing.T) {
		svc := optimizeFixture(
			morningPeakProvider(),
			&testutil.StaticConstraintProvider{Err: errors.New("calendar API 503")})
		_, err := svc.Optimize(context.Background(), app.OptimizeRequest{
			UserID: testUser, Meetings: []domain.Meeting{*m},
			HorizonStart: from, HorizonEnd: to,
		})
		var provErr *app.ProviderError
		require.ErrorAs(t, err, &provErr)
		assert.Equal(t, "constraint", provErr.Provider)
	})
}
