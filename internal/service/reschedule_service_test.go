package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvermeer/horae/internal/app"
	"github.com/pvermeer/horae/internal/config"
	"github.com/pvermeer/horae/internal/domain"
	"github.com/pvermeer/horae/internal/repository"
	"github.com/pvermeer/horae/internal/testutil"
)

func rescheduleFixture(t *testing.T, energy app.EnergyProvider, constraints app.ConstraintProvider) (RescheduleService, repository.MeetingRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	meetings := repository.NewSQLiteMeetingRepo(database)
	return NewRescheduleService(meetings, energy, constraints, config.Default()), meetings
}

func scheduledMeetingFixture(t *testing.T, meetings repository.MeetingRepo, slot domain.TimeSlot, score float64) *domain.Meeting {
	t.Helper()
	m := testutil.NewTestMeeting(testUser, "Scheduled",
		testutil.WithType(domain.MeetingDeepWork),
		testutil.WithDuration(60),
		testutil.WithAssignment(slot, score))
	require.NoError(t, meetings.Create(context.Background(), m))
	return m
}

func TestReschedule_ProposesMateriallyBetterSlot(t *testing.T) {
	svc, meetings := rescheduleFixture(t, morningPeakProvider(), &testutil.StaticConstraintProvider{})
	from, to := horizon(1)

	// Currently parked in a low-energy late slot with a weak score.
	current := domain.TimeSlot{Start: from.Add(16 * time.Hour), End: from.Add(17 * time.Hour)}
	m := scheduledMeetingFixture(t, meetings, current, 35)

	proposal, err := svc.Reschedule(context.Background(), app.RescheduleRequest{
		UserID:     testUser,
		MeetingID:  m.ID,
		RangeStart: from,
		RangeEnd:   to,
	})
	require.NoError(t, err)

	assert.True(t, proposal.Improved)
	require.NotNil(t, proposal.Proposed)
	assert.Greater(t, proposal.Proposed.Score, 35*1.15)
	assert.Less(t, proposal.Proposed.Slot.Start.Hour(), 12, "better slot should be in the morning peak")
}

func TestReschedule_MarginalGainKeepsCurrentSlot(t *testing.T) {
	svc, meetings := rescheduleFixture(t, morningPeakProvider(), &testutil.StaticConstraintProvider{})
	from, to := horizon(1)

	// Already well placed; nothing beats it by 15%.
	current := domain.TimeSlot{Start: from.Add(9 * time.Hour), End: from.Add(10 * time.Hour)}
	m := scheduledMeetingFixture(t, meetings, current, 85)

	proposal, err := svc.Reschedule(context.Background(), app.RescheduleRequest{
		UserID:     testUser,
		MeetingID:  m.ID,
		RangeStart: from,
		RangeEnd:   to,
	})
	require.NoError(t, err)

	assert.False(t, proposal.Improved)
	assert.Nil(t, proposal.Proposed)
	assert.Equal(t, current.Start, proposal.Current.Start)
}

func TestReschedule_UnknownMeeting(t *testing.T) {
	svc, _ := rescheduleFixture(t, morningPeakProvider(), &testutil.StaticConstraintProvider{})
	from, to := horizon(1)

	_, err := svc.Reschedule(context.Background(), app.RescheduleRequest{
		UserID:     testUser,
		MeetingID:  "ghost",
		RangeStart: from,
		RangeEnd:   to,
	})
	var reqErr *app.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, app.ErrUnknownMeeting, reqErr.Code)
}

func TestReschedule_UnscheduledMeetingRejected(t *testing.T) {
	svc, meetings := rescheduleFixture(t, morningPeakProvider(), &testutil.StaticConstraintProvider{})
	from, to := horizon(1)

	m := testutil.NewTestMeeting(testUser, "Backlog item")
	require.NoError(t, meetings.Create(context.Background(), m))

	_, err := svc.Reschedule(context.Background(), app.RescheduleRequest{
		UserID:     testUser,
		MeetingID:  m.ID,
		RangeStart: from,
		RangeEnd:   to,
	})
	var reqErr *app.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, app.ErrInvalidMeeting, reqErr.Code)
}
