package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvermeer/horae/internal/domain"
	"github.com/pvermeer/horae/internal/repository"
	"github.com/pvermeer/horae/internal/testutil"
)

func TestMeetingRepo_CreateAndGet(t *testing.T) {
	repo := repository.NewSQLiteMeetingRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	m := testutil.NewTestMeeting("u-1", "Retro",
		testutil.WithType(domain.MeetingRoutine),
		testutil.WithPriority(4),
		testutil.WithParticipants("ana", "ben"))
	require.NoError(t, repo.Create(ctx, m))

	loaded, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Title, loaded.Title)
	assert.Equal(t, domain.MeetingRoutine, loaded.Type)
	assert.Equal(t, []string{"ana", "ben"}, loaded.Participants)
	assert.Nil(t, loaded.ScheduledStart)
	assert.Nil(t, loaded.ScheduledScore)
}

func TestMeetingRepo_GetByIDNotFound(t *testing.T) {
	repo := repository.NewSQLiteMeetingRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMeetingRepo_AssignmentLifecycle(t *testing.T) {
	repo := repository.NewSQLiteMeetingRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	m := testutil.NewTestMeeting("u-1", "Deep dive")
	require.NoError(t, repo.Create(ctx, m))

	start := testutil.Day(2026, time.September, 7).Add(9 * time.Hour)
	slot := domain.TimeSlot{Start: start, End: start.Add(time.Hour)}
	require.NoError(t, repo.SaveAssignment(ctx, m.ID, slot, 81.5))

	loaded, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.ScheduledStart)
	assert.True(t, loaded.ScheduledStart.Equal(start))
	require.NotNil(t, loaded.ScheduledScore)
	assert.Equal(t, 81.5, *loaded.ScheduledScore)

	unscheduled, err := repo.ListUnscheduled(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, unscheduled)

	require.NoError(t, repo.ClearAssignment(ctx, m.ID))
	unscheduled, err = repo.ListUnscheduled(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, unscheduled, 1)
}

func TestMeetingRepo_ListByUserOrdersByPriority(t *testing.T) {
	repo := repository.NewSQLiteMeetingRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	low := testutil.NewTestMeeting("u-1", "Low", testutil.WithMeetingID("b"), testutil.WithPriority(2))
	high := testutil.NewTestMeeting("u-1", "High", testutil.WithMeetingID("a"), testutil.WithPriority(9))
	other := testutil.NewTestMeeting("u-2", "Other user")
	require.NoError(t, repo.Create(ctx, low))
	require.NoError(t, repo.Create(ctx, high))
	require.NoError(t, repo.Create(ctx, other))

	meetings, err := repo.ListByUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, meetings, 2)
	assert.Equal(t, "a", meetings[0].ID)
	assert.Equal(t, "b", meetings[1].ID)
}

func TestMeetingRepo_Delete(t *testing.T) {
	repo := repository.NewSQLiteMeetingRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	m := testutil.NewTestMeeting("u-1", "Ephemeral")
	require.NoError(t, repo.Create(ctx, m))
	require.NoError(t, repo.Delete(ctx, m.ID))
	assert.ErrorIs(t, repo.Delete(ctx, m.ID), repository.ErrNotFound)
}
