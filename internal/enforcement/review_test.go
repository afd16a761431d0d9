package enforcement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvermeer/horae/internal/domain"
	"github.com/pvermeer/horae/internal/testutil"
)

// compliantWeek seeds one no-meeting day and two focus blocks on every other
// working day of the review week.
func compliantWeek(t *testing.T, f *enforcerFixture) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, f.rules.Upsert(ctx, &domain.NoMeetingRule{
		ID: "r-1", UserID: "u-1", Weekday: time.Friday, Active: true,
	}))

	for day := 0; day < 5; day++ {
		d := monday().AddDate(0, 0, day)
		if d.Weekday() == time.Friday {
			continue
		}
		for _, startHour := range []int{9, 14} {
			require.NoError(t, f.blocks.Create(ctx, testutil.NewTestBlock("u-1",
				d.Add(time.Duration(startHour)*time.Hour),
				d.Add(time.Duration(startHour+2)*time.Hour),
				testutil.WithBlockType(domain.BlockFocusTime))))
		}
	}
}

func TestReviewWindow_CompliantScheduleScoresPerfect(t *testing.T) {
	f := newEnforcerFixture(t)
	compliantWeek(t, f)

	report, err := f.enforcer.ReviewWindow(context.Background(), "u-1", monday(), 7)
	require.NoError(t, err)

	assert.Empty(t, report.Violations)
	assert.Equal(t, 100.0, report.ComplianceScore)
	assert.Equal(t, []time.Weekday{time.Friday}, report.NoMeetingDays)
	assert.NotEmpty(t, report.Recommendations)
}

func TestReviewWindow_MissingNoMeetingDayIsHighSeverity(t *testing.T) {
	f := newEnforcerFixture(t)

	report, err := f.enforcer.ReviewWindow(context.Background(), "u-1", monday(), 7)
	require.NoError(t, err)

	var found *Violation
	for i := range report.Violations {
		if report.Violations[i].Type == ViolationInsufficientNoMeetingDays {
			found = &report.Violations[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, domain.SeverityHigh, found.Severity)
	assert.Less(t, report.ComplianceScore, 100.0)
}

func TestReviewWindow_MeetingOnNoMeetingDayFlagged(t *testing.T) {
	f := newEnforcerFixture(t)
	compliantWeek(t, f)
	ctx := context.Background()

	friday := monday().AddDate(0, 0, 4)
	slot := domain.TimeSlot{Start: friday.Add(10 * time.Hour), End: friday.Add(11 * time.Hour)}
	offender := testutil.NewTestMeeting("u-1", "Sneaky sync",
		testutil.WithPriority(5),
		testutil.WithAssignment(slot, 60))
	require.NoError(t, f.meetings.Create(ctx, offender))

	report, err := f.enforcer.ReviewWindow(ctx, "u-1", monday(), 7)
	require.NoError(t, err)

	var found *Violation
	for i := range report.Violations {
		if report.Violations[i].Type == ViolationMeetingOnNoMeetingDay {
			found = &report.Violations[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, offender.ID, found.MeetingID)
	assert.Equal(t, 90.0, report.ComplianceScore)
}

func TestReviewWindow_CriticalMeetingExemptOnNoMeetingDay(t *testing.T) {
	f := newEnforcerFixture(t)
	compliantWeek(t, f)
	ctx := context.Background()

	friday := monday().AddDate(0, 0, 4)
	slot := domain.TimeSlot{Start: friday.Add(10 * time.Hour), End: friday.Add(11 * time.Hour)}
	critical := testutil.NewTestMeeting("u-1", "Production incident",
		testutil.WithPriority(9),
		testutil.WithAssignment(slot, 60))
	require.NoError(t, f.meetings.Create(ctx, critical))

	report, err := f.enforcer.ReviewWindow(ctx, "u-1", monday(), 7)
	require.NoError(t, err)
	assert.Empty(t, report.Violations, "priority 9 is exempt on no-meeting days")
}

func TestReviewWindow_InsufficientFocusTimeFlaggedPerDay(t *testing.T) {
	f := newEnforcerFixture(t)
	ctx := context.Background()

	require.NoError(t, f.rules.Upsert(ctx, &domain.NoMeetingRule{
		ID: "r-1", UserID: "u-1", Weekday: time.Friday, Active: true,
	}))
	// Only Monday gets its two focus blocks; Tue-Thu have none.
	for _, startHour := range []int{9, 14} {
		require.NoError(t, f.blocks.Create(ctx, testutil.NewTestBlock("u-1",
			monday().Add(time.Duration(startHour)*time.Hour),
			monday().Add(time.Duration(startHour+1)*time.Hour),
			testutil.WithBlockType(domain.BlockFocusTime))))
	}

	report, err := f.enforcer.ReviewWindow(ctx, "u-1", monday(), 7)
	require.NoError(t, err)

	focusViolations := 0
	for _, v := range report.Violations {
		if v.Type == ViolationInsufficientFocusTime {
			focusViolations++
			assert.Equal(t, domain.SeverityMedium, v.Severity)
		}
	}
	assert.Equal(t, 3, focusViolations, "Tue, Wed, Thu lack focus blocks")
	assert.Equal(t, 70.0, report.ComplianceScore)
}

func TestComplianceScore_FlooredAtZero(t *testing.T) {
	violations := make([]Violation, 12)
	for i := range violations {
		violations[i] = Violation{Severity: domain.SeverityHigh}
	}
	assert.Zero(t, complianceScore(violations))
}
