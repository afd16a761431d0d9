package enforcement

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pvermeer/horae/internal/domain"
	"github.com/pvermeer/horae/internal/repository"
)

// Enforcer owns no-meeting-day and focus-time policy: it expands stored
// rules and blocks into the blocked intervals the engine consumes, and
// renders meeting-type verdicts for borderline times. It implements the
// engine's ConstraintProvider port.
type Enforcer struct {
	blocks   repository.BlockRepo
	rules    repository.NoMeetingRuleRepo
	meetings repository.MeetingRepo
}

// NewEnforcer creates an Enforcer over the given stores.
func NewEnforcer(blocks repository.BlockRepo, rules repository.NoMeetingRuleRepo, meetings repository.MeetingRepo) *Enforcer {
	return &Enforcer{blocks: blocks, rules: rules, meetings: meetings}
}

// BlockedIntervals returns every exclusion intersecting the window: one-off
// calendar blocks plus recurring no-meeting weekdays expanded to full-day
// intervals. Output is ascending by start time.
func (e *Enforcer) BlockedIntervals(ctx context.Context, userID string, window domain.Window) ([]domain.BlockedInterval, error) {
	stored, err := e.blocks.ListInWindow(ctx, userID, window)
	if err != nil {
		return nil, fmt.Errorf("listing calendar blocks: %w", err)
	}

	intervals := make([]domain.BlockedInterval, 0, len(stored))
	for _, b := range stored {
		intervals = append(intervals, b.Interval())
	}

	recurring, err := e.expandRules(ctx, userID, window)
	if err != nil {
		return nil, err
	}
	intervals = append(intervals, recurring...)

	sort.Slice(intervals, func(i, j int) bool {
		if !intervals[i].Start.Equal(intervals[j].Start) {
			return intervals[i].Start.Before(intervals[j].Start)
		}
		return intervals[i].End.Before(intervals[j].End)
	})
	return intervals, nil
}

// TypeAllowed reports whether a meeting of the given type may start at the
// given time. Hard blocks and no-meeting days deny everything; focus time
// admits only solo-work types.
func (e *Enforcer) TypeAllowed(ctx context.Context, userID string, at time.Time, meetingType domain.MeetingType) (bool, error) {
	day := domain.Window{
		Start: time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location()),
	}
	day.End = day.Start.AddDate(0, 0, 1)

	intervals, err := e.BlockedIntervals(ctx, userID, day)
	if err != nil {
		return false, err
	}

	for _, b := range intervals {
		if at.Before(b.Start) || !at.Before(b.End) {
			continue
		}
		if b.Type.IsHard() {
			return false, nil
		}
		if b.Type == domain.BlockFocusTime && !soloWorkType(meetingType) {
			return false, nil
		}
	}
	return true, nil
}

// soloWorkType reports whether a meeting type is compatible with focus
// time (no other participants demanded).
func soloWorkType(t domain.MeetingType) bool {
	return t == domain.MeetingDeepWork || t == domain.MeetingCreative
}

// expandRules converts active recurring no-meeting weekday rules into
// full-day blocked intervals over the window's days.
func (e *Enforcer) expandRules(ctx context.Context, userID string, window domain.Window) ([]domain.BlockedInterval, error) {
	rules, err := e.rules.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing no-meeting rules: %w", err)
	}
	if len(rules) == 0 {
		return nil, nil
	}

	byWeekday := make(map[time.Weekday]bool, len(rules))
	for _, r := range rules {
		byWeekday[r.Weekday] = true
	}

	var out []domain.BlockedInterval
	day := time.Date(window.Start.Year(), window.Start.Month(), window.Start.Day(), 0, 0, 0, 0, window.Start.Location())
	for day.Before(window.End) {
		if byWeekday[day.Weekday()] {
			out = append(out, domain.BlockedInterval{
				Start:  day,
				End:    day.AddDate(0, 0, 1),
				Type:   domain.BlockNoMeetingDay,
				Reason: fmt.Sprintf("Recurring no-meeting day (%s)", day.Weekday()),
			})
		}
		day = day.AddDate(0, 0, 1)
	}
	return out, nil
}
