package enforcement

import (
	"context"
	"fmt"
	"time"

	"github.com/pvermeer/horae/internal/domain"
)

// Policy thresholds for compliance review.
const (
	minNoMeetingDaysPerWeek = 1
	minFocusBlocksPerDay    = 2

	// noMeetingDayExemptPriority is the minimum priority allowed to sit on
	// a designated no-meeting day without being flagged.
	noMeetingDayExemptPriority = 9
)

const (
	ViolationInsufficientNoMeetingDays = "insufficient_no_meeting_days"
	ViolationMeetingOnNoMeetingDay     = "no_meeting_day_violation"
	ViolationInsufficientFocusTime     = "insufficient_focus_time"
)

type Violation struct {
	Type      string
	Severity  domain.ViolationSeverity
	MeetingID string
	Message   string
}

// ComplianceReport summarizes how well a user's schedule honors their
// no-meeting and focus-time policy over a review window.
type ComplianceReport struct {
	UserID          string
	WindowStart     time.Time
	WindowEnd       time.Time
	NoMeetingDays   []time.Weekday
	Violations      []Violation
	ComplianceScore float64 // 100 minus severity penalties, floored at 0
	Recommendations []string
}

// ReviewWindow checks policy compliance for [start, start+days).
func (e *Enforcer) ReviewWindow(ctx context.Context, userID string, start time.Time, days int) (*ComplianceReport, error) {
	end := start.AddDate(0, 0, days)
	report := &ComplianceReport{
		UserID:      userID,
		WindowStart: start,
		WindowEnd:   end,
	}

	rules, err := e.rules.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing no-meeting rules: %w", err)
	}
	byWeekday := make(map[time.Weekday]bool, len(rules))
	for _, r := range rules {
		byWeekday[r.Weekday] = true
		report.NoMeetingDays = append(report.NoMeetingDays, r.Weekday)
	}

	if len(rules) < minNoMeetingDaysPerWeek {
		report.Violations = append(report.Violations, Violation{
			Type:     ViolationInsufficientNoMeetingDays,
			Severity: domain.SeverityHigh,
			Message: fmt.Sprintf("Only %d no-meeting days configured, require %d",
				len(rules), minNoMeetingDaysPerWeek),
		})
	}

	meetings, err := e.meetings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing meetings: %w", err)
	}
	for _, m := range meetings {
		if m.ScheduledStart == nil {
			continue
		}
		at := *m.ScheduledStart
		if at.Before(start) || !at.Before(end) {
			continue
		}
		if byWeekday[at.Weekday()] && m.Priority < noMeetingDayExemptPriority {
			report.Violations = append(report.Violations, Violation{
				Type:      ViolationMeetingOnNoMeetingDay,
				Severity:  domain.SeverityMedium,
				MeetingID: m.ID,
				Message:   fmt.Sprintf("%q is scheduled on a no-meeting day (%s)", m.Title, at.Weekday()),
			})
		}
	}

	focusViolations, err := e.checkFocusTime(ctx, userID, start, end, byWeekday)
	if err != nil {
		return nil, err
	}
	report.Violations = append(report.Violations, focusViolations...)

	report.ComplianceScore = complianceScore(report.Violations)
	report.Recommendations = reviewRecommendations(report.Violations)
	return report, nil
}

// checkFocusTime flags working days with fewer focus blocks than policy
// requires. No-meeting days are exempt (the whole day is protected).
func (e *Enforcer) checkFocusTime(ctx context.Context, userID string, start, end time.Time, noMeeting map[time.Weekday]bool) ([]Violation, error) {
	blocks, err := e.blocks.ListInWindow(ctx, userID, domain.Window{Start: start, End: end})
	if err != nil {
		return nil, fmt.Errorf("listing calendar blocks: %w", err)
	}

	focusPerDay := make(map[string]int)
	for _, b := range blocks {
		if b.Type == domain.BlockFocusTime {
			focusPerDay[b.Start.Format(domain.DateLayout)]++
		}
	}

	var out []Violation
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for day.Before(end) {
		isWeekend := day.Weekday() == time.Saturday || day.Weekday() == time.Sunday
		if !isWeekend && !noMeeting[day.Weekday()] {
			if n := focusPerDay[day.Format(domain.DateLayout)]; n < minFocusBlocksPerDay {
				out = append(out, Violation{
					Type:     ViolationInsufficientFocusTime,
					Severity: domain.SeverityMedium,
					Message: fmt.Sprintf("%s has %d focus blocks, require %d",
						day.Format(domain.DateLayout), n, minFocusBlocksPerDay),
				})
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return out, nil
}

func complianceScore(violations []Violation) float64 {
	score := 100.0
	for _, v := range violations {
		switch v.Severity {
		case domain.SeverityLow:
			score -= 5
		case domain.SeverityHigh:
			score -= 20
		default:
			score -= 10
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

func reviewRecommendations(violations []Violation) []string {
	if len(violations) == 0 {
		return []string{"No violations detected. Policy compliance is excellent."}
	}

	seen := make(map[string]bool)
	for _, v := range violations {
		seen[v.Type] = true
	}

	var recs []string
	if seen[ViolationInsufficientNoMeetingDays] {
		recs = append(recs, "Configure at least one recurring no-meeting day per week")
	}
	if seen[ViolationMeetingOnNoMeetingDay] {
		recs = append(recs, "Reschedule non-critical meetings away from designated no-meeting days")
	}
	if seen[ViolationInsufficientFocusTime] {
		recs = append(recs, "Block additional focus time on meeting-heavy days")
	}
	return recs
}
