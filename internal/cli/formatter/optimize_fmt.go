package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pvermeer/horae/internal/app"
	"github.com/pvermeer/horae/internal/engine"
)

// FormatOptimization renders a batch optimization result: the committed
// schedule in chronological order, the leftovers, and the run metrics.
func FormatOptimization(result *app.OptimizationResult) string {
	var b strings.Builder

	b.WriteString(Header("Optimized Schedule"))
	b.WriteString("\n")

	if len(result.Scheduled) == 0 {
		b.WriteString(Dim("  Nothing could be scheduled.\n"))
	} else {
		scheduled := make([]app.ScheduledMeeting, 0, len(result.Scheduled))
		for _, sm := range result.Scheduled {
			scheduled = append(scheduled, sm)
		}
		sort.Slice(scheduled, func(i, j int) bool {
			if !scheduled[i].Slot.Start.Equal(scheduled[j].Slot.Start) {
				return scheduled[i].Slot.Start.Before(scheduled[j].Slot.Start)
			}
			return scheduled[i].Meeting.ID < scheduled[j].Meeting.ID
		})

		headers := []string{"When", "Title", "Type", "Prio", "Score", "Why"}
		rows := make([][]string, 0, len(scheduled))
		for _, sm := range scheduled {
			rows = append(rows, []string{
				SlotRange(sm.Slot.Start, sm.Slot.End),
				sm.Meeting.Title,
				TypeBadge(sm.Meeting.Type),
				PriorityPill(sm.Meeting.Priority),
				Score(sm.Score),
				Dim(engine.SummarizeReasons(sm.Reasons)),
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	if len(result.Unscheduled) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Unscheduled"))
		b.WriteString("\n")
		for _, m := range result.Unscheduled {
			b.WriteString(fmt.Sprintf("  %s %s %s  %s\n",
				StyleRed.Render("✖"),
				TruncID(m.ID),
				m.Title,
				Dim(fmt.Sprintf("(%s, %s)", TypeBadge(m.Type), FormatMinutes(m.DurationMin)))))
		}
	}

	b.WriteString("\n")
	b.WriteString(formatMetrics(result.Metrics))

	for _, rec := range result.Recommendations {
		b.WriteString(fmt.Sprintf("  %s %s\n", StyleYellow.Render("→"), rec))
	}

	return b.String()
}

func formatMetrics(m app.OptimizationMetrics) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  Scheduled:     %d/%d (%s%%)\n",
		m.ScheduledCount, m.TotalMeetings, Score(m.SuccessRate)))
	b.WriteString(fmt.Sprintf("  Average score: %s\n", Score(m.AverageScore)))
	b.WriteString(fmt.Sprintf("  High priority: %d placed\n", m.HighPriorityScheduled))
	return b.String()
}
