package formatter

import (
	"fmt"
	"strings"

	"github.com/pvermeer/horae/internal/domain"
)

// FormatMeetingList renders meetings as an aligned table. Scheduled meetings
// show their slot and score; unscheduled ones show a dimmed placeholder.
func FormatMeetingList(meetings []*domain.Meeting) string {
	headers := []string{"ID", "Title", "Type", "Prio", "Len", "Scheduled", "Score"}
	rows := make([][]string, 0, len(meetings))
	for _, m := range meetings {
		scheduled := Dim("—")
		score := Dim("—")
		if m.ScheduledStart != nil && m.ScheduledEnd != nil {
			scheduled = SlotRange(*m.ScheduledStart, *m.ScheduledEnd)
		}
		if m.ScheduledScore != nil {
			score = Score(*m.ScheduledScore)
		}
		rows = append(rows, []string{
			TruncID(m.ID),
			m.Title,
			TypeBadge(m.Type),
			PriorityPill(m.Priority),
			FormatMinutes(m.DurationMin),
			scheduled,
			score,
		})
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Meetings (%d)", len(meetings))))
	b.WriteString("\n")
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

// FormatBlockList renders calendar blocks as an aligned table.
func FormatBlockList(blocks []*domain.CalendarBlock) string {
	headers := []string{"ID", "When", "Type", "Reason"}
	rows := make([][]string, 0, len(blocks))
	for _, blk := range blocks {
		reason := blk.Reason
		if reason == "" {
			reason = Dim("—")
		}
		rows = append(rows, []string{
			TruncID(blk.ID),
			SlotRange(blk.Start, blk.End),
			blockTypeBadge(blk.Type),
			reason,
		})
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Blocks (%d)", len(blocks))))
	b.WriteString("\n")
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

func blockTypeBadge(t domain.BlockType) string {
	label := strings.ReplaceAll(string(t), "_", " ")
	if t.IsHard() {
		return StyleRed.Render(label)
	}
	return StyleYellow.Render(label)
}
