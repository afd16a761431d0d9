package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pvermeer/horae/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// SlotRange renders a [start, end) interval compactly, e.g.
// "Mon 2026-08-31 09:00–09:30".
func SlotRange(start, end time.Time) string {
	return fmt.Sprintf("%s %s–%s",
		start.Format("Mon 2006-01-02"),
		start.Format("15:04"),
		end.Format("15:04"))
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// TypeBadge returns a purple-styled meeting type label.
func TypeBadge(t domain.MeetingType) string {
	return StylePurple.Render(strings.ReplaceAll(string(t), "_", " "))
}

// PriorityPill colors a 1-10 priority by urgency.
func PriorityPill(p int) string {
	label := fmt.Sprintf("P%d", p)
	switch {
	case p >= 8:
		return StyleRed.Render(label)
	case p >= 5:
		return StyleYellow.Render(label)
	default:
		return StyleBlue.Render(label)
	}
}
