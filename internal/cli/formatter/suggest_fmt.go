package formatter

import (
	"fmt"
	"strings"

	"github.com/pvermeer/horae/internal/app"
)

// FormatSuggestions renders ranked slot suggestions for one meeting, best
// first, each with its one-line explanation and full reason breakdown.
func FormatSuggestions(title string, slots []app.ScoredSlot) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Suggestions for %q", title)))
	b.WriteString("\n")

	for i, s := range slots {
		line := fmt.Sprintf("  %d. %s  %s", i+1, SlotRange(s.Slot.Start, s.Slot.End), Score(s.Score))
		if s.LowConfidence {
			line += "  " + StyleYellow.Render("~low confidence")
		}
		b.WriteString(line)
		b.WriteString("\n")
		if s.Reason != "" {
			b.WriteString(fmt.Sprintf("     %s\n", Dim(s.Reason)))
		}
		for _, r := range s.Reasons {
			delta := ""
			if r.WeightDelta != nil {
				delta = fmt.Sprintf(" (%+.1f)", *r.WeightDelta)
			}
			b.WriteString(fmt.Sprintf("     %s %s%s\n",
				StyleBlue.Render("·"), r.Message, Dim(delta)))
		}
	}

	return b.String()
}

// FormatRescheduleProposal renders a reschedule check outcome.
func FormatRescheduleProposal(p *app.RescheduleProposal) string {
	var b strings.Builder

	b.WriteString(Header("Reschedule Check"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Current:  %s  %s\n",
		SlotRange(p.Current.Start, p.Current.End), Score(p.CurrentScore)))

	if !p.Improved || p.Proposed == nil {
		b.WriteString(StyleGreen.Render("  Keep the current slot."))
		b.WriteString(Dim(" No materially better alternative found.\n"))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  Proposed: %s  %s\n",
		SlotRange(p.Proposed.Slot.Start, p.Proposed.Slot.End), Score(p.Proposed.Score)))
	if p.Proposed.Reason != "" {
		b.WriteString(fmt.Sprintf("  %s\n", Dim(p.Proposed.Reason)))
	}
	return b.String()
}
