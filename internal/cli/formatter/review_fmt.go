package formatter

import (
	"fmt"
	"strings"

	"github.com/pvermeer/horae/internal/domain"
	"github.com/pvermeer/horae/internal/enforcement"
)

// FormatComplianceReport renders a policy compliance review.
func FormatComplianceReport(r *enforcement.ComplianceReport) string {
	var b strings.Builder

	b.WriteString(Header("Policy Compliance"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Window: %s to %s\n",
		r.WindowStart.Format(domain.DateLayout), r.WindowEnd.Format(domain.DateLayout)))
	b.WriteString(fmt.Sprintf("  Score:  %s/100\n", Score(r.ComplianceScore)))

	if len(r.NoMeetingDays) > 0 {
		days := make([]string, 0, len(r.NoMeetingDays))
		for _, d := range r.NoMeetingDays {
			days = append(days, d.String())
		}
		b.WriteString(fmt.Sprintf("  No-meeting days: %s\n", StylePurple.Render(strings.Join(days, ", "))))
	}
	b.WriteString("\n")

	if len(r.Violations) == 0 {
		b.WriteString(StyleGreen.Render("  ✔ No violations.\n"))
	} else {
		headers := []string{"Severity", "Violation"}
		rows := make([][]string, 0, len(r.Violations))
		for _, v := range r.Violations {
			rows = append(rows, []string{SeverityPill(v.Severity), v.Message})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	for _, rec := range r.Recommendations {
		b.WriteString(fmt.Sprintf("  %s %s\n", StyleYellow.Render("→"), rec))
	}

	return b.String()
}
