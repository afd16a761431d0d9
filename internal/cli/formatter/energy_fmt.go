package formatter

import (
	"fmt"
	"strings"

	"github.com/pvermeer/horae/internal/energy"
)

// FormatEnergyPattern renders an analyzed energy pattern: an hourly bar
// chart, the detected peak and low hours, and the analyzer's advice.
func FormatEnergyPattern(p *energy.Pattern) string {
	var b strings.Builder

	b.WriteString(Header("Energy Pattern"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Samples: %d over the last %d days\n\n", p.SampleCount, p.AnalyzedDays))

	if p.SampleCount == 0 {
		b.WriteString(Dim("  No energy data yet. Log samples with `horae energy log`.\n"))
		return b.String()
	}

	for hour := 0; hour < 24; hour++ {
		stats, ok := p.Hourly[hour]
		if !ok || stats.Count == 0 {
			continue
		}
		bar := strings.Repeat("█", int(stats.Mean/5))
		b.WriteString(fmt.Sprintf("  %02d:00  %s %s\n",
			hour,
			ScoreStyle(stats.Mean).Render(bar),
			Dim(fmt.Sprintf("%.0f (n=%d)", stats.Mean, stats.Count))))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("  Peak hours: %s\n", StyleGreen.Render(hourList(p.PeakHours))))
	b.WriteString(fmt.Sprintf("  Low hours:  %s\n", StyleRed.Render(hourList(p.LowHours))))

	for _, rec := range p.Recommendations {
		b.WriteString(fmt.Sprintf("  %s %s\n", StyleYellow.Render("→"), rec))
	}

	return b.String()
}

func hourList(hours []int) string {
	if len(hours) == 0 {
		return "none detected"
	}
	parts := make([]string, 0, len(hours))
	for _, h := range hours {
		parts = append(parts, fmt.Sprintf("%02d:00", h))
	}
	return strings.Join(parts, ", ")
}
