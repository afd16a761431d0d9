package energy

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/pvermeer/horae/internal/domain"
)

// HourStats aggregates the samples observed in one hour of day.
type HourStats struct {
	Mean   float64
	StdDev float64
	Count  int
}

// Pattern is the analyzed energy profile for one user: per-hour statistics,
// day-of-week adjustment factors, and the derived peak/low hours.
type Pattern struct {
	UserID          string
	AnalyzedDays    int
	SampleCount     int
	Hourly          map[int]HourStats
	WeekdayFactor   map[time.Weekday]float64
	PeakHours       []int
	LowHours        []int
	Recommendations []string
}

// buildPattern computes the pattern from raw samples.
func buildPattern(userID string, days int, samples []*domain.EnergySample) *Pattern {
	p := &Pattern{
		UserID:        userID,
		AnalyzedDays:  days,
		SampleCount:   len(samples),
		Hourly:        make(map[int]HourStats),
		WeekdayFactor: make(map[time.Weekday]float64),
	}
	if len(samples) == 0 {
		p.Recommendations = []string{"Log more energy samples for personalized scheduling"}
		return p
	}

	byHour := make(map[int][]float64)
	byWeekday := make(map[time.Weekday][]float64)
	var total float64
	for _, s := range samples {
		local := s.RecordedAt
		byHour[local.Hour()] = append(byHour[local.Hour()], s.Level)
		byWeekday[local.Weekday()] = append(byWeekday[local.Weekday()], s.Level)
		total += s.Level
	}
	overallMean := total / float64(len(samples))

	for hour, levels := range byHour {
		p.Hourly[hour] = hourStats(levels)
	}
	for wd, levels := range byWeekday {
		if overallMean > 0 {
			p.WeekdayFactor[wd] = mean(levels) / overallMean
		} else {
			p.WeekdayFactor[wd] = 1.0
		}
	}

	p.PeakHours = rankHours(p.Hourly, 3, true)
	p.LowHours = rankHours(p.Hourly, 3, false)
	p.Recommendations = buildRecommendations(p.PeakHours, p.LowHours)
	return p
}

func hourStats(levels []float64) HourStats {
	m := mean(levels)
	var variance float64
	for _, l := range levels {
		variance += (l - m) * (l - m)
	}
	variance /= float64(len(levels))
	return HourStats{Mean: m, StdDev: math.Sqrt(variance), Count: len(levels)}
}

func mean(levels []float64) float64 {
	var total float64
	for _, l := range levels {
		total += l
	}
	return total / float64(len(levels))
}

// rankHours returns the n hours with the highest (or lowest) mean,
// ascending by hour for deterministic output.
func rankHours(hourly map[int]HourStats, n int, highest bool) []int {
	hours := make([]int, 0, len(hourly))
	for h := range hourly {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(i, j int) bool {
		a, b := hourly[hours[i]].Mean, hourly[hours[j]].Mean
		if a != b {
			if highest {
				return a > b
			}
			return a < b
		}
		return hours[i] < hours[j]
	})
	if len(hours) > n {
		hours = hours[:n]
	}
	sort.Ints(hours)
	return hours
}

func buildRecommendations(peaks, lows []int) []string {
	var recs []string
	if len(peaks) > 0 {
		recs = append(recs, fmt.Sprintf(
			"Schedule deep work and important meetings during peak hours: %s", formatHours(peaks)))
	}
	if len(lows) > 0 {
		recs = append(recs, fmt.Sprintf(
			"Avoid demanding tasks during low-energy periods: %s", formatHours(lows)))
	}
	recs = append(recs, "Route routine and administrative work to mid-energy periods")
	return recs
}

func formatHours(hours []int) string {
	out := ""
	for i, h := range hours {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%02d:00", h)
	}
	return out
}
