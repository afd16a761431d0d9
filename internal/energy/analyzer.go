package energy

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/pvermeer/horae/internal/domain"
	"github.com/pvermeer/horae/internal/repository"
)

// Analyzer derives per-user energy patterns from logged samples and serves
// predictions from them. It implements the engine's EnergyProvider port.
// Patterns are cached per user with a TTL; the cache is an optimization,
// never a source of truth.
type Analyzer struct {
	samples      repository.EnergySampleRepo
	patterns     *gocache.Cache
	analysisDays int

	// Now is the clock used to anchor the analysis window. Overridden in
	// tests for deterministic output.
	Now func() time.Time
}

// NewAnalyzer creates an Analyzer reading from the given sample store.
func NewAnalyzer(samples repository.EnergySampleRepo, analysisDays int, cacheTTL time.Duration) *Analyzer {
	return &Analyzer{
		samples:      samples,
		patterns:     gocache.New(cacheTTL, 2*cacheTTL),
		analysisDays: analysisDays,
		Now:          time.Now,
	}
}

// AnalyzePatterns computes (or returns the cached) energy pattern for a user.
func (a *Analyzer) AnalyzePatterns(ctx context.Context, userID string) (*Pattern, error) {
	if cached, ok := a.patterns.Get(userID); ok {
		return cached.(*Pattern), nil
	}

	since := a.Now().AddDate(0, 0, -a.analysisDays)
	samples, err := a.samples.ListSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("loading energy samples: %w", err)
	}

	pattern := buildPattern(userID, a.analysisDays, samples)
	a.patterns.SetDefault(userID, pattern)
	return pattern, nil
}

// Predict returns the predicted energy level at a timestamp, or (nil, nil)
// when no data supports a prediction for that hour. Confidence grows with
// sample support and shrinks with sample spread.
func (a *Analyzer) Predict(ctx context.Context, userID string, at time.Time) (*domain.EnergyPoint, error) {
	pattern, err := a.AnalyzePatterns(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pattern.SampleCount == 0 {
		return nil, nil
	}

	stats, ok := pattern.Hourly[at.Hour()]
	if !ok || stats.Count == 0 {
		return nil, nil
	}

	factor, ok := pattern.WeekdayFactor[at.Weekday()]
	if !ok {
		factor = 1.0
	}

	level := stats.Mean * factor
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}

	return &domain.EnergyPoint{
		At:         at,
		Level:      level,
		Confidence: confidence(stats),
	}, nil
}

// InvalidatePattern drops the cached pattern for a user, forcing the next
// prediction to re-analyze. Called after new samples are logged.
func (a *Analyzer) InvalidatePattern(userID string) {
	a.patterns.Delete(userID)
}

// confidence maps sample support and spread to [0, 1]: twenty samples of
// identical level give full confidence, few or widely scattered samples
// approach zero.
func confidence(stats HourStats) float64 {
	support := float64(stats.Count) / 20
	if support > 1 {
		support = 1
	}
	spread := 1 - stats.StdDev/50
	if spread < 0 {
		spread = 0
	}
	c := support * spread
	if c > 1 {
		c = 1
	}
	return c
}
