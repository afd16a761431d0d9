package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pvermeer/horae/internal/domain"
	"github.com/pvermeer/horae/internal/energy"
	"github.com/pvermeer/horae/internal/repository"
)

type energyService struct {
	samples  repository.EnergySampleRepo
	analyzer *energy.Analyzer
	now      func() time.Time
}

func NewEnergyService(samples repository.EnergySampleRepo, analyzer *energy.Analyzer) EnergyService {
	return &energyService{
		samples:  samples,
		analyzer: analyzer,
		now:      time.Now,
	}
}

func (s *energyService) LogSample(ctx context.Context, sample *domain.EnergySample) error {
	if sample.ID == "" {
		sample.ID = uuid.NewString()
	}
	if sample.RecordedAt.IsZero() {
		sample.RecordedAt = s.now().UTC()
	}
	if err := sample.Validate(); err != nil {
		return fmt.Errorf("invalid energy sample: %w", err)
	}
	if err := s.samples.Create(ctx, sample); err != nil {
		return err
	}
	// New data makes the cached pattern stale.
	s.analyzer.InvalidatePattern(sample.UserID)
	return nil
}

func (s *energyService) Report(ctx context.Context, userID string) (*energy.Pattern, error) {
	return s.analyzer.AnalyzePatterns(ctx, userID)
}
