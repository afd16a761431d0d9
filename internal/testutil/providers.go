package testutil

import (
	"context"
	"time"

	"github.com/pvermeer/horae/internal/domain"
)

// HourlyEnergyProvider is a deterministic test energy source: level per hour
// of day, one confidence for all predictions. Hours absent from the map
// predict no data.
type HourlyEnergyProvider struct {
	Levels     map[int]float64
	Confidence float64
	Err        error
}

func (p *HourlyEnergyProvider) Predict(_ context.Context, _ string, at time.Time) (*domain.EnergyPoint, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	level, ok := p.Levels[at.Hour()]
	if !ok {
		return nil, nil
	}
	return &domain.EnergyPoint{At: at, Level: level, Confidence: p.Confidence}, nil
}

// StaticConstraintProvider serves a fixed set of blocked intervals and a
// fixed focus-time verdict.
type StaticConstraintProvider struct {
	Blocked []domain.BlockedInterval

	// AllowInFocus is the verdict for any meeting type during focus time.
	// Hard blocks always deny regardless.
	AllowInFocus bool

	Err error
}

func (p *StaticConstraintProvider) BlockedIntervals(_ context.Context, _ string, window domain.Window) ([]domain.BlockedInterval, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	var out []domain.BlockedInterval
	for _, b := range p.Blocked {
		if b.Overlaps(window.Start, window.End) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (p *StaticConstraintProvider) TypeAllowed(_ context.Context, _ string, at time.Time, _ domain.MeetingType) (bool, error) {
	if p.Err != nil {
		return false, p.Err
	}
	for _, b := range p.Blocked {
		if !at.Before(b.Start) && at.Before(b.End) {
			if b.Type.IsHard() {
				return false, nil
			}
			if b.Type == domain.BlockFocusTime {
				return p.AllowInFocus, nil
			}
		}
	}
	return true, nil
}
