package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pvermeer/horae/internal/app"
	"github.com/pvermeer/horae/internal/config"
	"github.com/pvermeer/horae/internal/domain"
	"github.com/pvermeer/horae/internal/engine"
)

// energyMemo caches energy predictions per slot start for the duration of a
// single use-case call. Candidate slots for different meetings frequently
// share start times, and the provider may be doing real work per lookup.
type energyMemo struct {
	provider app.EnergyProvider
	userID   string
	cache    map[int64]*domain.EnergyPoint
	misses   map[int64]bool
}

func newEnergyMemo(provider app.EnergyProvider, userID string) *energyMemo {
	return &energyMemo{
		provider: provider,
		userID:   userID,
		cache:    make(map[int64]*domain.EnergyPoint),
		misses:   make(map[int64]bool),
	}
}

func (m *energyMemo) predict(ctx context.Context, at time.Time) (*domain.EnergyPoint, error) {
	key := at.Unix()
	if p, ok := m.cache[key]; ok {
		return p, nil
	}
	if m.misses[key] {
		return nil, nil
	}

	p, err := m.provider.Predict(ctx, m.userID, at)
	if err != nil {
		return nil, &app.ProviderError{Provider: "energy", Err: err}
	}
	if p == nil {
		m.misses[key] = true
		return nil, nil
	}
	m.cache[key] = p
	return p, nil
}

// planner bundles everything a scoring pipeline needs. Each use case builds
// one per call; it holds no cross-call state except the config.
type planner struct {
	constraints app.ConstraintProvider
	cfg         config.Config
}

func (p planner) generateConfig() engine.GenerateConfig {
	g := p.cfg.Generator
	return engine.GenerateConfig{
		Granularity:           time.Duration(g.GranularityMin) * time.Minute,
		CoreStartHour:         g.CoreStartHour,
		CoreEndHour:           g.CoreEndHour,
		BusinessStartHour:     g.BusinessStartHour,
		BusinessEndHour:       g.BusinessEndHour,
		ExtendedStartHour:     g.ExtendedStartHour,
		ExtendedEndHour:       g.ExtendedEndHour,
		FocusOverridePriority: g.FocusOverridePriority,
	}
}

func (p planner) weights() engine.Weights {
	return engine.Weights{
		Energy:        p.cfg.Weights.Energy,
		Priority:      p.cfg.Weights.Priority,
		Fragmentation: p.cfg.Weights.Fragmentation,
	}
}

func (p planner) minUsableGap() time.Duration {
	return time.Duration(p.cfg.Generator.MinUsableGapMin) * time.Minute
}

// loadBlocked fetches the user's blocked intervals for the window, wrapping
// constraint provider failures in the retryable failure kind.
func (p planner) loadBlocked(ctx context.Context, userID string, window domain.Window) ([]domain.BlockedInterval, error) {
	blocked, err := p.constraints.BlockedIntervals(ctx, userID, window)
	if err != nil {
		return nil, &app.ProviderError{Provider: "constraint", Err: err}
	}
	return blocked, nil
}

// candidatesFor generates and scores every admissible slot for one meeting.
// Before generation it resolves focus-time verdicts: when the meeting's
// priority is below the override threshold, focus blocks whose policy still
// admits this meeting type (solo work) are lifted from the exclusion list.
func (p planner) candidatesFor(
	ctx context.Context,
	m domain.Meeting,
	userID string,
	window domain.Window,
	blocked []domain.BlockedInterval,
	memo *energyMemo,
) ([]app.ScoredSlot, error) {
	effective, err := p.resolveFocusBlocks(ctx, m, userID, blocked)
	if err != nil {
		return nil, err
	}

	slots := engine.GenerateSlots(m, window.Start, window.End, effective, p.generateConfig())
	if len(slots) == 0 {
		return nil, nil
	}

	commitments := bookingsOnly(blocked)
	overridesFocus := m.Priority >= p.cfg.Generator.FocusOverridePriority

	scored := make([]app.ScoredSlot, 0, len(slots))
	for _, slot := range slots {
		point, err := memo.predict(ctx, slot.Start)
		if err != nil {
			return nil, err
		}
		scored = append(scored, engine.ScoreSlot(engine.ScoreInput{
			Meeting:       m,
			Slot:          slot,
			Energy:        point,
			Commitments:   commitments,
			OverlapsFocus: overridesFocus && engine.OverlapsFocus(slot.Start, slot.End, blocked),
			MinUsableGap:  p.minUsableGap(),
			Weights:       p.weights(),
		}))
	}
	return scored, nil
}

// resolveFocusBlocks removes focus_time blocks the constraint policy admits
// this meeting into. High-priority meetings override focus time in the
// generator itself, so only sub-threshold meetings need a verdict.
func (p planner) resolveFocusBlocks(ctx context.Context, m domain.Meeting, userID string, blocked []domain.BlockedInterval) ([]domain.BlockedInterval, error) {
	if m.Priority >= p.cfg.Generator.FocusOverridePriority {
		return blocked, nil
	}

	effective := make([]domain.BlockedInterval, 0, len(blocked))
	for _, b := range blocked {
		if b.Type == domain.BlockFocusTime {
			allowed, err := p.constraints.TypeAllowed(ctx, userID, b.Start, m.Type)
			if err != nil {
				return nil, &app.ProviderError{Provider: "constraint", Err: err}
			}
			if allowed {
				continue
			}
		}
		effective = append(effective, b)
	}
	return effective, nil
}

// bookingsOnly filters blocked intervals down to actual calendar commitments
// for the fragmentation factor. Policy windows (no-meeting days, focus time)
// are not commitments you can be adjacent to.
func bookingsOnly(blocked []domain.BlockedInterval) []domain.BlockedInterval {
	var out []domain.BlockedInterval
	for _, b := range blocked {
		if b.Type == domain.BlockExistingBooking || b.Type == domain.BlockPersonalTime {
			out = append(out, b)
		}
	}
	return out
}

// validateHorizon checks a [start, end) scheduling range.
func validateHorizon(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return &app.RequestError{
			Code:    app.ErrInvalidHorizon,
			Message: "horizon start and end are required",
		}
	}
	if !end.After(start) {
		return &app.RequestError{
			Code: app.ErrInvalidHorizon,
			Message: fmt.Sprintf("horizon end %s must be after start %s",
				end.Format(domain.DateTimeLayout), start.Format(domain.DateTimeLayout)),
		}
	}
	return nil
}

func invalidMeeting(err error) error {
	return &app.RequestError{Code: app.ErrInvalidMeeting, Message: err.Error()}
}
