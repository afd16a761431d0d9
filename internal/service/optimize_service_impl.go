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

type optimizeService struct {
	energy      app.EnergyProvider
	constraints app.ConstraintProvider
	cfg         config.Config
	observer    UseCaseObserver
}

func NewOptimizeService(
	energy app.EnergyProvider,
	constraints app.ConstraintProvider,
	cfg config.Config,
	observers ...UseCaseObserver,
) OptimizeService {
	return &optimizeService{
		energy:      energy,
		constraints: constraints,
		cfg:         cfg,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// Optimize schedules a batch of meetings greedily: highest priority first,
// each meeting taking its best-scoring admissible slot given everything
// committed so far. Cancellation between meetings yields a partial result;
// every input meeting still lands in exactly one of Scheduled or Unscheduled.
func (s *optimizeService) Optimize(ctx context.Context, req app.OptimizeRequest) (result *app.OptimizationResult, err error) {
	started := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "optimize",
			StartedAt: started,
			Duration:  time.Since(started),
			Success:   err == nil,
			Err:       err,
			Fields: map[string]any{
				"user_id":  req.UserID,
				"meetings": len(req.Meetings),
			},
		})
	}()

	if err := validateHorizon(req.HorizonStart, req.HorizonEnd); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(req.Meetings))
	for _, m := range req.Meetings {
		if err := m.Validate(); err != nil {
			return nil, invalidMeeting(err)
		}
		if seen[m.ID] {
			return nil, invalidMeeting(fmt.Errorf("duplicate meeting id %q in batch", m.ID))
		}
		seen[m.ID] = true
	}

	result = &app.OptimizationResult{
		Scheduled: make(map[string]app.ScheduledMeeting, len(req.Meetings)),
	}
	if len(req.Meetings) == 0 {
		result.Metrics = computeMetrics(result, 0)
		return result, nil
	}

	window := domain.Window{Start: req.HorizonStart, End: req.HorizonEnd}
	p := planner{constraints: s.constraints, cfg: s.cfg}

	blocked, err := p.loadBlocked(ctx, req.UserID, window)
	if err != nil {
		return nil, err
	}
	memo := newEnergyMemo(s.energy, req.UserID)

	ordered := engine.OrderMeetings(req.Meetings)
	for i, m := range ordered {
		if ctx.Err() != nil {
			for _, rest := range ordered[i:] {
				result.Unscheduled = append(result.Unscheduled, rest)
			}
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"optimization cancelled after %d of %d meetings; the rest are unscheduled",
				i, len(ordered)))
			break
		}

		candidates, err := p.candidatesFor(ctx, m, req.UserID, window, blocked, memo)
		if err != nil {
			return nil, err
		}

		best := engine.BestSlot(candidates)
		if best == nil {
			result.Unscheduled = append(result.Unscheduled, m)
			continue
		}

		result.Scheduled[m.ID] = app.ScheduledMeeting{
			Meeting: m,
			Slot:    best.Slot,
			Score:   best.Score,
			Reasons: best.Reasons,
		}

		// Committed slots block everything that follows.
		blocked = append(blocked, domain.BlockedInterval{
			Start:  best.Slot.Start,
			End:    best.Slot.End,
			Type:   domain.BlockExistingBooking,
			Reason: "scheduled: " + m.Title,
		})
	}

	result.Metrics = computeMetrics(result, len(req.Meetings))
	result.Recommendations = optimizationRecommendations(result.Metrics)
	return result, nil
}

// computeMetrics summarizes a run. An empty batch is vacuously successful.
func computeMetrics(result *app.OptimizationResult, total int) app.OptimizationMetrics {
	metrics := app.OptimizationMetrics{
		TotalMeetings:    total,
		ScheduledCount:   len(result.Scheduled),
		UnscheduledCount: len(result.Unscheduled),
		SuccessRate:      100,
	}
	if total > 0 {
		metrics.SuccessRate = float64(metrics.ScheduledCount) / float64(total) * 100
	}

	var sum float64
	for _, sm := range result.Scheduled {
		sum += sm.Score
		if sm.Meeting.Priority >= 7 {
			metrics.HighPriorityScheduled++
		}
	}
	if metrics.ScheduledCount > 0 {
		metrics.AverageScore = sum / float64(metrics.ScheduledCount)
	}
	return metrics
}

func optimizationRecommendations(m app.OptimizationMetrics) []string {
	if m.TotalMeetings == 0 {
		return nil
	}

	var recs []string
	if m.SuccessRate < 80 {
		recs = append(recs, "Several meetings could not be placed; consider extending the horizon or relaxing flexibility")
	}
	if m.ScheduledCount > 0 && m.AverageScore < 70 {
		recs = append(recs, "Scheduled slots are a weak fit; log more energy data or revisit meeting priorities")
	}
	return recs
}
