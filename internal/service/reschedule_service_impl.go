package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pvermeer/horae/internal/app"
	"github.com/pvermeer/horae/internal/config"
	"github.com/pvermeer/horae/internal/domain"
	"github.com/pvermeer/horae/internal/engine"
	"github.com/pvermeer/horae/internal/repository"
)

// rescheduleImprovementPct is the minimum relative score improvement before
// a move is proposed. Shuffling a calendar for a marginal gain costs more in
// disruption than it buys.
const rescheduleImprovementPct = 15

type rescheduleService struct {
	meetings    repository.MeetingRepo
	energy      app.EnergyProvider
	constraints app.ConstraintProvider
	cfg         config.Config
	observer    UseCaseObserver
}

func NewRescheduleService(
	meetings repository.MeetingRepo,
	energy app.EnergyProvider,
	constraints app.ConstraintProvider,
	cfg config.Config,
	observers ...UseCaseObserver,
) RescheduleService {
	return &rescheduleService{
		meetings:    meetings,
		energy:      energy,
		constraints: constraints,
		cfg:         cfg,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// Reschedule checks whether an already-assigned meeting has a materially
// better slot in the range. It only proposes; committing the move is the
// caller's decision.
func (s *rescheduleService) Reschedule(ctx context.Context, req app.RescheduleRequest) (proposal *app.RescheduleProposal, err error) {
	started := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "reschedule",
			StartedAt: started,
			Duration:  time.Since(started),
			Success:   err == nil,
			Err:       err,
			Fields: map[string]any{
				"user_id":    req.UserID,
				"meeting_id": req.MeetingID,
			},
		})
	}()

	if err := validateHorizon(req.RangeStart, req.RangeEnd); err != nil {
		return nil, err
	}

	m, err := s.meetings.GetByID(ctx, req.MeetingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &app.RequestError{
				Code:    app.ErrUnknownMeeting,
				Message: fmt.Sprintf("no meeting with id %q", req.MeetingID),
			}
		}
		return nil, fmt.Errorf("loading meeting: %w", err)
	}
	if m.ScheduledStart == nil || m.ScheduledEnd == nil {
		return nil, invalidMeeting(fmt.Errorf("meeting %s has no assignment to reschedule", m.ID))
	}

	current := domain.TimeSlot{Start: *m.ScheduledStart, End: *m.ScheduledEnd}
	currentScore := 0.0
	if m.ScheduledScore != nil {
		currentScore = *m.ScheduledScore
	}
	proposal = &app.RescheduleProposal{
		MeetingID:    m.ID,
		Current:      current,
		CurrentScore: currentScore,
	}

	window := domain.Window{Start: req.RangeStart, End: req.RangeEnd}
	p := planner{constraints: s.constraints, cfg: s.cfg}

	blocked, err := p.loadBlocked(ctx, req.UserID, window)
	if err != nil {
		return nil, err
	}
	// The meeting's own booking is not an obstacle to moving it.
	blocked = withoutInterval(blocked, current)

	candidates, err := p.candidatesFor(ctx, *m, req.UserID, window, blocked, newEnergyMemo(s.energy, req.UserID))
	if err != nil {
		return nil, err
	}

	best := engine.BestSlot(candidates)
	if best == nil {
		return proposal, nil
	}
	if best.Slot.Start.Equal(current.Start) {
		return proposal, nil
	}
	if currentScore > 0 && best.Score < currentScore*(1+rescheduleImprovementPct/100.0) {
		return proposal, nil
	}

	proposal.Proposed = best
	proposal.Improved = true
	return proposal, nil
}

// withoutInterval drops blocked intervals exactly matching the slot. Used to
// lift a meeting's own booking out of its reschedule search.
func withoutInterval(blocked []domain.BlockedInterval, slot domain.TimeSlot) []domain.BlockedInterval {
	out := make([]domain.BlockedInterval, 0, len(blocked))
	for _, b := range blocked {
		if b.Start.Equal(slot.Start) && b.End.Equal(slot.End) && b.Type == domain.BlockExistingBooking {
			continue
		}
		out = append(out, b)
	}
	return out
}
