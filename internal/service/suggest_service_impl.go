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

type suggestService struct {
	energy      app.EnergyProvider
	constraints app.ConstraintProvider
	cfg         config.Config
	observer    UseCaseObserver
}

func NewSuggestService(
	energy app.EnergyProvider,
	constraints app.ConstraintProvider,
	cfg config.Config,
	observers ...UseCaseObserver,
) SuggestService {
	return &suggestService{
		energy:      energy,
		constraints: constraints,
		cfg:         cfg,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// Suggest returns the top-k scored candidate slots for a single meeting,
// best first. It is read-only: nothing is committed, and repeated calls with
// the same inputs return the same answer. An empty result means the meeting
// cannot be placed in the range at all.
func (s *suggestService) Suggest(ctx context.Context, req app.SuggestRequest) (slots []app.ScoredSlot, err error) {
	started := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "suggest",
			StartedAt: started,
			Duration:  time.Since(started),
			Success:   err == nil,
			Err:       err,
			Fields: map[string]any{
				"user_id":    req.UserID,
				"meeting_id": req.Meeting.ID,
			},
		})
	}()

	if err := validateHorizon(req.RangeStart, req.RangeEnd); err != nil {
		return nil, err
	}
	topK := req.TopK
	switch {
	case topK < 0:
		return nil, &app.RequestError{
			Code:    app.ErrInvalidTopK,
			Message: fmt.Sprintf("top_k must be non-negative, got %d", topK),
		}
	case topK == 0:
		topK = s.cfg.DefaultTopK
	}

	m := req.Meeting
	if len(req.Participants) > 0 {
		m.Participants = req.Participants
	}
	if err := m.Validate(); err != nil {
		return nil, invalidMeeting(err)
	}

	window := domain.Window{Start: req.RangeStart, End: req.RangeEnd}
	p := planner{constraints: s.constraints, cfg: s.cfg}

	blocked, err := p.loadBlocked(ctx, req.UserID, window)
	if err != nil {
		return nil, err
	}

	candidates, err := p.candidatesFor(ctx, m, req.UserID, window, blocked, newEnergyMemo(s.energy, req.UserID))
	if err != nil {
		return nil, err
	}

	engine.RankSlots(candidates)
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates, nil
}
