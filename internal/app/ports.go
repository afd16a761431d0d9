package app

import (
	"context"
	"time"

	"github.com/pvermeer/horae/internal/domain"
)

// EnergyProvider predicts a user's energy level at a timestamp. A nil point
// with a nil error means the provider has no data for that time; callers
// fall back to a neutral score. A non-nil error means the provider itself
// is unavailable and is surfaced as a distinct failure kind.
type EnergyProvider interface {
	Predict(ctx context.Context, userID string, at time.Time) (*domain.EnergyPoint, error)
}

// ConstraintProvider supplies blocked intervals and meeting-type verdicts
// for a user. Implementations own the no-meeting-day and focus-time policy;
// the engine only consumes their output.
type ConstraintProvider interface {
	BlockedIntervals(ctx context.Context, userID string, window domain.Window) ([]domain.BlockedInterval, error)
	TypeAllowed(ctx context.Context, userID string, at time.Time, meetingType domain.MeetingType) (bool, error)
}

type OptimizeUseCase interface {
	Optimize(ctx context.Context, req OptimizeRequest) (*OptimizationResult, error)
}

type SuggestUseCase interface {
	Suggest(ctx context.Context, req SuggestRequest) ([]ScoredSlot, error)
}

type RescheduleUseCase interface {
	Reschedule(ctx context.Context, req RescheduleRequest) (*RescheduleProposal, error)
}
