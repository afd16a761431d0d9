package service

import (
	"context"
	"time"

	"github.com/pvermeer/horae/internal/app"
	"github.com/pvermeer/horae/internal/domain"
	"github.com/pvermeer/horae/internal/energy"
	"github.com/pvermeer/horae/internal/enforcement"
)

type OptimizeService interface {
	Optimize(ctx context.Context, req app.OptimizeRequest) (*app.OptimizationResult, error)
}

type SuggestService interface {
	Suggest(ctx context.Context, req app.SuggestRequest) ([]app.ScoredSlot, error)
}

type RescheduleService interface {
	Reschedule(ctx context.Context, req app.RescheduleRequest) (*app.RescheduleProposal, error)
}

type MeetingService interface {
	Create(ctx context.Context, m *domain.Meeting) error
	GetByID(ctx context.Context, id string) (*domain.Meeting, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Meeting, error)
	ListUnscheduled(ctx context.Context, userID string) ([]*domain.Meeting, error)
	Delete(ctx context.Context, id string) error

	// CommitSchedule persists an optimization result: every scheduled
	// meeting's assignment is saved and mirrored as an existing-booking
	// block, atomically.
	CommitSchedule(ctx context.Context, result *app.OptimizationResult) error
}

type BlockService interface {
	AddBlock(ctx context.Context, b *domain.CalendarBlock) error
	ListWindow(ctx context.Context, userID string, window domain.Window) ([]*domain.CalendarBlock, error)
	DeleteBlock(ctx context.Context, id string) error
	SetNoMeetingDay(ctx context.Context, userID string, weekday time.Weekday, active bool) error
	ListNoMeetingDays(ctx context.Context, userID string) ([]*domain.NoMeetingRule, error)
}

type EnergyService interface {
	LogSample(ctx context.Context, s *domain.EnergySample) error
	Report(ctx context.Context, userID string) (*energy.Pattern, error)
}

type ReviewService interface {
	ReviewWindow(ctx context.Context, userID string, start time.Time, days int) (*enforcement.ComplianceReport, error)
}
