package repository

import (
	"context"
	"errors"
	"time"

	"github.com/pvermeer/horae/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist. Callers
// match it with errors.Is.
var ErrNotFound = errors.New("not found")

type MeetingRepo interface {
	Create(ctx context.Context, m *domain.Meeting) error
	GetByID(ctx context.Context, id string) (*domain.Meeting, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Meeting, error)
	ListUnscheduled(ctx context.Context, userID string) ([]*domain.Meeting, error)
	SaveAssignment(ctx context.Context, id string, slot domain.TimeSlot, score float64) error
	ClearAssignment(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type BlockRepo interface {
	Create(ctx context.Context, b *domain.CalendarBlock) error
	GetByID(ctx context.Context, id string) (*domain.CalendarBlock, error)
	ListInWindow(ctx context.Context, userID string, window domain.Window) ([]*domain.CalendarBlock, error)
	Delete(ctx context.Context, id string) error
}

type NoMeetingRuleRepo interface {
	Upsert(ctx context.Context, r *domain.NoMeetingRule) error
	ListActive(ctx context.Context, userID string) ([]*domain.NoMeetingRule, error)
	Deactivate(ctx context.Context, userID string, weekday time.Weekday) error
}

type EnergySampleRepo interface {
	Create(ctx context.Context, s *domain.EnergySample) error
	ListSince(ctx context.Context, userID string, since time.Time) ([]*domain.EnergySample, error)
}
