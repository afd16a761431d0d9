package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pvermeer/horae/internal/domain"
	"github.com/pvermeer/horae/internal/repository"
)

type blockService struct {
	blocks repository.BlockRepo
	rules  repository.NoMeetingRuleRepo
	now    func() time.Time
}

func NewBlockService(blocks repository.BlockRepo, rules repository.NoMeetingRuleRepo) BlockService {
	return &blockService{
		blocks: blocks,
		rules:  rules,
		now:    time.Now,
	}
}

func (s *blockService) AddBlock(ctx context.Context, b *domain.CalendarBlock) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if err := b.Validate(); err != nil {
		return fmt.Errorf("invalid block: %w", err)
	}
	b.CreatedAt = s.now().UTC()
	return s.blocks.Create(ctx, b)
}

func (s *blockService) ListWindow(ctx context.Context, userID string, window domain.Window) ([]*domain.CalendarBlock, error) {
	return s.blocks.ListInWindow(ctx, userID, window)
}

func (s *blockService) DeleteBlock(ctx context.Context, id string) error {
	return s.blocks.Delete(ctx, id)
}

func (s *blockService) SetNoMeetingDay(ctx context.Context, userID string, weekday time.Weekday, active bool) error {
	if !active {
		return s.rules.Deactivate(ctx, userID, weekday)
	}
	return s.rules.Upsert(ctx, &domain.NoMeetingRule{
		ID:        uuid.NewString(),
		UserID:    userID,
		Weekday:   weekday,
		Active:    true,
		CreatedAt: s.now().UTC(),
	})
}

func (s *blockService) ListNoMeetingDays(ctx context.Context, userID string) ([]*domain.NoMeetingRule, error) {
	return s.rules.ListActive(ctx, userID)
}
