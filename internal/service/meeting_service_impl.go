package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pvermeer/horae/internal/app"
	"github.com/pvermeer/horae/internal/db"
	"github.com/pvermeer/horae/internal/domain"
	"github.com/pvermeer/horae/internal/repository"
)

type meetingService struct {
	meetings repository.MeetingRepo
	uow      db.UnitOfWork
	now      func() time.Time
}

func NewMeetingService(meetings repository.MeetingRepo, uow db.UnitOfWork) MeetingService {
	return &meetingService{
		meetings: meetings,
		uow:      uow,
		now:      time.Now,
	}
}

func (s *meetingService) Create(ctx context.Context, m *domain.Meeting) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if err := m.Validate(); err != nil {
		return invalidMeeting(err)
	}
	now := s.now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	return s.meetings.Create(ctx, m)
}

func (s *meetingService) GetByID(ctx context.Context, id string) (*domain.Meeting, error) {
	return s.meetings.GetByID(ctx, id)
}

func (s *meetingService) ListByUser(ctx context.Context, userID string) ([]*domain.Meeting, error) {
	return s.meetings.ListByUser(ctx, userID)
}

func (s *meetingService) ListUnscheduled(ctx context.Context, userID string) ([]*domain.Meeting, error) {
	return s.meetings.ListUnscheduled(ctx, userID)
}

func (s *meetingService) Delete(ctx context.Context, id string) error {
	return s.meetings.Delete(ctx, id)
}

// CommitSchedule persists an optimization result atomically: each scheduled
// meeting gets its assignment saved and an existing-booking block created so
// later runs see the slot as taken. All writes share one transaction; a
// failure rolls back the whole commit.
func (s *meetingService) CommitSchedule(ctx context.Context, result *app.OptimizationResult) error {
	if result == nil || len(result.Scheduled) == 0 {
		return nil
	}

	ids := make([]string, 0, len(result.Scheduled))
	for id := range result.Scheduled {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	now := s.now().UTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		meetings := repository.NewSQLiteMeetingRepo(tx)
		blocks := repository.NewSQLiteBlockRepo(tx)

		for _, id := range ids {
			sm := result.Scheduled[id]
			if err := meetings.SaveAssignment(ctx, id, sm.Slot, sm.Score); err != nil {
				return fmt.Errorf("saving assignment for %s: %w", id, err)
			}
			block := &domain.CalendarBlock{
				ID:        uuid.NewString(),
				UserID:    sm.Meeting.UserID,
				Start:     sm.Slot.Start,
				End:       sm.Slot.End,
				Type:      domain.BlockExistingBooking,
				Reason:    "scheduled: " + sm.Meeting.Title,
				CreatedAt: now,
			}
			if err := blocks.Create(ctx, block); err != nil {
				return fmt.Errorf("creating booking block for %s: %w", id, err)
			}
		}
		return nil
	})
}
