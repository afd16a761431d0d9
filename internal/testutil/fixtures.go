package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/pvermeer/horae/internal/domain"
)

// Meeting options
type MeetingOption func(*domain.Meeting)

func WithMeetingID(id string) MeetingOption {
	return func(m *domain.Meeting) {
		m.ID = id
	}
}

func WithType(t domain.MeetingType) MeetingOption {
	return func(m *domain.Meeting) {
		m.Type = t
	}
}

func WithPriority(p int) MeetingOption {
	return func(m *domain.Meeting) {
		m.Priority = p
	}
}

func WithFlexibility(f domain.Flexibility) MeetingOption {
	return func(m *domain.Meeting) {
		m.Flexibility = f
	}
}

func WithDuration(min int) MeetingOption {
	return func(m *domain.Meeting) {
		m.DurationMin = min
	}
}

func WithParticipants(names ...string) MeetingOption {
	return func(m *domain.Meeting) {
		m.Participants = names
	}
}

func WithAssignment(slot domain.TimeSlot, score float64) MeetingOption {
	return func(m *domain.Meeting) {
		m.ScheduledStart = &slot.Start
		m.ScheduledEnd = &slot.End
		m.ScheduledScore = &score
	}
}

func NewTestMeeting(userID, title string, opts ...MeetingOption) *domain.Meeting {
	now := time.Now().UTC()
	m := &domain.Meeting{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		DurationMin: 30,
		Type:        domain.MeetingCollaborative,
		Priority:    5,
		Flexibility: domain.FlexibilityMedium,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CalendarBlock options
type BlockOption func(*domain.CalendarBlock)

func WithBlockType(t domain.BlockType) BlockOption {
	return func(b *domain.CalendarBlock) {
		b.Type = t
	}
}

func WithBlockReason(r string) BlockOption {
	return func(b *domain.CalendarBlock) {
		b.Reason = r
	}
}

func NewTestBlock(userID string, start, end time.Time, opts ...BlockOption) *domain.CalendarBlock {
	b := &domain.CalendarBlock{
		ID:        uuid.New().String(),
		UserID:    userID,
		Start:     start,
		End:       end,
		Type:      domain.BlockExistingBooking,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func NewTestSample(userID string, at time.Time, level float64) *domain.EnergySample {
	return &domain.EnergySample{
		ID:         uuid.New().String(),
		UserID:     userID,
		RecordedAt: at,
		Level:      level,
	}
}

// Day returns midnight UTC of the given date, the anchor most scheduling
// tests build their horizons from.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
