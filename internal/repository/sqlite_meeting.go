package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pvermeer/horae/internal/db"
	"github.com/pvermeer/horae/internal/domain"
)

// meetingColumns is the canonical SELECT column list for meetings.
const meetingColumns = `id, user_id, title, duration_min, meeting_type, participants,
		priority, flexibility, scheduled_start, scheduled_end, scheduled_score,
		created_at, updated_at`

// SQLiteMeetingRepo implements MeetingRepo using a SQLite database.
type SQLiteMeetingRepo struct {
	db db.DBTX
}

// NewSQLiteMeetingRepo creates a new SQLiteMeetingRepo.
func NewSQLiteMeetingRepo(conn db.DBTX) *SQLiteMeetingRepo {
	return &SQLiteMeetingRepo{db: conn}
}

func (r *SQLiteMeetingRepo) Create(ctx context.Context, m *domain.Meeting) error {
	now := nowUTC()
	query := `INSERT INTO meetings (` + meetingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.UserID,
		m.Title,
		m.DurationMin,
		string(m.Type),
		joinParticipants(m.Participants),
		m.Priority,
		string(m.Flexibility),
		nullableTimeToString(m.ScheduledStart, time.RFC3339),
		nullableTimeToString(m.ScheduledEnd, time.RFC3339),
		nullableFloatToValue(m.ScheduledScore),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("inserting meeting: %w", err)
	}
	return nil
}

func (r *SQLiteMeetingRepo) GetByID(ctx context.Context, id string) (*domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteMeetingRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE user_id = ? ORDER BY priority DESC, id`
	return r.list(ctx, query, userID)
}

func (r *SQLiteMeetingRepo) ListUnscheduled(ctx context.Context, userID string) ([]*domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings
		WHERE user_id = ? AND scheduled_start IS NULL
		ORDER BY priority DESC, id`
	return r.list(ctx, query, userID)
}

func (r *SQLiteMeetingRepo) SaveAssignment(ctx context.Context, id string, slot domain.TimeSlot, score float64) error {
	query := `UPDATE meetings
		SET scheduled_start = ?, scheduled_end = ?, scheduled_score = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		slot.Start.UTC().Format(time.RFC3339),
		slot.End.UTC().Format(time.RFC3339),
		score,
		nowUTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("saving assignment: %w", err)
	}
	return requireRow(res, "meeting")
}

func (r *SQLiteMeetingRepo) ClearAssignment(ctx context.Context, id string) error {
	query := `UPDATE meetings
		SET scheduled_start = NULL, scheduled_end = NULL, scheduled_score = NULL, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("clearing assignment: %w", err)
	}
	return requireRow(res, "meeting")
}

func (r *SQLiteMeetingRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM meetings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting meeting: %w", err)
	}
	return requireRow(res, "meeting")
}

func (r *SQLiteMeetingRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Meeting, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying meetings: %w", err)
	}
	defer rows.Close()

	var out []*domain.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteMeetingRepo) scanOne(row *sql.Row) (*domain.Meeting, error) {
	m, err := scanMeeting(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("meeting: %w", ErrNotFound)
		}
		return nil, err
	}
	return m, nil
}

func scanMeeting(row rowScanner) (*domain.Meeting, error) {
	var m domain.Meeting
	var meetingType, flexibility, participants, createdAt, updatedAt string
	var schedStart, schedEnd sql.NullString
	var schedScore sql.NullFloat64

	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Title,
		&m.DurationMin,
		&meetingType,
		&participants,
		&m.Priority,
		&flexibility,
		&schedStart,
		&schedEnd,
		&schedScore,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning meeting: %w", err)
	}

	m.Type = domain.MeetingType(meetingType)
	m.Flexibility = domain.Flexibility(flexibility)
	m.Participants = splitParticipants(participants)
	m.ScheduledStart = parseNullableTime(schedStart, time.RFC3339)
	m.ScheduledEnd = parseNullableTime(schedEnd, time.RFC3339)
	if schedScore.Valid {
		s := schedScore.Float64
		m.ScheduledScore = &s
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		m.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		m.UpdatedAt = t
	}
	return &m, nil
}

func requireRow(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
