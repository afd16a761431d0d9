package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pvermeer/horae/internal/db"
	"github.com/pvermeer/horae/internal/domain"
)

// SQLiteNoMeetingRuleRepo implements NoMeetingRuleRepo using a SQLite database.
type SQLiteNoMeetingRuleRepo struct {
	db db.DBTX
}

// NewSQLiteNoMeetingRuleRepo creates a new SQLiteNoMeetingRuleRepo.
func NewSQLiteNoMeetingRuleRepo(conn db.DBTX) *SQLiteNoMeetingRuleRepo {
	return &SQLiteNoMeetingRuleRepo{db: conn}
}

func (r *SQLiteNoMeetingRuleRepo) Upsert(ctx context.Context, rule *domain.NoMeetingRule) error {
	query := `INSERT INTO no_meeting_rules (id, user_id, weekday, active, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, weekday) DO UPDATE SET active = excluded.active`
	active := 0
	if rule.Active {
		active = 1
	}
	_, err := r.db.ExecContext(ctx, query,
		rule.ID,
		rule.UserID,
		int(rule.Weekday),
		active,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting no-meeting rule: %w", err)
	}
	return nil
}

func (r *SQLiteNoMeetingRuleRepo) ListActive(ctx context.Context, userID string) ([]*domain.NoMeetingRule, error) {
	query := `SELECT id, user_id, weekday, active, created_at
		FROM no_meeting_rules WHERE user_id = ? AND active = 1 ORDER BY weekday`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying no-meeting rules: %w", err)
	}
	defer rows.Close()

	var out []*domain.NoMeetingRule
	for rows.Next() {
		var rule domain.NoMeetingRule
		var weekday, active int
		var createdAt string
		if err := rows.Scan(&rule.ID, &rule.UserID, &weekday, &active, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning no-meeting rule: %w", err)
		}
		rule.Weekday = time.Weekday(weekday)
		rule.Active = active != 0
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			rule.CreatedAt = t
		}
		out = append(out, &rule)
	}
	return out, rows.Err()
}

func (r *SQLiteNoMeetingRuleRepo) Deactivate(ctx context.Context, userID string, weekday time.Weekday) error {
	query := `UPDATE no_meeting_rules SET active = 0 WHERE user_id = ? AND weekday = ?`
	res, err := r.db.ExecContext(ctx, query, userID, int(weekday))
	if err != nil {
		return fmt.Errorf("deactivating no-meeting rule: %w", err)
	}
	return requireRow(res, "no-meeting rule")
}
