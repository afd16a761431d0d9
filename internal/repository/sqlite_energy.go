package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pvermeer/horae/internal/db"
	"github.com/pvermeer/horae/internal/domain"
)

// SQLiteEnergySampleRepo implements EnergySampleRepo using a SQLite database.
type SQLiteEnergySampleRepo struct {
	db db.DBTX
}

// NewSQLiteEnergySampleRepo creates a new SQLiteEnergySampleRepo.
func NewSQLiteEnergySampleRepo(conn db.DBTX) *SQLiteEnergySampleRepo {
	return &SQLiteEnergySampleRepo{db: conn}
}

func (r *SQLiteEnergySampleRepo) Create(ctx context.Context, s *domain.EnergySample) error {
	query := `INSERT INTO energy_samples (id, user_id, recorded_at, level) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.RecordedAt.UTC().Format(time.RFC3339),
		s.Level,
	)
	if err != nil {
		return fmt.Errorf("inserting energy sample: %w", err)
	}
	return nil
}

func (r *SQLiteEnergySampleRepo) ListSince(ctx context.Context, userID string, since time.Time) ([]*domain.EnergySample, error) {
	query := `SELECT id, user_id, recorded_at, level FROM energy_samples
		WHERE user_id = ? AND recorded_at >= ? ORDER BY recorded_at`
	rows, err := r.db.QueryContext(ctx, query, userID, since.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("querying energy samples: %w", err)
	}
	defer rows.Close()

	var out []*domain.EnergySample
	for rows.Next() {
		var s domain.EnergySample
		var recordedAt string
		if err := rows.Scan(&s.ID, &s.UserID, &recordedAt, &s.Level); err != nil {
			return nil, fmt.Errorf("scanning energy sample: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, recordedAt); err == nil {
			s.RecordedAt = t
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
