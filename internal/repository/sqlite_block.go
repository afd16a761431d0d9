package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pvermeer/horae/internal/db"
	"github.com/pvermeer/horae/internal/domain"
)

const blockColumns = `id, user_id, start_at, end_at, block_type, reason, created_at`

// SQLiteBlockRepo implements BlockRepo using a SQLite database.
type SQLiteBlockRepo struct {
	db db.DBTX
}

// NewSQLiteBlockRepo creates a new SQLiteBlockRepo.
func NewSQLiteBlockRepo(conn db.DBTX) *SQLiteBlockRepo {
	return &SQLiteBlockRepo{db: conn}
}

func (r *SQLiteBlockRepo) Create(ctx context.Context, b *domain.CalendarBlock) error {
	query := `INSERT INTO calendar_blocks (` + blockColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.UserID,
		b.Start.UTC().Format(time.RFC3339),
		b.End.UTC().Format(time.RFC3339),
		string(b.Type),
		b.Reason,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting calendar block: %w", err)
	}
	return nil
}

func (r *SQLiteBlockRepo) GetByID(ctx context.Context, id string) (*domain.CalendarBlock, error) {
	query := `SELECT ` + blockColumns + ` FROM calendar_blocks WHERE id = ?`
	b, err := scanBlock(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("calendar block: %w", ErrNotFound)
		}
		return nil, err
	}
	return b, nil
}

// ListInWindow returns blocks intersecting [window.Start, window.End),
// ascending by start time.
func (r *SQLiteBlockRepo) ListInWindow(ctx context.Context, userID string, window domain.Window) ([]*domain.CalendarBlock, error) {
	query := `SELECT ` + blockColumns + ` FROM calendar_blocks
		WHERE user_id = ? AND start_at < ? AND end_at > ?
		ORDER BY start_at`
	rows, err := r.db.QueryContext(ctx, query,
		userID,
		window.End.UTC().Format(time.RFC3339),
		window.Start.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("querying calendar blocks: %w", err)
	}
	defer rows.Close()

	var out []*domain.CalendarBlock
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *SQLiteBlockRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calendar_blocks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting calendar block: %w", err)
	}
	return requireRow(res, "calendar block")
}

func scanBlock(row rowScanner) (*domain.CalendarBlock, error) {
	var b domain.CalendarBlock
	var startAt, endAt, blockType, createdAt string

	err := row.Scan(&b.ID, &b.UserID, &startAt, &endAt, &blockType, &b.Reason, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning calendar block: %w", err)
	}

	b.Type = domain.BlockType(blockType)
	if t, err := time.Parse(time.RFC3339, startAt); err == nil {
		b.Start = t
	}
	if t, err := time.Parse(time.RFC3339, endAt); err == nil {
		b.End = t
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		b.CreatedAt = t
	}
	return &b, nil
}
