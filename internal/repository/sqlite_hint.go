package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/projextpal/projextpal-cli/internal/db"
)

type SQLiteHintRepo struct {
	db db.DBTX
}

func NewSQLiteHintRepo(conn db.DBTX) *SQLiteHintRepo {
	return &SQLiteHintRepo{db: conn}
}

// Dismiss is idempotent; the first dismissal time is kept.
func (r *SQLiteHintRepo) Dismiss(ctx context.Context, key string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO hint_dismissals (hint_key, dismissed_at) VALUES (?, ?)
		 ON CONFLICT(hint_key) DO NOTHING`,
		key, formatTime(at),
	)
	if err != nil {
		return fmt.Errorf("dismissing hint %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteHintRepo) IsDismissed(ctx context.Context, key string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM hint_dismissals WHERE hint_key = ?`, key,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking hint %s: %w", key, err)
	}
	return true, nil
}

func (r *SQLiteHintRepo) ListDismissed(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT hint_key FROM hint_dismissals ORDER BY hint_key`)
	if err != nil {
		return nil, fmt.Errorf("listing hints: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning hint: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (r *SQLiteHintRepo) Reset(ctx context.Context) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hint_dismissals`)
	if err != nil {
		return 0, fmt.Errorf("resetting hints: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
