package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/projextpal/projextpal-cli/internal/db"
	"github.com/projextpal/projextpal-cli/internal/domain"
)

const historyColumns = `id, entity, remote_id, name, category, path, source, confidence, created_at`

type SQLiteHistoryRepo struct {
	db db.DBTX
}

func NewSQLiteHistoryRepo(conn db.DBTX) *SQLiteHistoryRepo {
	return &SQLiteHistoryRepo{db: conn}
}

func (r *SQLiteHistoryRepo) Insert(ctx context.Context, rec *domain.CreationRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO creation_history (`+historyColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Entity, rec.RemoteID, rec.Name, rec.Category, rec.Path, rec.Source,
		nullableIntToValue(rec.Confidence), formatTime(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting creation record: %w", err)
	}
	return nil
}

func (r *SQLiteHistoryRepo) GetByID(ctx context.Context, id string) (*domain.CreationRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+historyColumns+` FROM creation_history WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("creation record %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting creation record: %w", err)
	}
	return rec, nil
}

// ListRecent returns newest first. An empty entity lists every entity and
// a non-positive limit returns all rows.
func (r *SQLiteHistoryRepo) ListRecent(ctx context.Context, entity string, limit int) ([]*domain.CreationRecord, error) {
	var (
		where []string
		args  []any
	)
	if entity != "" {
		where = append(where, "entity = ?")
		args = append(args, entity)
	}
	query := `SELECT ` + historyColumns + ` FROM creation_history`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, rowid DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing creation history: %w", err)
	}
	defer rows.Close()

	var out []*domain.CreationRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning creation record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteHistoryRepo) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM creation_history WHERE id NOT IN (
			SELECT id FROM creation_history ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning creation history: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r *SQLiteHistoryRepo) Clear(ctx context.Context) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM creation_history`)
	if err != nil {
		return 0, fmt.Errorf("clearing creation history: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*domain.CreationRecord, error) {
	var (
		rec        domain.CreationRecord
		confidence sql.NullInt64
		createdAt  string
	)
	err := s.Scan(&rec.ID, &rec.Entity, &rec.RemoteID, &rec.Name, &rec.Category,
		&rec.Path, &rec.Source, &confidence, &createdAt)
	if err != nil {
		return nil, err
	}
	rec.Confidence = nullableInt(confidence)
	rec.CreatedAt = parseTime(createdAt)
	return &rec, nil
}
