package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/projextpal/projextpal-cli/internal/db"
)

// FailingUoW is a db.UnitOfWork whose transaction returns Err from the
// Nth ExecContext (counting from 1) whose query contains Match. An empty
// Match counts every statement. Queries are never failed.
type FailingUoW struct {
	DB    *sql.DB
	Match string
	Nth   int
	Err   error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(ctx, &failingTx{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failingTx struct {
	db.DBTX
	uow *FailingUoW

	mu   sync.Mutex
	seen int
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.Contains(query, f.uow.Match) {
		f.mu.Lock()
		f.seen++
		hit := f.seen == f.uow.Nth
		f.mu.Unlock()
		if hit {
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
