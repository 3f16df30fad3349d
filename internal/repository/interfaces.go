package repository

import (
	"context"
	"time"

	"github.com/projextpal/projextpal-cli/internal/domain"
)

type HintRepo interface {
	Dismiss(ctx context.Context, key string, at time.Time) error
	IsDismissed(ctx context.Context, key string) (bool, error)
	ListDismissed(ctx context.Context) ([]string, error)
	Reset(ctx context.Context) (int, error)
}

type HistoryRepo interface {
	Insert(ctx context.Context, rec *domain.CreationRecord) error
	GetByID(ctx context.Context, id string) (*domain.CreationRecord, error)
	ListRecent(ctx context.Context, entity string, limit int) ([]*domain.CreationRecord, error)
	// Prune keeps the newest keep rows and returns how many were removed.
	Prune(ctx context.Context, keep int) (int, error)
	Clear(ctx context.Context) (int, error)
}
