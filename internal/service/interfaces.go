// Package service exposes the local-state use cases the CLI calls after a
// wizard finishes: recording creations and tracking dismissed hints.
package service

import (
	"context"

	"github.com/projextpal/projextpal-cli/internal/domain"
	"github.com/projextpal/projextpal-cli/internal/wizard"
)

type HistoryService interface {
	// Record stores a successful creation and prunes old entries.
	Record(ctx context.Context, created *wizard.Created, rec *wizard.Recommendation, source wizard.Source) (*domain.CreationRecord, error)
	Recent(ctx context.Context, entity string, limit int) ([]*domain.CreationRecord, error)
	Clear(ctx context.Context) (int, error)
}

type HintService interface {
	// Pending returns the text of key, or "" when it has been dismissed.
	Pending(ctx context.Context, key string) (string, error)
	Dismiss(ctx context.Context, key string) error
	Reset(ctx context.Context) (int, error)
}
