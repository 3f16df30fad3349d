package service

import (
	"context"
	"fmt"
	"time"

	"github.com/projextpal/projextpal-cli/internal/db"
	"github.com/projextpal/projextpal-cli/internal/domain"
	"github.com/projextpal/projextpal-cli/internal/repository"
	"github.com/projextpal/projextpal-cli/internal/wizard"
)

// DefaultHistoryLimit is how many creations are kept locally.
const DefaultHistoryLimit = 50

type historyService struct {
	history  repository.HistoryRepo
	uow      db.UnitOfWork
	keep     int
	now      func() time.Time
	observer UseCaseObserver
}

func NewHistoryService(history repository.HistoryRepo, uow db.UnitOfWork, observers ...UseCaseObserver) HistoryService {
	return &historyService{
		history:  history,
		uow:      uow,
		keep:     DefaultHistoryLimit,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *historyService) Record(ctx context.Context, created *wizard.Created, rec *wizard.Recommendation, source wizard.Source) (_ *domain.CreationRecord, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "history.record", start, err, map[string]any{"entity": created.Entity})
	}()

	record := domain.NewCreationRecord(created.Entity, created.ID, created.Name, created.Category, created.Path, s.now())
	record.Source = string(source)
	if rec != nil {
		confidence := rec.Confidence
		record.Confidence = &confidence
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteHistoryRepo(tx)
		if err := repo.Insert(ctx, record); err != nil {
			return err
		}
		if _, err := repo.Prune(ctx, s.keep); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("recording creation: %w", err)
	}
	return record, nil
}

func (s *historyService) Recent(ctx context.Context, entity string, limit int) ([]*domain.CreationRecord, error) {
	return s.history.ListRecent(ctx, entity, limit)
}

func (s *historyService) Clear(ctx context.Context) (_ int, err error) {
	start := time.Now()
	defer func() { observe(ctx, s.observer, "history.clear", start, err, nil) }()
	return s.history.Clear(ctx)
}
