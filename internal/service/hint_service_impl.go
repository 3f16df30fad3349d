package service

import (
	"context"
	"fmt"
	"time"

	"github.com/projextpal/projextpal-cli/internal/domain"
	"github.com/projextpal/projextpal-cli/internal/repository"
)

type hintService struct {
	hints    repository.HintRepo
	now      func() time.Time
	observer UseCaseObserver
}

func NewHintService(hints repository.HintRepo, observers ...UseCaseObserver) HintService {
	return &hintService{hints: hints, now: time.Now, observer: useCaseObserverOrNoop(observers)}
}

func (s *hintService) Pending(ctx context.Context, key string) (string, error) {
	text, ok := domain.Hints[key]
	if !ok {
		return "", fmt.Errorf("unknown hint %q", key)
	}
	dismissed, err := s.hints.IsDismissed(ctx, key)
	if err != nil {
		return "", err
	}
	if dismissed {
		return "", nil
	}
	return text, nil
}

func (s *hintService) Dismiss(ctx context.Context, key string) (err error) {
	start := time.Now()
	defer func() { observe(ctx, s.observer, "hints.dismiss", start, err, map[string]any{"hint": key}) }()

	if _, ok := domain.Hints[key]; !ok {
		return fmt.Errorf("unknown hint %q", key)
	}
	return s.hints.Dismiss(ctx, key, s.now())
}

func (s *hintService) Reset(ctx context.Context) (_ int, err error) {
	start := time.Now()
	defer func() { observe(ctx, s.observer, "hints.reset", start, err, nil) }()
	return s.hints.Reset(ctx)
}
