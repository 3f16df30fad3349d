package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/projextpal/projextpal-cli/internal/auth"
)

// GenerateRequest holds the parameters for a text generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of a text generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// TextGenerator turns a prompt into free text. The text is expected,
// but not guaranteed, to contain a JSON object.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// New builds the TextGenerator selected by cfg.Backend. creds is only
// consulted by the projextpal backend.
func New(ctx context.Context, cfg LLMConfig, creds auth.Provider, observer Observer) (TextGenerator, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	switch cfg.Backend {
	case BackendProjeXtPal, "":
		return NewBackendClient(cfg, creds, observer), nil
	case BackendOllama:
		return NewOllamaClient(cfg, observer), nil
	case BackendGemini:
		return NewGeminiClient(ctx, cfg, observer)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		},
	}
}

// retryBackoff is the wait before the first retry. It doubles per attempt.
var retryBackoff = 200 * time.Millisecond

// attemptFunc performs one request and returns the completion text and model.
type attemptFunc func(ctx context.Context) (text string, model string, err error)

// generate runs attempt with the task timeout and retry budget applied,
// reports the call to the observer and maps failures onto the package
// sentinels.
func generate(ctx context.Context, cfg LLMConfig, observer Observer, task TaskType, attempt attemptFunc) (*GenerateResponse, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, cfg.TaskTimeout(task))
	defer cancel()

	var lastErr error
	attempts := 1 + cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		text, model, err := attempt(ctx)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			observer.OnCallComplete(LLMCallEvent{
				Task:      task,
				Backend:   cfg.Backend,
				Model:     model,
				LatencyMs: latency,
				Success:   true,
			})
			return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
		}
		lastErr = err

		// Don't retry once the deadline or the caller gave up.
		if ctx.Err() != nil || !retryable(err) || i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
		case <-time.After(retryBackoff << i):
		}
	}

	var failure error
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		failure = ErrTimeout
	case errors.Is(ctx.Err(), context.Canceled):
		failure = fmt.Errorf("ai request cancelled: %w", context.Canceled)
	default:
		failure = fmt.Errorf("%w: %v", ErrAIUnavailable, lastErr)
	}

	observer.OnCallComplete(LLMCallEvent{
		Task:      task,
		Backend:   cfg.Backend,
		Model:     cfg.DefaultModel(),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(failure),
	})
	return nil, failure
}

// joinPrompt flattens a system and user prompt into the single opaque
// string accepted by prompt-only endpoints.
func joinPrompt(system, user string) string {
	system = strings.TrimSpace(system)
	if system == "" {
		return user
	}
	return system + "\n\n" + user
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, context.Canceled):
		return "CANCELLED"
	case errors.Is(err, ErrAIUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}
