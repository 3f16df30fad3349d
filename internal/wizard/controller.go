// Package wizard implements the AI-assisted creation wizard: a linear
// state machine from a free-text idea through category selection, details
// and review to creation, with a tolerant parser for the AI's answer.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/projextpal/projextpal-cli/internal/backend"
	"github.com/projextpal/projextpal-cli/internal/llm"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// DefaultAITimeout bounds an analysis call when none is configured.
const DefaultAITimeout = 30 * time.Second

// Creator persists a finished entity.
type Creator interface {
	Create(ctx context.Context, resource string, payload any) (*backend.Resource, error)
}

// Created describes a successfully created entity.
type Created struct {
	ID       string
	Path     string
	Entity   string
	Resource string
	Name     string
	Category string
}

// Controller drives one wizard session. It is safe for concurrent use;
// at most one AI or creation call runs at a time.
type Controller struct {
	tmpl      *Template
	gen       llm.TextGenerator
	creator   Creator
	notifier  Notifier
	logger    *zap.Logger
	aiTimeout time.Duration
	now       func() time.Time

	inflight *semaphore.Weighted

	mu      sync.Mutex
	session *Session
	ctx     context.Context
	cancel  context.CancelFunc
	epoch   int
}

// Option configures a Controller.
type Option func(*Controller)

func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithAITimeout bounds each analysis call. Non-positive values keep the
// default.
func WithAITimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.aiTimeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController opens a fresh session for tmpl.
func NewController(tmpl *Template, gen llm.TextGenerator, creator Creator, opts ...Option) *Controller {
	c := &Controller{
		tmpl:      tmpl,
		gen:       gen,
		creator:   creator,
		notifier:  NopNotifier{},
		logger:    zap.NewNop(),
		aiTimeout: DefaultAITimeout,
		now:       time.Now,
		inflight:  semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("entity", tmpl.Entity))
	c.open()
	return c
}

// Template returns the template the controller was built with.
func (c *Controller) Template() *Template { return c.tmpl }

// open must be called with mu held, or before the controller is shared.
func (c *Controller) open() {
	c.session = newSession()
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.epoch++
	c.logger.Debug("wizard_open", zap.String("session", c.session.ID))
}

// teardown cancels the session context so a pending call unwinds and
// its result is discarded. mu must be held.
func (c *Controller) teardown(reason string) {
	if c.session == nil {
		return
	}
	c.logger.Debug("wizard_close", zap.String("session", c.session.ID), zap.String("reason", reason))
	c.cancel()
	c.session = nil
	c.epoch++
}

// Snapshot returns a copy of the current session. ok is false once the
// session has been closed.
func (c *Controller) Snapshot() (s Session, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return Session{}, false
	}
	return c.session.clone(), true
}

// Closed reports whether the session has been discarded.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session == nil
}

// Close discards the session and cancels any pending call.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardown("close")
}

// Skip discards the session without creating anything.
func (c *Controller) Skip() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardown("skip")
}

// Reset discards the session and opens a new one at Idea.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardown("reset")
	c.open()
}

// AnalyzeIdea asks the AI for a recommendation and moves to category
// selection. Unparseable answers degrade to the fallback category; only a
// failed call keeps the session at Idea.
func (c *Controller) AnalyzeIdea(ctx context.Context, text string) error {
	idea := strings.TrimSpace(text)

	c.mu.Lock()
	s, err := c.active()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if s.Step != StepIdea {
		c.mu.Unlock()
		return invalidTransition("analyze", s.Step)
	}
	if idea == "" {
		verr := &ValidationError{Field: "idea", Message: "describe what you want to create"}
		s.InlineError = verr.Error()
		c.mu.Unlock()
		return verr
	}
	if !c.inflight.TryAcquire(1) {
		c.mu.Unlock()
		return ErrInFlight
	}
	defer c.inflight.Release(1)

	s.AILoading = true
	s.InlineError = ""
	epoch, sessCtx := c.epoch, c.ctx
	now := c.now()
	c.mu.Unlock()

	callCtx, cancel := context.WithTimeout(sessCtx, c.aiTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	resp, genErr := c.gen.Generate(callCtx, llm.GenerateRequest{
		Task:         c.tmpl.Task,
		SystemPrompt: c.tmpl.SystemPrompt,
		UserPrompt:   c.tmpl.Prompt(idea, c.tmpl.Catalog.Keys(), now),
	})

	c.mu.Lock()
	if c.epoch != epoch || c.session == nil {
		c.mu.Unlock()
		c.logger.Debug("wizard_discard_late_result", zap.String("op", "analyze"))
		return ErrSessionClosed
	}
	s = c.session
	s.AILoading = false

	if genErr != nil {
		c.mu.Unlock()
		c.logger.Warn("wizard_analyze_failed", zap.String("session", s.ID), zap.Error(genErr))
		c.notifier.Notify(Notification{
			Level:   LevelError,
			Title:   "AI assistant unavailable",
			Message: "Could not analyze your idea. Please try again or choose manually.",
		})
		return &AIUnavailableError{Err: genErr}
	}

	analysis := Analyze(resp.Text, c.tmpl.Catalog)
	rec := analysis.Recommendation
	s.Idea = idea
	s.Recommendation = &rec
	s.Source = analysis.Source
	c.tmpl.prefill(s.Form, s.edited, analysis.Suggestions, c.defaults(idea, now))
	s.Form[CategoryField] = rec.Category
	c.move(s, StepMethodologySelection)
	c.mu.Unlock()

	if analysis.Source == SourceFallback {
		c.notifier.Notify(Notification{
			Level:   LevelInfo,
			Title:   "No clear recommendation",
			Message: fmt.Sprintf("Preselected %s. Pick another category if it fits better.", c.label(rec.Category)),
		})
	}
	return nil
}

// ChooseManually leaves Idea without asking the AI. The fallback category
// is preselected and the form holds the template defaults.
func (c *Controller) ChooseManually(idea string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, err := c.active()
	if err != nil {
		return err
	}
	if s.Step != StepIdea {
		return invalidTransition("choose manually", s.Step)
	}
	idea = strings.TrimSpace(idea)
	s.Idea = idea
	s.Recommendation = nil
	s.Source = ""
	s.InlineError = ""
	c.tmpl.prefill(s.Form, s.edited, nil, c.defaults(idea, c.now()))
	if !c.tmpl.Catalog.Has(s.Form[CategoryField]) {
		s.Form[CategoryField] = c.tmpl.Catalog.Fallback().Key
	}
	c.move(s, StepMethodologySelection)
	return nil
}

// SelectCategory records the chosen category and moves to Details.
func (c *Controller) SelectCategory(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, err := c.active()
	if err != nil {
		return err
	}
	if s.Step != StepMethodologySelection {
		return invalidTransition("select category", s.Step)
	}
	if !c.tmpl.Catalog.Has(key) {
		return &ValidationError{Field: CategoryField, Message: fmt.Sprintf("unknown category %q", key)}
	}
	s.Form[CategoryField] = c.tmpl.Catalog.Resolve(key)
	s.InlineError = ""
	c.move(s, StepDetails)
	return nil
}

// SetField records a user edit. Edited fields survive later AI prefill.
func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, err := c.active()
	if err != nil {
		return err
	}
	if s.Busy() || s.Step == StepCreating {
		return ErrInFlight
	}
	if name == CategoryField {
		return &ValidationError{Field: name, Message: "use category selection to change the category"}
	}
	if _, ok := c.tmpl.Field(name); !ok {
		return &ValidationError{Field: name, Message: "unknown field"}
	}
	s.Form[name] = value
	s.edited[name] = true
	return nil
}

// GoToReview validates the form and moves to Review.
func (c *Controller) GoToReview() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, err := c.active()
	if err != nil {
		return err
	}
	if s.Step != StepDetails {
		return invalidTransition("review", s.Step)
	}
	if err := c.tmpl.Validate(s.Form); err != nil {
		s.InlineError = err.Error()
		return err
	}
	s.InlineError = ""
	c.move(s, StepReview)
	return nil
}

// Back moves one step backward without discarding any form data.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, err := c.active()
	if err != nil {
		return err
	}
	if s.Busy() {
		return ErrInFlight
	}
	prev, ok := s.Step.previous()
	if !ok {
		return invalidTransition("back", s.Step)
	}
	s.InlineError = ""
	c.move(s, prev)
	return nil
}

// Submit creates the entity. On success the session is closed and the
// created entity returned. On failure the session returns to Review with
// the form untouched.
func (c *Controller) Submit(ctx context.Context) (*Created, error) {
	c.mu.Lock()
	s, err := c.active()
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	if s.Step == StepCreating || s.Submission == SubmissionPending {
		c.mu.Unlock()
		return nil, ErrInFlight
	}
	if s.Step != StepReview {
		c.mu.Unlock()
		return nil, invalidTransition("submit", s.Step)
	}
	if err := c.tmpl.Validate(s.Form); err != nil {
		s.InlineError = err.Error()
		c.mu.Unlock()
		return nil, err
	}
	form := maps.Clone(s.Form)
	payload, err := c.tmpl.BuildPayload(form)
	if err != nil {
		c.mu.Unlock()
		var verr *ValidationError
		if errors.As(err, &verr) {
			return nil, verr
		}
		return nil, &ValidationError{Message: err.Error()}
	}
	if !c.inflight.TryAcquire(1) {
		c.mu.Unlock()
		return nil, ErrInFlight
	}
	defer c.inflight.Release(1)

	s.Submission = SubmissionPending
	s.InlineError = ""
	c.move(s, StepCreating)
	epoch, sessCtx, sessionID := c.epoch, c.ctx, s.ID
	c.mu.Unlock()

	callCtx, cancel := context.WithCancel(sessCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	res, createErr := c.creator.Create(callCtx, c.tmpl.Resource, payload)

	c.mu.Lock()
	if c.epoch != epoch || c.session == nil {
		c.mu.Unlock()
		if createErr == nil {
			c.logger.Warn("wizard_created_after_close", zap.String("session", sessionID), zap.String("id", res.ID))
		}
		return nil, ErrSessionClosed
	}
	s = c.session

	if createErr != nil {
		s.Submission = SubmissionFailed
		c.move(s, StepReview)
		c.mu.Unlock()

		msg := c.failureMessage(createErr)
		c.logger.Warn("wizard_create_failed", zap.String("session", sessionID), zap.Error(createErr))
		c.notifier.Notify(Notification{Level: LevelError, Title: "Creation failed", Message: msg})
		return nil, &CreationFailedError{Message: msg, Err: createErr}
	}

	created := &Created{
		ID:       res.ID,
		Path:     c.tmpl.Path(res.ID),
		Entity:   c.tmpl.Entity,
		Resource: c.tmpl.Resource,
		Name:     strings.TrimSpace(form["name"]),
		Category: form[CategoryField],
	}
	c.teardown("created")
	c.mu.Unlock()

	c.logger.Info("wizard_created", zap.String("session", sessionID), zap.String("id", created.ID))
	c.notifier.Notify(Notification{
		Level:   LevelSuccess,
		Title:   capitalize(c.tmpl.Entity) + " created",
		Message: created.Name,
	})
	return created, nil
}

// active returns the open session. mu must be held.
func (c *Controller) active() (*Session, error) {
	if c.session == nil {
		return nil, ErrSessionClosed
	}
	return c.session, nil
}

func (c *Controller) move(s *Session, to Step) {
	c.logger.Debug("wizard_step",
		zap.String("session", s.ID),
		zap.Stringer("from", s.Step),
		zap.Stringer("to", to))
	s.Step = to
}

func (c *Controller) defaults(idea string, now time.Time) map[string]string {
	if c.tmpl.Defaults == nil {
		return map[string]string{}
	}
	return c.tmpl.Defaults(idea, now)
}

func (c *Controller) label(key string) string {
	if cat, ok := c.tmpl.Catalog.Get(key); ok {
		return cat.Label
	}
	return key
}

func (c *Controller) failureMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, backend.ErrMissingID) {
		return fmt.Sprintf("The server accepted the %s but did not return its id. Check whether it exists before trying again.", c.tmpl.Entity)
	}
	return fmt.Sprintf("Failed to create %s. Please try again.", c.tmpl.Entity)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
