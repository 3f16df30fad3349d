package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/projextpal/projextpal-cli/internal/cli/formatter"
	"github.com/projextpal/projextpal-cli/internal/domain"
	"github.com/projextpal/projextpal-cli/internal/wizard"
	"go.uber.org/zap"
)

type analyzedMsg struct{ err error }

type submittedMsg struct {
	created *wizard.Created
	rec     *wizard.Recommendation
	source  wizard.Source
	err     error
}

var wizardKeys = struct {
	Analyze, Manual, Back, Quit, Dismiss key.Binding
}{
	Analyze: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "analyze")),
	Manual:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "choose manually")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Dismiss: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "hide tip")),
}

// wizardModel renders a wizard.Controller session. Blocking controller
// calls run as Cmds; every other transition is applied in Update.
type wizardModel struct {
	ctx   context.Context
	app   *App
	ctrl  *wizard.Controller
	tmpl  *wizard.Template
	toast *toastNotifier

	idea    textinput.Model
	spinner spinner.Model

	form     *huh.Form
	formStep wizard.Step
	choice   string
	values   map[string]*string
	confirm  bool

	busy     string
	hint     string
	notice   *wizard.Notification
	inline   string
	created  *wizard.Created
	quitting bool
	width    int
}

func newWizardModel(ctx context.Context, app *App, tmpl *wizard.Template, idea string) *wizardModel {
	toast := &toastNotifier{}
	ti := textinput.New()
	ti.Placeholder = "Describe what you want to create"
	ti.CharLimit = 2000
	ti.Prompt = "› "
	ti.SetValue(idea)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	m := &wizardModel{
		ctx:     ctx,
		app:     app,
		ctrl:    newController(app, tmpl, toast),
		tmpl:    tmpl,
		toast:   toast,
		idea:    ti,
		spinner: sp,
	}
	m.hint = m.pendingHint(domain.HintIdeaTip)
	return m
}

func (m *wizardModel) pendingHint(hintKey string) string {
	if m.app.Hints == nil {
		return ""
	}
	text, err := m.app.Hints.Pending(m.ctx, hintKey)
	if err != nil {
		m.app.logger().Debug("hint_lookup_failed", zap.String("hint", hintKey), zap.Error(err))
		return ""
	}
	return text
}

func (m *wizardModel) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}
	return textinput.Blink
}

func (m *wizardModel) snapshot() (wizard.Session, bool) {
	return m.ctrl.Snapshot()
}

func (m *wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.idea.Width = max(msg.Width-6, 20)
		return m, nil

	case analyzedMsg:
		m.busy = ""
		m.notice = m.toast.take()
		if s, ok := m.snapshot(); ok {
			m.inline = s.InlineError
		}
		return m, m.sync()

	case submittedMsg:
		m.busy = ""
		m.notice = m.toast.take()
		if msg.err == nil {
			m.created = msg.created
			recordCreation(m.ctx, m.app, msg.created, msg.rec, msg.source)
			m.quitting = true
			return m, tea.Quit
		}
		if errors.Is(msg.err, wizard.ErrSessionClosed) {
			m.quitting = true
			return m, tea.Quit
		}
		m.inline = ""
		var verr *wizard.ValidationError
		if errors.As(msg.err, &verr) {
			m.inline = verr.Error()
		}
		m.formStep = -1
		return m, m.sync()

	case spinner.TickMsg:
		if m.busy == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, wizardKeys.Quit) {
			m.ctrl.Close()
			m.quitting = true
			return m, tea.Quit
		}
		if m.busy != "" {
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

func (m *wizardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s, ok := m.snapshot()
	if !ok {
		m.quitting = true
		return m, tea.Quit
	}

	if s.Step == wizard.StepIdea {
		switch {
		case key.Matches(msg, wizardKeys.Back):
			m.ctrl.Skip()
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, wizardKeys.Analyze):
			return m, m.analyze()
		case key.Matches(msg, wizardKeys.Manual):
			if err := m.ctrl.ChooseManually(m.idea.Value()); err != nil {
				m.inline = err.Error()
				return m, nil
			}
			m.notice = nil
			return m, m.sync()
		case key.Matches(msg, wizardKeys.Dismiss):
			m.dismissHint(domain.HintIdeaTip)
			return m, nil
		}
		var cmd tea.Cmd
		m.idea, cmd = m.idea.Update(msg)
		return m, cmd
	}

	if key.Matches(msg, wizardKeys.Back) {
		if s.Step == wizard.StepDetails {
			m.captureValues()
		}
		if err := m.ctrl.Back(); err != nil {
			return m, nil
		}
		m.inline = ""
		return m, m.sync()
	}
	return m.forward(msg)
}

// forward passes msg to the active input and reacts to a completed form.
func (m *wizardModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		var cmd tea.Cmd
		m.idea, cmd = m.idea.Update(msg)
		return m, cmd
	}

	updated, cmd := m.form.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State != huh.StateCompleted {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.formDone())
}

func (m *wizardModel) analyze() tea.Cmd {
	idea := m.idea.Value()
	if strings.TrimSpace(idea) == "" {
		// Reported synchronously by the controller, no spinner needed.
		err := m.ctrl.AnalyzeIdea(m.ctx, idea)
		if s, ok := m.snapshot(); ok && err != nil {
			m.inline = s.InlineError
		}
		return nil
	}
	m.busy = "Analyzing your idea..."
	m.notice = nil
	m.inline = ""
	ctx, ctrl := m.ctx, m.ctrl
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return analyzedMsg{err: ctrl.AnalyzeIdea(ctx, idea)}
	})
}

func (m *wizardModel) submit() tea.Cmd {
	s, _ := m.snapshot()
	m.busy = fmt.Sprintf("Creating %s...", m.tmpl.Entity)
	m.notice = nil
	m.inline = ""
	ctx, ctrl := m.ctx, m.ctrl
	rec, source := s.Recommendation, s.Source
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		created, err := ctrl.Submit(ctx)
		return submittedMsg{created: created, rec: rec, source: source, err: err}
	})
}

// formDone applies the completed form of the current step.
func (m *wizardModel) formDone() tea.Cmd {
	s, ok := m.snapshot()
	if !ok {
		return tea.Quit
	}

	switch s.Step {
	case wizard.StepMethodologySelection:
		if err := m.ctrl.SelectCategory(m.choice); err != nil {
			m.inline = err.Error()
			m.formStep = -1
		}
	case wizard.StepDetails:
		m.captureValues()
		m.inline = ""
		if err := m.ctrl.GoToReview(); err != nil {
			m.inline = err.Error()
			m.formStep = -1
		}
	case wizard.StepReview:
		if m.confirm {
			return m.submit()
		}
		_ = m.ctrl.Back()
	}
	return m.sync()
}

// captureValues writes changed inputs back to the session as user edits.
func (m *wizardModel) captureValues() {
	s, ok := m.snapshot()
	if !ok || m.values == nil {
		return
	}
	for _, f := range m.tmpl.Fields {
		v, ok := m.values[f.Name]
		if !ok || *v == s.Form[f.Name] {
			continue
		}
		if err := m.ctrl.SetField(f.Name, *v); err != nil {
			m.inline = err.Error()
		}
	}
}

// sync rebuilds the form when the session moved to another step.
func (m *wizardModel) sync() tea.Cmd {
	s, ok := m.snapshot()
	if !ok {
		m.quitting = true
		return tea.Quit
	}
	if s.Step == m.formStep && m.form != nil {
		return nil
	}
	m.formStep = s.Step

	switch s.Step {
	case wizard.StepIdea:
		m.form = nil
		m.idea.Focus()
		return textinput.Blink
	case wizard.StepMethodologySelection:
		m.choice = s.Form[wizard.CategoryField]
		recommended := ""
		if s.Recommendation != nil {
			recommended = s.Recommendation.Category
		}
		m.form = categoryForm(m.tmpl, recommended, &m.choice)
	case wizard.StepDetails:
		m.values = make(map[string]*string, len(m.tmpl.Fields))
		for _, f := range m.tmpl.Fields {
			v := s.Form[f.Name]
			m.values[f.Name] = &v
		}
		m.form = detailsForm(m.tmpl, m.values)
	case wizard.StepReview:
		m.confirm = true
		m.form = confirmForm(m.tmpl.Entity, &m.confirm)
	default:
		m.form = nil
		return nil
	}
	m.idea.Blur()
	return m.form.Init()
}

func (m *wizardModel) dismissHint(hintKey string) {
	if m.hint == "" || m.app.Hints == nil {
		return
	}
	if err := m.app.Hints.Dismiss(m.ctx, hintKey); err != nil {
		m.app.logger().Warn("hint_dismiss_failed", zap.String("hint", hintKey), zap.Error(err))
	}
	m.hint = ""
}

var stepLabels = map[wizard.Step]string{
	wizard.StepIdea:                 "Idea",
	wizard.StepMethodologySelection: "Category",
	wizard.StepDetails:              "Details",
	wizard.StepReview:               "Review",
	wizard.StepCreating:             "Creating",
}

func (m *wizardModel) View() string {
	if m.quitting {
		return ""
	}
	s, ok := m.snapshot()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.Header("New " + m.tmpl.Entity))
	b.WriteString("\n")
	b.WriteString(formatter.StepIndicator(min(int(s.Step)+1, 4), 4, stepLabels[s.Step]))
	b.WriteString("\n\n")

	if m.notice != nil {
		b.WriteString(formatter.Notification(*m.notice))
		b.WriteString("\n\n")
	}

	if m.busy != "" {
		b.WriteString(m.spinner.View() + " " + formatter.Dim(m.busy))
		b.WriteString("\n")
		return b.String()
	}

	switch s.Step {
	case wizard.StepIdea:
		b.WriteString(m.idea.View())
		b.WriteString("\n")
		if m.hint != "" {
			b.WriteString("\n" + formatter.Dim("Tip: "+m.hint+" (ctrl+d to hide)") + "\n")
		}
		m.writeHelp(&b, wizardKeys.Analyze, wizardKeys.Manual, wizardKeys.Back)
	case wizard.StepMethodologySelection:
		if s.Recommendation != nil {
			cat, _ := m.tmpl.Catalog.Get(s.Recommendation.Category)
			b.WriteString(formatter.RenderRecommendation(cat, *s.Recommendation, s.Source))
			b.WriteString("\n\n")
		}
		b.WriteString(m.formView())
		m.writeHelp(&b, wizardKeys.Back)
	case wizard.StepDetails:
		b.WriteString(m.formView())
		m.writeHelp(&b, wizardKeys.Back)
	case wizard.StepReview:
		b.WriteString(formatter.RenderReview(m.tmpl, s.Form))
		b.WriteString("\n\n")
		b.WriteString(m.formView())
		m.writeHelp(&b, wizardKeys.Back)
	}
	return b.String()
}

func (m *wizardModel) formView() string {
	if m.form == nil {
		return ""
	}
	return m.form.View()
}

func (m *wizardModel) writeHelp(b *strings.Builder, bindings ...key.Binding) {
	if m.inline != "" {
		b.WriteString("\n" + formatter.StyleRed.Render(m.inline) + "\n")
	}
	parts := make([]string, 0, len(bindings)+1)
	for _, k := range append(bindings, wizardKeys.Quit) {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	b.WriteString("\n" + formatter.Dim(strings.Join(parts, " · ")) + "\n")
}

// runWizardTUI runs the wizard full screen and prints the outcome after
// the program exits.
func runWizardTUI(ctx context.Context, app *App, tmpl *wizard.Template, idea string, opts createOptions, in io.Reader, out io.Writer) error {
	m := newWizardModel(ctx, app, tmpl, idea)
	defer m.ctrl.Close()

	if opts.skipAI {
		if err := m.ctrl.ChooseManually(idea); err != nil {
			return err
		}
		m.sync()
	}

	final, err := app.runProgram(ctx, m, in, out)
	if err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}
	done, _ := final.(*wizardModel)
	if done == nil || done.created == nil {
		fmt.Fprintln(out, formatter.Dim("Cancelled. Nothing was created."))
		return nil
	}
	printCreated(out, app, done.created)
	return nil
}
