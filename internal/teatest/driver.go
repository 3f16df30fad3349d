// Package teatest drives bubbletea models synchronously in tests: Update is
// called directly and every returned Cmd is drained before the next input.
// Cmds that block on timers (cursor blink, spinner ticks) are dropped after
// a short timeout.
package teatest

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxSteps bounds how many messages one input may produce.
const MaxSteps = 200

// CmdTimeout is how long a Cmd may run before it is skipped. Tests whose
// Cmds do real I/O, such as httptest round trips, may raise it.
var CmdTimeout = 50 * time.Millisecond

// Driver feeds input to a tea.Model and settles it before returning.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.QuitMsg is seen. Later input is ignored.
	Quitting bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model. Init is not run until DrainInit.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs Init and settles the model.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.settle(d.Model.Init())
}

// Send delivers msg and settles the model.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.settle(cmd)
}

// Press sends a key of type k, for example tea.KeyEnter or tea.KeyCtrlD.
func (d *Driver) Press(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

func (d *Driver) PressEnter() { d.T.Helper(); d.Press(tea.KeyEnter) }
func (d *Driver) PressEsc()   { d.T.Helper(); d.Press(tea.KeyEsc) }
func (d *Driver) PressTab()   { d.T.Helper(); d.Press(tea.KeyTab) }
func (d *Driver) PressCtrlC() { d.T.Helper(); d.Press(tea.KeyCtrlC) }

// PressKey sends a single rune.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// View renders the current model.
func (d *Driver) View() string {
	return d.Model.View()
}

// settle runs cmd and everything it leads to, breadth first.
func (d *Driver) settle(cmd tea.Cmd) {
	d.T.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps >= MaxSteps {
			d.T.Logf("teatest: stopped after %d steps", MaxSteps)
			return
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		msg := run(next)
		switch m := msg.(type) {
		case nil:
			continue
		case tea.BatchMsg:
			queue = append(queue, m...)
			continue
		case tea.QuitMsg:
			d.Quitting = true
			d.Model, _ = d.Model.Update(m)
			return
		}
		if cmds, ok := sequence(msg); ok {
			queue = append(cmds, queue...)
			continue
		}
		if isBlink(msg) {
			continue
		}

		var follow tea.Cmd
		d.Model, follow = d.Model.Update(msg)
		queue = append(queue, follow)
	}
}

// run returns nil when cmd does not finish within CmdTimeout.
func run(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(CmdTimeout):
		return nil
	}
}

// sequence unpacks tea.Sequence results, whose message type is unexported.
func sequence(msg tea.Msg) ([]tea.Cmd, bool) {
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Slice || !strings.HasSuffix(v.Type().String(), "sequenceMsg") {
		return nil, false
	}
	cmds := make([]tea.Cmd, 0, v.Len())
	for i := range v.Len() {
		if c, ok := v.Index(i).Interface().(tea.Cmd); ok {
			cmds = append(cmds, c)
		}
	}
	return cmds, true
}

// isBlink matches the unexported blink messages of bubbles/cursor, which
// chain into timer Cmds.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
