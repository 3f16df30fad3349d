package teatest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type echoMsg string

// counterModel counts key presses and echoes a message through a Cmd.
type counterModel struct {
	presses int
	echoed  []string
	width   int
}

func (m counterModel) Init() tea.Cmd {
	return func() tea.Msg { return echoMsg("init") }
}

func (m counterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case echoMsg:
		m.echoed = append(m.echoed, string(msg))
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.presses++
		return m, tea.Batch(nil, func() tea.Msg { return echoMsg(msg.String()) })
	}
	return m, nil
}

func (m counterModel) View() string { return "" }

func TestDriver_DrainsInitAndBatches(t *testing.T) {
	d := New(t, counterModel{}, WithSize(80, 24))
	d.DrainInit()
	d.Type("ab")
	d.PressTab()

	m := d.Model.(counterModel)
	assert.Equal(t, 80, m.width)
	assert.Equal(t, 3, m.presses)
	assert.Equal(t, []string{"init", "a", "b", "tab"}, m.echoed)
}

func TestDriver_QuitStopsInput(t *testing.T) {
	d := New(t, counterModel{})
	d.PressCtrlC()
	assert.True(t, d.Quitting)

	d.PressKey('x')
	assert.Equal(t, 0, d.Model.(counterModel).presses)
}
