package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/projextpal/projextpal-cli/internal/wizard"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ConfidenceStyle colors a 0-100 confidence: green from 70, yellow from
// 50, red below.
func ConfidenceStyle(confidence int) lipgloss.Style {
	switch {
	case confidence >= 70:
		return StyleGreen
	case confidence >= 50:
		return StyleYellow
	default:
		return StyleRed
	}
}

// ConfidenceBadge renders e.g. "● 88% confidence".
func ConfidenceBadge(confidence int) string {
	return ConfidenceStyle(confidence).Render(fmt.Sprintf("● %d%% confidence", confidence))
}

// LevelStyle maps a notification level onto the palette.
func LevelStyle(level wizard.Level) lipgloss.Style {
	switch level {
	case wizard.LevelSuccess:
		return StyleGreen
	case wizard.LevelError:
		return StyleRed
	default:
		return StyleBlue
	}
}

func levelIcon(level wizard.Level) string {
	switch level {
	case wizard.LevelSuccess:
		return "✔"
	case wizard.LevelError:
		return "✖"
	default:
		return "●"
	}
}

// Notification renders a one-line toast.
func Notification(n wizard.Notification) string {
	style := LevelStyle(n.Level)
	line := style.Render(levelIcon(n.Level) + " " + n.Title)
	if n.Message != "" {
		line += Dim(" · " + n.Message)
	}
	return line
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
