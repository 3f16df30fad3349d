package cli

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/projextpal/projextpal-cli/internal/cli/formatter"
	"github.com/projextpal/projextpal-cli/internal/wizard"
)

// huhTheme maps the formatter palette onto huh forms.
func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func themedForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(huhTheme()).WithShowHelp(false)
}

// categoryForm lists the catalog in order with the recommendation marked.
// The current value of result is preselected.
func categoryForm(tmpl *wizard.Template, recommended string, result *string) *huh.Form {
	cats := tmpl.Catalog.Categories()
	options := make([]huh.Option[string], 0, len(cats))
	for _, cat := range cats {
		label := formatter.CategoryLabel(cat)
		if cat.Key == recommended {
			label += "  ★ recommended"
		}
		options = append(options, huh.NewOption(label, cat.Key).Selected(cat.Key == *result))
	}

	return themedForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Choose a " + strings.ToLower(formatter.CategoryTitle(tmpl))).
			Options(options...).
			Value(result),
	))
}

// detailsForm binds one input per template field to values.
func detailsForm(tmpl *wizard.Template, values map[string]*string) *huh.Form {
	fields := make([]huh.Field, 0, len(tmpl.Fields))
	for _, f := range tmpl.Fields {
		title := f.DisplayName()
		if f.Required {
			title += " *"
		}
		if f.Kind == wizard.KindLongText {
			fields = append(fields, huh.NewText().
				Title(title).
				Placeholder(f.Placeholder).
				Lines(3).
				Value(values[f.Name]))
			continue
		}
		fields = append(fields, huh.NewInput().
			Title(title).
			Placeholder(f.Placeholder).
			Value(values[f.Name]).
			Validate(f.Check))
	}
	return themedForm(huh.NewGroup(fields...))
}

func confirmForm(entity string, result *bool) *huh.Form {
	return themedForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Create this " + entity + "?").
			Affirmative("Create").
			Negative("Back").
			Value(result),
	))
}
