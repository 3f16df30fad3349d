package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/projextpal/projextpal-cli/internal/catalog"
	"github.com/projextpal/projextpal-cli/internal/domain"
	"github.com/projextpal/projextpal-cli/internal/wizard"
)

// CategoryLabel prefixes the label with its icon.
func CategoryLabel(cat catalog.Category) string {
	if cat.Icon == "" {
		return cat.Label
	}
	return cat.Icon + " " + cat.Label
}

// RenderRecommendation shows the AI's pick with its reasoning.
func RenderRecommendation(cat catalog.Category, rec wizard.Recommendation, source wizard.Source) string {
	var b strings.Builder
	b.WriteString(Bold(CategoryLabel(cat)))
	b.WriteString("  ")
	b.WriteString(ConfidenceBadge(rec.Confidence))
	if source == wizard.SourceFallback {
		b.WriteString(Dim("  (default)"))
	}
	if rec.Reasoning != "" {
		b.WriteString("\n\n")
		b.WriteString(Markdown(rec.Reasoning, MarkdownWidth))
	}
	return RenderBox("Recommendation", b.String())
}

// RenderReview lists the category and every filled field of form.
func RenderReview(tmpl *wizard.Template, form map[string]string) string {
	rows := [][]string{}
	if cat, ok := tmpl.Catalog.Get(form[wizard.CategoryField]); ok {
		rows = append(rows, []string{Dim(CategoryTitle(tmpl)), CategoryLabel(cat)})
	}
	for _, f := range tmpl.Fields {
		v := strings.TrimSpace(form[f.Name])
		if v == "" {
			v = Dim("—")
		}
		rows = append(rows, []string{Dim(f.DisplayName()), v})
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(row[0])
		b.WriteString("  ")
		b.WriteString(row[1])
	}
	return RenderBox("Review "+tmpl.Entity, alignPairs(b.String()))
}

// alignPairs pads the first column of "label  value" lines.
func alignPairs(s string) string {
	lines := strings.Split(s, "\n")
	var width int
	pairs := make([][2]string, len(lines))
	for i, line := range lines {
		label, value, _ := strings.Cut(line, "  ")
		pairs[i] = [2]string{label, value}
		width = max(width, lipgloss.Width(label))
	}
	out := make([]string, len(lines))
	for i, p := range pairs {
		out[i] = p[0] + strings.Repeat(" ", width-lipgloss.Width(p[0])+2) + p[1]
	}
	return strings.Join(out, "\n")
}

// CategoryTitle names the category field for tmpl.
func CategoryTitle(tmpl *wizard.Template) string {
	if tmpl.Catalog == catalog.Activities {
		return "Category"
	}
	return "Methodology"
}

// RenderCatalog shows every category of c with its description.
func RenderCatalog(c *catalog.Catalog) string {
	rows := make([][]string, 0, len(c.Keys()))
	for _, cat := range c.Categories() {
		key := cat.Key
		if key == c.Fallback().Key {
			key += Dim(" (default)")
		}
		rows = append(rows, []string{key, CategoryLabel(cat), Dim(cat.Description)})
	}
	return RenderTable([]string{"KEY", "NAME", "DESCRIPTION"}, rows)
}

// RenderHistory tabulates local creation records.
func RenderHistory(records []*domain.CreationRecord, link func(path string) string, now time.Time) string {
	if len(records) == 0 {
		return Dim("Nothing created from this machine yet.")
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		confidence := Dim("manual")
		if r.Confidence != nil {
			confidence = ConfidenceStyle(*r.Confidence).Render(fmt.Sprintf("%d%%", *r.Confidence))
		}
		rows = append(rows, []string{
			HumanTimestampFrom(r.CreatedAt, now),
			r.Entity,
			Truncate(r.Name, 40),
			r.Category,
			confidence,
			Dim(link(r.Path)),
		})
	}
	return RenderTable([]string{"WHEN", "TYPE", "NAME", "CATEGORY", "AI", "LINK"}, rows)
}
