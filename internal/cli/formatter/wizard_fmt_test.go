package formatter

import (
	"testing"
	"time"

	"github.com/projextpal/projextpal-cli/internal/catalog"
	"github.com/projextpal/projextpal-cli/internal/domain"
	"github.com/projextpal/projextpal-cli/internal/flows"
	"github.com/projextpal/projextpal-cli/internal/wizard"
	"github.com/stretchr/testify/assert"
)

func TestRenderRecommendation(t *testing.T) {
	agile, _ := catalog.Projects.Get("agile")
	out := stripANSI(RenderRecommendation(agile, wizard.Recommendation{
		Category:   "agile",
		Reasoning:  "Iterative delivery suits a portal.",
		Confidence: 88,
	}, wizard.SourceStructured))

	assert.Contains(t, out, "RECOMMENDATION")
	assert.Contains(t, out, agile.Label)
	assert.Contains(t, out, "88% confidence")
	assert.Contains(t, out, "Iterative delivery suits a portal.")
	assert.NotContains(t, out, "(default)")
}

func TestRenderRecommendation_FallbackMarked(t *testing.T) {
	hybrid := catalog.Projects.Fallback()
	out := stripANSI(RenderRecommendation(hybrid, wizard.Recommendation{Category: hybrid.Key, Confidence: 40}, wizard.SourceFallback))
	assert.Contains(t, out, "(default)")
}

func TestRenderReview_ListsFields(t *testing.T) {
	tmpl := flows.TimeEntry()
	out := stripANSI(RenderReview(tmpl, map[string]string{
		wizard.CategoryField: "meeting",
		"name":               "Sprint planning",
		"date":               "2026-03-14",
		"hours":              "1.5",
	}))

	assert.Contains(t, out, "REVIEW TIME ENTRY")
	assert.Contains(t, out, "Category")
	assert.Contains(t, out, "Sprint planning")
	assert.Contains(t, out, "1.5")
}

func TestRenderCatalog_MarksFallback(t *testing.T) {
	out := stripANSI(RenderCatalog(catalog.Programs))
	assert.Contains(t, out, "hybrid (default)")
	assert.Contains(t, out, "safe")
}

func TestRenderHistory(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	confidence := 88
	rec := domain.NewCreationRecord("project", "7", "Portal", "agile", "/projects/7", now.Add(-time.Hour))
	rec.Confidence = &confidence
	manual := domain.NewCreationRecord("program", "3", "Transformation", "msp", "/programs/3", now.Add(-2*time.Hour))

	out := stripANSI(RenderHistory([]*domain.CreationRecord{rec, manual}, func(p string) string {
		return "https://app.example.com" + p
	}, now))

	assert.Contains(t, out, "1h ago")
	assert.Contains(t, out, "88%")
	assert.Contains(t, out, "manual")
	assert.Contains(t, out, "https://app.example.com/projects/7")

	assert.Contains(t, stripANSI(RenderHistory(nil, nil, now)), "Nothing created")
}

func TestNotification(t *testing.T) {
	out := stripANSI(Notification(wizard.Notification{Level: wizard.LevelError, Title: "Creation failed", Message: "budget must be positive"}))
	assert.Equal(t, "✖ Creation failed · budget must be positive", out)
}
