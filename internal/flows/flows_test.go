package flows

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/projextpal/projextpal-cli/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func intPtr(n int) *int { return &n }

func TestBuildProgramPayload_DerivesEndDate(t *testing.T) {
	got, err := buildProgramPayload(map[string]string{
		"name":            " Digital Transformation ",
		"description":     "Modernize the estate",
		"category":        "safe",
		"start_date":      "2026-01-31",
		"duration_months": "12",
		"budget":          "250000.50",
		"program_manager": "7",
		"projects":        "3, 5,, 8",
	})
	require.NoError(t, err)

	want := ProgramPayload{
		Name:           "Digital Transformation",
		Description:    "Modernize the estate",
		Methodology:    "safe",
		StartDate:      "2026-01-31",
		TargetEndDate:  "2027-01-31",
		Budget:         250000.50,
		ProgramManager: intPtr(7),
		Projects:       []int{3, 5, 8},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildProjectPayload_OptionalFieldsOmitted(t *testing.T) {
	got, err := buildProjectPayload(map[string]string{
		"name":            "Customer Portal",
		"category":        "agile",
		"start_date":      "2026-03-14",
		"duration_months": "6",
	})
	require.NoError(t, err)

	want := ProjectPayload{
		Name:          "Customer Portal",
		Methodology:   "agile",
		StartDate:     "2026-03-14",
		TargetEndDate: "2026-09-14",
		Budget:        0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildProjectPayload_BadLinkedID(t *testing.T) {
	_, err := buildProjectPayload(map[string]string{
		"name":            "X",
		"category":        "agile",
		"start_date":      "2026-03-14",
		"duration_months": "6",
		"program":         "abc",
	})
	var verr *wizard.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "program", verr.Field)
}

func TestBuildTimeEntryPayload_SingleDay(t *testing.T) {
	got, err := buildTimeEntryPayload(map[string]string{
		"name":     "Code review",
		"category": "review",
		"date":     "2026-03-13",
		"hours":    "1.5",
		"project":  "12",
	})
	require.NoError(t, err)

	p, ok := got.(TimeEntryPayload)
	require.True(t, ok)
	assert.Equal(t, "2026-03-13", p.StartDate)
	assert.Equal(t, p.StartDate, p.TargetEndDate)
	assert.Equal(t, 1.5, p.Hours)
	assert.Equal(t, "review", p.Category)
	require.NotNil(t, p.Project)
	assert.Equal(t, 12, *p.Project)
}

func TestEndDate_Errors(t *testing.T) {
	_, err := endDate("14/03/2026", "6")
	assert.Error(t, err)
	_, err = endDate("2026-03-14", "0")
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, "12", Program().Defaults("", fixedNow)["duration_months"])
	assert.Equal(t, "6", Project().Defaults("", fixedNow)["duration_months"])
	assert.Equal(t, "0", Project().Defaults("", fixedNow)["budget"])
	assert.Equal(t, "2026-03-14", Project().Defaults("", fixedNow)["start_date"])

	te := TimeEntry().Defaults("  spent the morning on the   release checklist  ", fixedNow)
	assert.Equal(t, "1", te["hours"])
	assert.Equal(t, "2026-03-14", te["date"])
	assert.Equal(t, "spent the morning on the release checklist", te["name"])
}

func TestSummarize_CutsAtWordBoundary(t *testing.T) {
	got := summarize(strings.Repeat("word ", 30), 20)
	assert.LessOrEqual(t, len(got), 20)
	assert.False(t, strings.HasSuffix(got, " "))
	assert.True(t, strings.HasPrefix(got, "word"))
}

func TestPrompt_EmbedsIdeaAndKeys(t *testing.T) {
	tmpl := Project()
	prompt := tmpl.Prompt("Build a customer portal", tmpl.Catalog.Keys(), fixedNow)

	assert.Contains(t, prompt, "Build a customer portal")
	assert.Contains(t, prompt, "Today is 2026-03-14.")
	for _, key := range tmpl.Catalog.Keys() {
		assert.Contains(t, prompt, key)
	}
	assert.Contains(t, prompt, `"confidence"`)
	assert.Contains(t, prompt, `"duration_months"`)
}

func TestTemplates_PathAndValidate(t *testing.T) {
	assert.Equal(t, "/programs/9", Program().Path("9"))
	assert.Equal(t, "/projects/9", Project().Path("9"))
	assert.Equal(t, "/time-entries/9", TimeEntry().Path("9"))

	err := TimeEntry().Validate(map[string]string{
		"category": "meeting",
		"name":     "Standup",
		"date":     "2026-03-14",
		"hours":    "0",
	})
	var verr *wizard.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "hours", verr.Field)
}

func TestByName(t *testing.T) {
	tmpl, ok := ByName("time")
	require.True(t, ok)
	assert.Equal(t, "time entry", tmpl.Entity)

	_, ok = ByName("portfolio")
	assert.False(t, ok)
}
