package flows

import (
	"strconv"
	"strings"
	"time"

	"github.com/projextpal/projextpal-cli/internal/backend"
	"github.com/projextpal/projextpal-cli/internal/catalog"
	"github.com/projextpal/projextpal-cli/internal/llm"
	"github.com/projextpal/projextpal-cli/internal/wizard"
)

// TimeEntryPayload is the body of POST /api/v1/time-entries/. A time entry
// covers a single day, so both dates are the work date.
type TimeEntryPayload struct {
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Category      string  `json:"category"`
	StartDate     string  `json:"start_date"`
	TargetEndDate string  `json:"target_end_date"`
	Hours         float64 `json:"hours"`
	Project       *int    `json:"project,omitempty"`
}

const timeEntryNameMax = 60

// TimeEntry returns the time-entry smart-create template.
func TimeEntry() *wizard.Template {
	return &wizard.Template{
		Entity:       "time entry",
		Resource:     backend.ResourceTimeEntries,
		Task:         llm.TaskTimeEntryParse,
		Catalog:      catalog.Activities,
		SystemPrompt: timeEntrySystemPrompt,
		Prompt:       timeEntryPrompt.build,
		Fields: []wizard.Field{
			{Name: "name", Label: "Title", Kind: wizard.KindText, Required: true,
				Suggest: []string{"title", "summary"}},
			{Name: "description", Label: "Description", Kind: wizard.KindLongText},
			{Name: "date", Label: "Date", Kind: wizard.KindDate, Required: true, Placeholder: "YYYY-MM-DD",
				Suggest: []string{"work_date", "start_date"}},
			{Name: "hours", Label: "Hours", Kind: wizard.KindNumber, Required: true, Positive: true,
				Suggest: []string{"duration_hours", "duration"}},
			{Name: "project", Label: "Project id", Kind: wizard.KindID,
				Suggest: []string{"project_id"}},
		},
		Defaults: func(idea string, now time.Time) map[string]string {
			return map[string]string{
				"name":        summarize(idea, timeEntryNameMax),
				"description": strings.TrimSpace(idea),
				"date":        today(now),
				"hours":       strconv.Itoa(DefaultTimeEntryHours),
			}
		},
		BuildPayload: buildTimeEntryPayload,
	}
}

func buildTimeEntryPayload(form map[string]string) (any, error) {
	date := strings.TrimSpace(form["date"])
	if _, err := time.Parse(wizard.DateLayout, date); err != nil {
		return nil, &wizard.ValidationError{Field: "date", Message: "must be a date (YYYY-MM-DD)"}
	}
	hours, err := number(form, "hours", DefaultTimeEntryHours)
	if err != nil {
		return nil, err
	}
	project, err := optionalID(form, "project")
	if err != nil {
		return nil, err
	}
	return TimeEntryPayload{
		Name:          strings.TrimSpace(form["name"]),
		Description:   strings.TrimSpace(form["description"]),
		Category:      form[wizard.CategoryField],
		StartDate:     date,
		TargetEndDate: date,
		Hours:         hours,
		Project:       project,
	}, nil
}
