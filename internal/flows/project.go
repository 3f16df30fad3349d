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

// ProjectPayload is the body of POST /api/v1/projects/.
type ProjectPayload struct {
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	Methodology    string  `json:"methodology"`
	StartDate      string  `json:"start_date"`
	TargetEndDate  string  `json:"target_end_date"`
	Budget         float64 `json:"budget"`
	ProjectManager *int    `json:"project_manager,omitempty"`
	Program        *int    `json:"program,omitempty"`
}

// Project returns the project creation template.
func Project() *wizard.Template {
	return &wizard.Template{
		Entity:       "project",
		Resource:     backend.ResourceProjects,
		Task:         llm.TaskProjectRecommend,
		Catalog:      catalog.Projects,
		SystemPrompt: planningSystemPrompt,
		Prompt:       projectPrompt.build,
		Fields: []wizard.Field{
			{Name: "name", Label: "Name", Kind: wizard.KindText, Required: true,
				Suggest: []string{"project_name", "suggested_name", "title"}},
			{Name: "description", Label: "Description", Kind: wizard.KindLongText,
				Suggest: []string{"suggested_description", "summary"}},
			{Name: "start_date", Label: "Start date", Kind: wizard.KindDate, Required: true, Placeholder: "YYYY-MM-DD"},
			{Name: "duration_months", Label: "Duration (months)", Kind: wizard.KindInteger, Required: true,
				Suggest: []string{"duration", "estimated_duration_months", "suggested_duration"}},
			{Name: "budget", Label: "Budget", Kind: wizard.KindNumber,
				Suggest: []string{"estimated_budget", "suggested_budget"}},
			{Name: "project_manager", Label: "Project manager id", Kind: wizard.KindID},
			{Name: "program", Label: "Program id", Kind: wizard.KindID},
		},
		Defaults: func(idea string, now time.Time) map[string]string {
			return map[string]string{
				"start_date":      today(now),
				"duration_months": strconv.Itoa(DefaultProjectDurationMonths),
				"budget":          strconv.Itoa(DefaultBudget),
			}
		},
		BuildPayload: buildProjectPayload,
	}
}

func buildProjectPayload(form map[string]string) (any, error) {
	end, err := endDate(form["start_date"], form["duration_months"])
	if err != nil {
		return nil, err
	}
	budget, err := number(form, "budget", DefaultBudget)
	if err != nil {
		return nil, err
	}
	manager, err := optionalID(form, "project_manager")
	if err != nil {
		return nil, err
	}
	program, err := optionalID(form, "program")
	if err != nil {
		return nil, err
	}
	return ProjectPayload{
		Name:           strings.TrimSpace(form["name"]),
		Description:    strings.TrimSpace(form["description"]),
		Methodology:    form[wizard.CategoryField],
		StartDate:      strings.TrimSpace(form["start_date"]),
		TargetEndDate:  end,
		Budget:         budget,
		ProjectManager: manager,
		Program:        program,
	}, nil
}
