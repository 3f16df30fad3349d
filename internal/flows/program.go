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

// ProgramPayload is the body of POST /api/v1/programs/.
type ProgramPayload struct {
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	Methodology    string  `json:"methodology"`
	StartDate      string  `json:"start_date"`
	TargetEndDate  string  `json:"target_end_date"`
	Budget         float64 `json:"budget"`
	ProgramManager *int    `json:"program_manager,omitempty"`
	Projects       []int   `json:"projects,omitempty"`
}

// Program returns the program creation template.
func Program() *wizard.Template {
	return &wizard.Template{
		Entity:       "program",
		Resource:     backend.ResourcePrograms,
		Task:         llm.TaskProgramRecommend,
		Catalog:      catalog.Programs,
		SystemPrompt: planningSystemPrompt,
		Prompt:       programPrompt.build,
		Fields: []wizard.Field{
			{Name: "name", Label: "Name", Kind: wizard.KindText, Required: true,
				Suggest: []string{"program_name", "suggested_name", "title"}},
			{Name: "description", Label: "Description", Kind: wizard.KindLongText,
				Suggest: []string{"suggested_description", "summary"}},
			{Name: "start_date", Label: "Start date", Kind: wizard.KindDate, Required: true, Placeholder: "YYYY-MM-DD"},
			{Name: "duration_months", Label: "Duration (months)", Kind: wizard.KindInteger, Required: true,
				Suggest: []string{"duration", "estimated_duration_months", "suggested_duration"}},
			{Name: "budget", Label: "Budget", Kind: wizard.KindNumber,
				Suggest: []string{"estimated_budget", "suggested_budget"}},
			{Name: "program_manager", Label: "Program manager id", Kind: wizard.KindID},
			{Name: "projects", Label: "Linked project ids", Kind: wizard.KindIDList, Placeholder: "12, 15"},
		},
		Defaults: func(idea string, now time.Time) map[string]string {
			return map[string]string{
				"start_date":      today(now),
				"duration_months": strconv.Itoa(DefaultProgramDurationMonths),
				"budget":          strconv.Itoa(DefaultBudget),
			}
		},
		BuildPayload: buildProgramPayload,
	}
}

func buildProgramPayload(form map[string]string) (any, error) {
	end, err := endDate(form["start_date"], form["duration_months"])
	if err != nil {
		return nil, err
	}
	budget, err := number(form, "budget", DefaultBudget)
	if err != nil {
		return nil, err
	}
	manager, err := optionalID(form, "program_manager")
	if err != nil {
		return nil, err
	}
	projects, err := idList(form, "projects")
	if err != nil {
		return nil, err
	}
	return ProgramPayload{
		Name:           strings.TrimSpace(form["name"]),
		Description:    strings.TrimSpace(form["description"]),
		Methodology:    form[wizard.CategoryField],
		StartDate:      strings.TrimSpace(form["start_date"]),
		TargetEndDate:  end,
		Budget:         budget,
		ProgramManager: manager,
		Projects:       projects,
	}, nil
}
