package flows

import (
	"fmt"
	"strings"
	"time"
)

const planningSystemPrompt = `You are the ProjeXtPal planning assistant. You recommend a delivery methodology for new work.
Respond ONLY with a single JSON object. Do not wrap it in markdown and do not add commentary.`

const timeEntrySystemPrompt = `You are the ProjeXtPal time tracking assistant. You turn a short note about work done into a structured time entry.
Respond ONLY with a single JSON object. Do not wrap it in markdown and do not add commentary.`

// promptSpec is the entity-specific part of a recommendation prompt.
type promptSpec struct {
	subject string // "program", "project", "time entry"
	ask     string
	fields  []string // `"name": description` lines for the suggested fields
}

func (p promptSpec) build(idea string, keys []string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Today is %s.\n\n", today(now))
	fmt.Fprintf(&b, "%s\n\n", p.ask)
	fmt.Fprintf(&b, "Description from the user:\n\"\"\"\n%s\n\"\"\"\n\n", idea)
	fmt.Fprintf(&b, "Valid category keys (use exactly one): %s\n\n", strings.Join(keys, ", "))
	b.WriteString("Return a JSON object with these fields:\n")
	b.WriteString("{\n")
	b.WriteString(`  "category": one of the valid keys,` + "\n")
	fmt.Fprintf(&b, "  \"reasoning\": one or two sentences on why it fits this %s,\n", p.subject)
	b.WriteString(`  "confidence": integer from 0 to 100`)
	for _, f := range p.fields {
		b.WriteString(",\n  ")
		b.WriteString(f)
	}
	b.WriteString("\n}\n")
	return b.String()
}

var programPrompt = promptSpec{
	subject: "program",
	ask:     "Recommend the program management methodology that best fits the program described below, and suggest starting values for the program.",
	fields: []string{
		`"name": a short program name`,
		`"description": a one-paragraph program description`,
		`"duration_months": expected duration in whole months`,
		`"budget": estimated total budget as a number, 0 if unknown`,
	},
}

var projectPrompt = promptSpec{
	subject: "project",
	ask:     "Recommend the project methodology that best fits the project described below, and suggest starting values for the project.",
	fields: []string{
		`"name": a short project name`,
		`"description": a one-paragraph project description`,
		`"duration_months": expected duration in whole months`,
		`"budget": estimated total budget as a number, 0 if unknown`,
	},
}

var timeEntryPrompt = promptSpec{
	subject: "time entry",
	ask:     "Classify the work described below and extract a time entry. Resolve relative dates such as \"yesterday\" against today's date.",
	fields: []string{
		`"name": a short title for the work`,
		`"description": what was done`,
		`"hours": time spent in hours as a number`,
		`"date": the day the work happened as YYYY-MM-DD`,
		`"project": the numeric project id if one is mentioned, otherwise omit`,
	},
}
