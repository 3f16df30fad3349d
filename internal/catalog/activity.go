package catalog

// Activities lists the time-entry categories.
var Activities = MustNew("time-entry activities", "other",
	Category{Key: "development", Label: "Development", Icon: "⌨", Color: "#8ec07c",
		Description: "Writing or changing code and configuration"},
	Category{Key: "meeting", Label: "Meeting", Icon: "☎", Color: "#83a598",
		Description: "Stand-ups, syncs, workshops and calls"},
	Category{Key: "planning", Label: "Planning", Icon: "✎", Color: "#fabd2f",
		Description: "Backlog refinement, estimation and scheduling"},
	Category{Key: "review", Label: "Review", Icon: "✓", Color: "#d3869b",
		Description: "Code, design and document reviews"},
	Category{Key: "testing", Label: "Testing", Icon: "⚑", Color: "#fe8019",
		Description: "Manual and automated verification"},
	Category{Key: "documentation", Label: "Documentation", Icon: "☰", Color: "#b8bb26",
		Description: "Writing guides, specs and reports"},
	Category{Key: "support", Label: "Support", Icon: "⚒", Color: "#fb4934",
		Description: "Incident handling and user support"},
	Category{Key: "other", Label: "Other", Icon: "•", Color: "#928374",
		Description: "Anything that fits no other category"},
)

// ByName returns a catalog by its short command-line name.
func ByName(name string) (*Catalog, bool) {
	switch NormalizeKey(name) {
	case "program", "programs":
		return Programs, true
	case "project", "projects":
		return Projects, true
	case "time", "time_entry", "time_entries", "activity", "activities":
		return Activities, true
	default:
		return nil, false
	}
}
