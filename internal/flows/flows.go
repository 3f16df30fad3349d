package flows

import (
	"github.com/projextpal/projextpal-cli/internal/catalog"
	"github.com/projextpal/projextpal-cli/internal/wizard"
)

// ByName returns the template for a command-line entity name.
func ByName(name string) (*wizard.Template, bool) {
	switch catalog.NormalizeKey(name) {
	case "program", "programs":
		return Program(), true
	case "project", "projects":
		return Project(), true
	case "time", "time_entry", "time_entries":
		return TimeEntry(), true
	default:
		return nil, false
	}
}
