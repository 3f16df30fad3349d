// Package flows provides the wizard templates for programs, projects and
// time entries.
package flows

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/projextpal/projextpal-cli/internal/wizard"
)

// Baselines used when the AI suggests no value.
const (
	DefaultProgramDurationMonths = 12
	DefaultProjectDurationMonths = 6
	DefaultTimeEntryHours        = 1
	DefaultBudget                = 0
)

// endDate returns start plus months, both as YYYY-MM-DD.
func endDate(start, months string) (string, error) {
	t, err := time.Parse(wizard.DateLayout, strings.TrimSpace(start))
	if err != nil {
		return "", &wizard.ValidationError{Field: "start_date", Message: "must be a date (YYYY-MM-DD)"}
	}
	n, err := strconv.Atoi(strings.TrimSpace(months))
	if err != nil || n <= 0 {
		return "", &wizard.ValidationError{Field: "duration_months", Message: "must be a positive whole number"}
	}
	return t.AddDate(0, n, 0).Format(wizard.DateLayout), nil
}

func number(form map[string]string, name string, def float64) (float64, error) {
	v := strings.TrimSpace(form[name])
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &wizard.ValidationError{Field: name, Message: "must be a number"}
	}
	return f, nil
}

func optionalID(form map[string]string, name string) (*int, error) {
	v := strings.TrimSpace(form[name])
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return nil, &wizard.ValidationError{Field: name, Message: "must be a positive whole number"}
	}
	return &n, nil
}

func idList(form map[string]string, name string) ([]int, error) {
	parts := wizard.SplitList(form[name])
	if len(parts) == 0 {
		return nil, nil
	}
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			return nil, &wizard.ValidationError{Field: name, Message: fmt.Sprintf("invalid id %q", p)}
		}
		ids = append(ids, n)
	}
	return ids, nil
}

func today(now time.Time) string {
	return now.Format(wizard.DateLayout)
}

// summarize shortens an idea into a default entity name.
func summarize(idea string, max int) string {
	idea = strings.Join(strings.Fields(idea), " ")
	if len([]rune(idea)) <= max {
		return idea
	}
	r := []rune(idea)[:max]
	if i := strings.LastIndexByte(string(r), ' '); i > max/2 {
		return string(r)[:i]
	}
	return string(r)
}
