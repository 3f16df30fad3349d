package wizard

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/projextpal/projextpal-cli/internal/catalog"
	"github.com/projextpal/projextpal-cli/internal/llm"
)

// CategoryField is the form key holding the chosen category.
const CategoryField = "category"

// DateLayout is the form and wire format for dates.
const DateLayout = "2006-01-02"

// FieldKind controls how a form value is validated and prefilled.
type FieldKind int

const (
	KindText FieldKind = iota
	KindLongText
	KindDate
	KindInteger // positive whole number
	KindNumber  // non-negative decimal
	KindID      // positive backend identifier
	KindIDList  // comma-separated identifiers
)

// Field describes one editable form value.
type Field struct {
	Name        string
	Label       string
	Kind        FieldKind
	Required    bool
	Positive    bool // KindNumber only: reject zero
	Placeholder string
	// Suggest lists the AI suggestion keys that prefill this field, in
	// priority order. The field name itself is always tried first.
	Suggest []string
}

// Template parameterizes the generic wizard for one entity type.
type Template struct {
	Entity   string // singular noun for messages, e.g. "program"
	Resource string // backend collection, e.g. "programs"
	Task     llm.TaskType
	Catalog  *catalog.Catalog
	Fields   []Field

	SystemPrompt string
	// Prompt builds the user prompt from the idea and the valid keys.
	Prompt func(idea string, keys []string, now time.Time) string
	// Defaults returns baseline values used when the AI suggests nothing.
	Defaults func(idea string, now time.Time) map[string]string
	// BuildPayload turns a validated form into the creation request body.
	BuildPayload func(form map[string]string) (any, error)
}

// Path is the detail route for a created entity.
func (t *Template) Path(id string) string {
	return "/" + t.Resource + "/" + id
}

// Field returns the named field.
func (t *Template) Field(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks required fields and per-kind formats. It reports the
// first problem in field order.
func (t *Template) Validate(form map[string]string) error {
	if !t.Catalog.Has(form[CategoryField]) {
		return &ValidationError{Field: CategoryField, Message: "choose a category"}
	}
	for _, f := range t.Fields {
		if err := f.Check(form[f.Name]); err != nil {
			return err
		}
	}
	return nil
}

// Check validates a single value for the field.
func (f Field) Check(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		if f.Required {
			return &ValidationError{Field: f.Name, Message: f.DisplayName() + " is required"}
		}
		return nil
	}
	if err := checkKind(f.Kind, f.Positive, v); err != nil {
		return &ValidationError{Field: f.Name, Message: f.DisplayName() + " " + err.Error()}
	}
	return nil
}

// DisplayName is the label, or the name when no label is set.
func (f Field) DisplayName() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

func checkKind(kind FieldKind, positive bool, v string) error {
	switch kind {
	case KindDate:
		if _, err := time.Parse(DateLayout, v); err != nil {
			return fmt.Errorf("must be a date (YYYY-MM-DD)")
		}
	case KindInteger, KindID:
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("must be a positive whole number")
		}
	case KindNumber:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("must be a non-negative number")
		}
		if positive && n == 0 {
			return fmt.Errorf("must be greater than zero")
		}
	case KindIDList:
		for _, part := range SplitList(v) {
			if n, err := strconv.Atoi(part); err != nil || n <= 0 {
				return fmt.Errorf("must be a comma-separated list of ids")
			}
		}
	}
	return nil
}

// prefill fills every field the user has not edited, from the AI
// suggestions when they are valid for the field, else from the defaults.
func (t *Template) prefill(form map[string]string, edited map[string]bool, suggestions map[string]string, defaults map[string]string) {
	for _, f := range t.Fields {
		if edited[f.Name] {
			continue
		}
		if v, ok := f.suggestion(suggestions); ok {
			form[f.Name] = v
			continue
		}
		form[f.Name] = defaults[f.Name]
	}
}

func (f Field) suggestion(suggestions map[string]string) (string, bool) {
	keys := append([]string{f.Name}, f.Suggest...)
	for _, k := range keys {
		v := strings.TrimSpace(suggestions[k])
		if v == "" {
			continue
		}
		if f.Kind == KindInteger {
			v = roundWhole(v)
		}
		if checkKind(f.Kind, f.Positive, v) == nil {
			return v, true
		}
	}
	return "", false
}

// roundWhole turns "6.0" into "6" so models that emit floats for whole
// numbers still prefill integer fields.
func roundWhole(v string) string {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n != float64(int64(n)) {
		return v
	}
	return strconv.FormatInt(int64(n), 10)
}

// SplitList splits a comma-separated form value, dropping blanks.
func SplitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
