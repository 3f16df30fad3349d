package wizard

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/projextpal/projextpal-cli/internal/catalog"
	"github.com/projextpal/projextpal-cli/internal/llm"
)

// Confidence values assigned when the AI did not give a usable one.
const (
	DefaultStructuredConfidence = 70
	HeuristicConfidence         = 60
	FallbackConfidence          = 40
)

// reasoningExcerpt is how much raw response text a heuristic match keeps
// as its reasoning.
const reasoningExcerpt = 200

// Source identifies which parse tier produced a recommendation.
type Source string

const (
	SourceStructured Source = "structured"
	SourceHeuristic  Source = "heuristic"
	SourceFallback   Source = "fallback"
)

// Recommendation is the AI's suggested category.
type Recommendation struct {
	Category   string
	Reasoning  string
	Confidence int
}

// Analysis is a parsed AI response. Suggestions holds suggested form values
// in their text form, keyed by the names the AI used.
type Analysis struct {
	Recommendation
	Source      Source
	Suggestions map[string]string
}

var (
	categoryKeys   = []string{"category", "methodology", "recommended_methodology", "recommended_category", "activity"}
	reasoningKeys  = []string{"reasoning", "reason", "rationale", "explanation"}
	suggestionKeys = []string{"suggested_fields", "suggestions", "fields"}
)

// Analyze runs the structured parse, then the heuristic match, then falls
// back to the catalog default. The result always names a catalog key.
func Analyze(text string, cat *catalog.Catalog) Analysis {
	if a, ok := TryStructuredParse(text, cat); ok {
		return a
	}
	if a, ok := TryHeuristicMatch(text, cat); ok {
		return a
	}
	fb := cat.Fallback()
	return Analysis{
		Recommendation: Recommendation{
			Category:   fb.Key,
			Reasoning:  fmt.Sprintf("The AI response could not be interpreted, so %s was preselected.", fb.Label),
			Confidence: FallbackConfidence,
		},
		Source:      SourceFallback,
		Suggestions: map[string]string{},
	}
}

// TryStructuredParse decodes the first JSON object in text. A category
// outside the catalog, or no category at all, becomes the fallback key.
// Malformed JSON reports false.
func TryStructuredParse(text string, cat *catalog.Catalog) (Analysis, bool) {
	obj, err := llm.ExtractJSON[map[string]any](text, nil)
	if err != nil {
		return Analysis{}, false
	}

	a := Analysis{
		Source:      SourceStructured,
		Suggestions: map[string]string{},
	}
	a.Category = cat.Resolve(firstString(obj, categoryKeys))
	a.Reasoning = firstString(obj, reasoningKeys)
	if conf, ok := normalizeConfidence(obj["confidence"]); ok {
		a.Confidence = conf
	} else {
		a.Confidence = DefaultStructuredConfidence
	}

	skip := map[string]bool{"confidence": true}
	for _, k := range categoryKeys {
		skip[k] = true
	}
	for _, k := range reasoningKeys {
		skip[k] = true
	}
	for _, k := range suggestionKeys {
		skip[k] = true
		if nested, ok := obj[k].(map[string]any); ok {
			collectSuggestions(a.Suggestions, nested, nil)
		}
	}
	// Top-level values win over nested ones.
	collectSuggestions(a.Suggestions, obj, skip)
	return a, true
}

// TryHeuristicMatch scans text for the first catalog key, in catalog order,
// appearing as a case-insensitive substring. Underscores in a key also
// match a space or a hyphen.
func TryHeuristicMatch(text string, cat *catalog.Catalog) (Analysis, bool) {
	lower := strings.ToLower(text)
	for _, key := range cat.Keys() {
		for _, variant := range keyVariants(key) {
			if strings.Contains(lower, variant) {
				return Analysis{
					Recommendation: Recommendation{
						Category:   key,
						Reasoning:  excerpt(text, reasoningExcerpt),
						Confidence: HeuristicConfidence,
					},
					Source:      SourceHeuristic,
					Suggestions: map[string]string{},
				}, true
			}
		}
	}
	return Analysis{}, false
}

func keyVariants(key string) []string {
	if !strings.Contains(key, "_") {
		return []string{key}
	}
	return []string{
		key,
		strings.ReplaceAll(key, "_", " "),
		strings.ReplaceAll(key, "_", "-"),
	}
}

func excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

func firstString(obj map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// normalizeConfidence accepts integers 0-100, fractions in (0,1] and
// percent strings. The value decides, not its spelling: 1 and 1.0 both mean
// full confidence. Out-of-range values are clamped.
func normalizeConfidence(v any) (int, bool) {
	var (
		text    string
		percent bool
	)
	switch val := v.(type) {
	case json.Number:
		text = val.String()
	case float64:
		text = strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		text = strings.TrimSpace(val)
		if strings.HasSuffix(text, "%") {
			percent = true
			text = strings.TrimSpace(strings.TrimSuffix(text, "%"))
		}
	default:
		return 0, false
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if !percent && f > 0 && f <= 1 {
		f *= 100
	}
	f = math.Round(f)
	switch {
	case f < 0:
		return 0, true
	case f > 100:
		return 100, true
	default:
		return int(f), true
	}
}

func collectSuggestions(dst map[string]string, obj map[string]any, skip map[string]bool) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if skip[k] {
			continue
		}
		if s, ok := suggestionText(obj[k]); ok {
			dst[strings.ToLower(k)] = s
		}
	}
}

// suggestionText renders a JSON scalar, or a list of scalars, as the text
// a form input would hold.
func suggestionText(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		return s, s != ""
	case json.Number:
		return val.String(), true
	case bool:
		return strconv.FormatBool(val), true
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := suggestionText(item); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ","), len(parts) > 0
	default:
		return "", false
	}
}
