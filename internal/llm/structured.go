package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator validates a parsed value after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// ExtractJSON decodes the first JSON object in raw model output that fits T.
// Brace blocks in surrounding prose that do not decode are skipped. Numbers
// landing in interface values are json.Number. If validator is non-nil, a
// candidate must also pass it.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	candidates := objectCandidates(stripCodeFences(raw))
	if len(candidates) == 0 {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var firstErr error
	for _, block := range candidates {
		dec := json.NewDecoder(strings.NewReader(cleanJSON(block)))
		dec.UseNumber()
		var result T
		if err := dec.Decode(&result); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%w: %v", ErrInvalidOutput, err)
			}
			continue
		}
		if validator != nil {
			if err := validator(result); err != nil {
				firstErr = fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
				continue
			}
		}
		return result, nil
	}
	return zero, firstErr
}

// ExtractJSONObject returns the first balanced {...} block in raw that is
// valid JSON once cleaned, tolerating markdown fences and surrounding prose.
// Comments and leading-dot decimals are cleaned. When no block is valid the
// first balanced one is returned as is.
func ExtractJSONObject(raw string) (string, bool) {
	candidates := objectCandidates(stripCodeFences(raw))
	if len(candidates) == 0 {
		return "", false
	}
	for _, block := range candidates {
		if cleaned := cleanJSON(block); json.Valid([]byte(cleaned)) {
			return cleaned, true
		}
	}
	return cleanJSON(candidates[0]), true
}

// stripCodeFences drops markdown fence lines (``` or ```json).
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// objectCandidates returns the balanced { ... } blocks of s in order,
// ignoring braces inside strings. A block that balances is returned whole and
// the scan resumes after it; a '{' that never balances is skipped.
func objectCandidates(s string) []string {
	var out []string
	for pos := 0; pos < len(s); {
		i := strings.IndexByte(s[pos:], '{')
		if i == -1 {
			break
		}
		start := pos + i
		if end := balancedEnd(s, start); end != -1 {
			out = append(out, s[start:end])
			pos = end
			continue
		}
		pos = start + 1
	}
	return out
}

// balancedEnd returns the index just past the '}' closing the '{' at start,
// or -1.
func balancedEnd(s string, start int) int {
	var st stringState
	depth := 0
	for i := start; i < len(s); i++ {
		c := s[i]
		if st.step(c) {
			continue
		}
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// cleanJSON removes // and /* */ comments and rewrites ".5" / "-.5" as
// "0.5" / "-0.5", all outside string values. Models emit both despite
// instructions not to.
func cleanJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	var st stringState
	for i := 0; i < len(s); i++ {
		c := s[i]
		if st.step(c) {
			b.WriteByte(c)
			continue
		}

		if c == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				for i+1 < len(s) && s[i+1] != '\n' {
					i++
				}
				continue
			case '*':
				end := strings.Index(s[i+2:], "*/")
				if end == -1 {
					i = len(s)
				} else {
					i += end + 3
				}
				continue
			}
		}

		if c == '.' && i+1 < len(s) && isDigit(s[i+1]) && isNumericBoundary(lastNonSpace(b.String())) {
			b.WriteByte('0')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// stringState tracks whether a byte scan is inside a JSON string literal.
type stringState struct {
	inString bool
	escaped  bool
}

// step consumes c and reports whether it belongs to a string literal
// (including its quotes), in which case it carries no structural meaning.
func (s *stringState) step(c byte) bool {
	switch {
	case s.escaped:
		s.escaped = false
		return true
	case s.inString && c == '\\':
		s.escaped = true
		return true
	case c == '"':
		s.inString = !s.inString
		return true
	default:
		return s.inString
	}
}

func lastNonSpace(s string) byte {
	t := strings.TrimRight(s, " \t\r\n")
	if t == "" {
		return 0
	}
	return t[len(t)-1]
}

func isNumericBoundary(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	default:
		return false
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
