package llm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

func TestExtractJSON_CleanJSON(t *testing.T) {
	result, err := ExtractJSON[testPayload](`{"category":"agile","confidence":88}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "agile", result.Category)
	assert.Equal(t, 88.0, result.Confidence)
}

func TestExtractJSON_FencedJSON(t *testing.T) {
	raw := "```json\n{\"category\":\"scrum\",\"confidence\":0.88}\n```"
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "scrum", result.Category)
}

func TestExtractJSON_SurroundingText(t *testing.T) {
	raw := "Here is my recommendation:\n{\"category\":\"kanban\",\"confidence\":72}\nHope that helps!"
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "kanban", result.Category)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON[testPayload]("I think kanban fits well here", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_InvalidJSON(t *testing.T) {
	_, err := ExtractJSON[testPayload](`{"category":"agile", broken}`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_ValidationFailure(t *testing.T) {
	validator := func(p testPayload) error {
		if p.Confidence < 0 || p.Confidence > 100 {
			return fmt.Errorf("confidence out of range: %v", p.Confidence)
		}
		return nil
	}
	_, err := ExtractJSON(`{"category":"agile","confidence":150}`, validator)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestExtractJSONObject_FirstBalancedBlock(t *testing.T) {
	block, ok := ExtractJSONObject(`prefix {"a":{"b":"}"}} {"second":1}`)
	require.True(t, ok)
	assert.Equal(t, `{"a":{"b":"}"}}`, block)
}

func TestExtractJSON_SkipsProseBraces(t *testing.T) {
	raw := `Based on {your idea}, here is my answer: {"category":"agile","confidence":88}`
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "agile", result.Category)
	assert.Equal(t, 88.0, result.Confidence)

	block, ok := ExtractJSONObject(raw)
	require.True(t, ok)
	assert.Equal(t, `{"category":"agile","confidence":88}`, block)
}

func TestExtractJSON_SkipsUnclosedProseBrace(t *testing.T) {
	raw := `Consider {the scope: {"category":"kanban","confidence":70}`
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "kanban", result.Category)
}

func TestExtractJSON_ValidatorPicksLaterCandidate(t *testing.T) {
	validator := func(p testPayload) error {
		if p.Category == "" {
			return fmt.Errorf("category required")
		}
		return nil
	}
	raw := `Example shape {"hint":"x"} and the answer {"category":"waterfall","confidence":64}`
	result, err := ExtractJSON(raw, validator)
	require.NoError(t, err)
	assert.Equal(t, "waterfall", result.Category)
}

func TestExtractJSONObject_Unbalanced(t *testing.T) {
	_, ok := ExtractJSONObject(`{"a": 1`)
	assert.False(t, ok)
	_, ok = ExtractJSONObject(`no object`)
	assert.False(t, ok)
}

func TestExtractJSONObject_CleansCommentsAndDecimals(t *testing.T) {
	raw := "{\n  \"confidence\": .75, // model comment\n  /* block */ \"delta\": -.5,\n  \"url\": \"http://x/.5\"\n}"
	block, ok := ExtractJSONObject(raw)
	require.True(t, ok)
	assert.Contains(t, block, `"confidence": 0.75`)
	assert.Contains(t, block, `"delta": -0.5`)
	assert.Contains(t, block, `"url": "http://x/.5"`)
	assert.NotContains(t, block, "model comment")
	assert.NotContains(t, block, "block")
}
