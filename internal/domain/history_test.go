package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCreationRecord(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.FixedZone("CET", 3600))
	a := NewCreationRecord("project", "7", "Portal", "agile", "/projects/7", now)
	b := NewCreationRecord("project", "8", "Portal", "agile", "/projects/8", now)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, time.UTC, a.CreatedAt.Location())
	assert.True(t, a.CreatedAt.Equal(now))
	assert.Nil(t, a.Confidence)
}

func TestHints_KeysHaveText(t *testing.T) {
	for _, key := range []string{HintIdeaTip, HintManualChoice, HintReviewEdit} {
		assert.NotEmpty(t, Hints[key], key)
	}
}
