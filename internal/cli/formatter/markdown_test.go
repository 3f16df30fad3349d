package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdown_RendersText(t *testing.T) {
	out := stripANSI(Markdown("Use **Scrum** for a customer portal.", MarkdownWidth))
	assert.Contains(t, out, "Scrum")
	assert.Contains(t, out, "customer portal.")
	assert.False(t, strings.HasPrefix(out, "\n"))
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestMarkdown_NoTrailingPadding(t *testing.T) {
	out := stripANSI(Markdown("short line", 60))
	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, strings.TrimRight(line, " "), line)
	}
}
