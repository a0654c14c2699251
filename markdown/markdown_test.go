package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, input string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(&buf, input))
	return buf.String()
}

func TestRenderMarkdownHeadings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"# Heading 1", `<h1 id="heading-1">Heading 1</h1>`},
		{"## Heading 2", `<h2 id="heading-2">Heading 2</h2>`},
		{"### Heading 3", `<h3 id="heading-3">Heading 3</h3>`},
	}
	for _, tt := range tests {
		assert.Contains(t, render(t, tt.input), tt.expected, tt.input)
	}
}

func TestRenderMarkdownInline(t *testing.T) {
	got := render(t, "text **bold** and *italic* and `code`")
	assert.Contains(t, got, "<strong>bold</strong>")
	assert.Contains(t, got, "<em>italic</em>")
	assert.Contains(t, got, "<code>code</code>")
}

func TestRenderMarkdownCodeBlockWithLanguage(t *testing.T) {
	got := render(t, "```go\nfmt.Println(\"hello\")\n```")
	assert.Contains(t, got, `class="language-go"`)
	assert.Contains(t, got, "<pre>")
}

func TestRenderMarkdownTable(t *testing.T) {
	got := render(t, "| a | b |\n|---|---|\n| 1 | 2 |")
	assert.Contains(t, got, "<table>")
	assert.Contains(t, got, "<td>1</td>")
}

func TestRenderMarkdownDropsRawHTML(t *testing.T) {
	got := render(t, "<script>alert(1)</script>\n\nok")
	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "ok")
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown("hello *world*").Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "<em>world</em>")
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 1, ReadingTime(""))
	assert.Equal(t, 1, ReadingTime("just a few words"))
	assert.Equal(t, 1, ReadingTime(strings.Repeat("word ", 200)))
	assert.Equal(t, 2, ReadingTime(strings.Repeat("word ", 201)))
	assert.Equal(t, 3, ReadingTime(strings.Repeat("word\n", 600)))
}
