package tagindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Web Dev", "web-dev"},
		{"web-dev", "web-dev"},
		{"  Go  ", "go"},
		{"C++", "c"},
		{"C  ++", "c"},
		{"Next.js 14", "next-js-14"},
		{"--a--b--", "a-b"},
		{"Café Society", "cafe-society"},
		{"Über Cool", "uber-cool"},
		{"日本語", "日本語"},
		{"snake_case", "snake-case"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Normalize(tt.input), "Normalize(%q)", tt.input)
	}
}

func TestSluggerDisambiguatesRepeats(t *testing.T) {
	s := NewSlugger()

	assert.Equal(t, "c", s.Slug("C++"))
	assert.Equal(t, "c-1", s.Slug("c++"))
	assert.Equal(t, "c-2", s.Slug("C  ++"))
}

func TestSluggerRegistersResult(t *testing.T) {
	s := NewSlugger()
	assert.False(t, s.Seen("go"))

	s.Slug("Go")
	assert.True(t, s.Seen("go"))
	assert.False(t, s.Seen("go-1"))

	s.Slug("GO")
	assert.True(t, s.Seen("go-1"))
}

func TestSluggerReservedIdentifier(t *testing.T) {
	s := NewSlugger(All)

	assert.Equal(t, "all-1", s.Slug("All"))
	assert.Equal(t, "all-2", s.Slug("ALL"))
}

func TestSluggerSkipsTakenSuffix(t *testing.T) {
	s := NewSlugger()

	assert.Equal(t, "c-1", s.Slug("c-1"))
	assert.Equal(t, "c", s.Slug("c"))
	assert.Equal(t, "c-2", s.Slug("c"))
}

func TestSluggerDegenerateInput(t *testing.T) {
	s := NewSlugger()

	assert.Equal(t, "", s.Slug("???"))
	assert.Equal(t, "-1", s.Slug(""))
}

func TestSluggersAreIndependent(t *testing.T) {
	a := NewSlugger()
	b := NewSlugger()

	assert.Equal(t, "go", a.Slug("go"))
	assert.Equal(t, "go", b.Slug("go"))
	assert.Equal(t, "go-1", a.Slug("go"))
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, "web-dev", CategoryOf("Web Dev"))
	assert.Equal(t, "web-dev", CategoryOf("web-dev"))
	assert.Equal(t, "all-1", CategoryOf("All"))
	// Calls share no state.
	assert.Equal(t, "web-dev", CategoryOf("WEB DEV"))
}
