// Package tagindex derives category identifiers from free-text post tags and
// groups posts under them.
//
// Every function here is a pure projection over its input. Disambiguation
// state lives in a Slugger that one indexing pass creates and then drops, so
// concurrent callers never see each other's identifiers.
package tagindex

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// All is the reserved identifier of the category holding every post.
// A tag that normalizes to it is given a suffixed identifier instead.
const All = "all"

// Normalize maps tag text to its canonical slug: lower case, accents folded,
// and each run of characters that are neither letters nor digits collapsed
// into one hyphen. Leading and trailing hyphens are dropped, so input made
// only of punctuation normalizes to "".
func Normalize(text string) string {
	// transform chains carry state and cannot be shared between goroutines.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, text)
	if err != nil {
		folded = text
	}

	var b strings.Builder
	b.Grow(len(folded))
	gap := false
	for _, r := range strings.ToLower(folded) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			gap = true
			continue
		}
		if gap && b.Len() > 0 {
			b.WriteByte('-')
		}
		gap = false
		b.WriteRune(r)
	}
	return b.String()
}

// Slugger hands out unique identifiers for one indexing pass. The first text
// that normalizes to a form gets the bare form; later ones get "-1", "-2", and
// so on. The zero value is not usable; call NewSlugger.
type Slugger struct {
	seen map[string]struct{}
	next map[string]int
}

// NewSlugger returns an empty disambiguation set with reserved identifiers
// already registered.
func NewSlugger(reserved ...string) *Slugger {
	s := &Slugger{
		seen: make(map[string]struct{}, len(reserved)),
		next: make(map[string]int),
	}
	for _, id := range reserved {
		s.seen[id] = struct{}{}
	}
	return s
}

// Slug normalizes text, disambiguates it against every identifier produced
// so far and registers the result.
func (s *Slugger) Slug(text string) string {
	return s.register(Normalize(text))
}

// Seen reports whether id has already been handed out or reserved.
func (s *Slugger) Seen(id string) bool {
	_, ok := s.seen[id]
	return ok
}

func (s *Slugger) register(base string) string {
	id := base
	if s.Seen(id) {
		n := s.next[base]
		for {
			n++
			id = base + "-" + strconv.Itoa(n)
			if !s.Seen(id) {
				break
			}
		}
		s.next[base] = n
	}
	s.seen[id] = struct{}{}
	return id
}

// categorizer resolves tags to category identifiers within one pass. Tags
// sharing a normalized form share an identifier; only a form not met before
// goes through the slugger.
type categorizer struct {
	slugger *Slugger
	byForm  map[string]string
}

func newCategorizer() *categorizer {
	return &categorizer{
		slugger: NewSlugger(All),
		byForm:  make(map[string]string),
	}
}

func (c *categorizer) identifier(tag string) string {
	form := Normalize(tag)
	if id, ok := c.byForm[form]; ok {
		return id
	}
	id := c.slugger.register(form)
	c.byForm[form] = id
	return id
}

// CategoryOf returns the identifier a single tag receives in a fresh pass.
// Views use it to link a tag to its category route.
func CategoryOf(tag string) string {
	return newCategorizer().identifier(tag)
}
