// Package content loads blog posts from a directory of markdown files with
// front matter, the on-disk format a site keeps under version control.
package content

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/eringen/folio/tagindex"
)

const dateLayout = "2006-01-02"

// Document is one markdown post with its front matter decoded.
type Document struct {
	Path      string
	Slug      string
	Title     string
	Date      string // YYYY-MM-DD
	Tags      []string
	Summary   string
	Image     string
	Published bool
	Body      string
}

// Load reads every .md and .mdx file under dir. Files that cannot be parsed
// are skipped; their errors are joined into the returned error while the
// documents that did parse are still returned, newest first.
func Load(dir string) ([]Document, error) {
	var docs []Document
	var errs []error

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsSource(path) {
			return nil
		}
		doc, err := parseFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("content: %s: %w", path, err))
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("content: walk %s: %w", dir, walkErr)
	}

	Sort(docs)
	return docs, errors.Join(errs...)
}

// IsSource reports whether path names a markdown source file.
func IsSource(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".mdx":
		return true
	}
	return false
}

// Sort orders documents by date descending, then by slug.
func Sort(docs []Document) {
	slices.SortStableFunc(docs, func(a, b Document) int {
		if c := cmp.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Slug, b.Slug)
	})
}

func parseFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()
	doc, err := Parse(filepath.Base(path), f)
	if err != nil {
		return Document{}, err
	}
	doc.Path = path
	return doc, nil
}

// Parse decodes one markdown document. name is used to derive the slug when
// the front matter does not set one.
func Parse(name string, r io.Reader) (Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Document{}, err
	}
	fields := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fields)
	if err != nil {
		return Document{}, fmt.Errorf("front matter: %w", err)
	}

	doc := Document{
		Slug:      tagindex.Normalize(stringField(fields, "slug")),
		Title:     stringField(fields, "title"),
		Summary:   firstString(fields, "summary", "description"),
		Image:     firstString(fields, "image", "cover"),
		Tags:      tagList(fields["tags"]),
		Published: boolField(fields, true, "isPublished", "published"),
		Body:      strings.TrimSpace(string(body)),
	}

	if doc.Slug == "" {
		doc.Slug = tagindex.Normalize(strings.TrimSuffix(name, filepath.Ext(name)))
	}
	if doc.Slug == "" {
		return Document{}, errors.New("cannot derive a slug")
	}
	if doc.Title == "" {
		doc.Title = strings.ReplaceAll(doc.Slug, "-", " ")
	}

	date, err := dateField(fields, "publishedAt", "date")
	if err != nil {
		return Document{}, err
	}
	doc.Date = date
	return doc, nil
}

// tagList accepts whatever the author wrote under "tags". A list keeps its
// string entries, a plain string is split on commas, anything else is no tags.
func tagList(v any) []string {
	var raw []string
	switch t := v.(type) {
	case []any:
		for _, e := range t {
			if s, ok := e.(string); ok {
				raw = append(raw, s)
			}
		}
	case []string:
		raw = t
	case string:
		raw = strings.Split(t, ",")
	default:
		return nil
	}
	tags := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			tags = append(tags, s)
		}
	}
	return tags
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return strings.TrimSpace(s)
}

func firstString(fields map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := stringField(fields, k); s != "" {
			return s
		}
	}
	return ""
}

func boolField(fields map[string]any, fallback bool, keys ...string) bool {
	for _, k := range keys {
		switch v := fields[k].(type) {
		case bool:
			return v
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				return b
			}
		}
	}
	return fallback
}

func dateField(fields map[string]any, keys ...string) (string, error) {
	for _, k := range keys {
		switch v := fields[k].(type) {
		case time.Time:
			return v.Format(dateLayout), nil
		case string:
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			for _, layout := range []string{dateLayout, time.RFC3339, "2006-01-02T15:04:05"} {
				if t, err := time.Parse(layout, v); err == nil {
					return t.Format(dateLayout), nil
				}
			}
			return "", fmt.Errorf("invalid %s %q: use YYYY-MM-DD or RFC3339", k, v)
		}
	}
	return "", errors.New("missing publishedAt/date")
}
