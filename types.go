package folio

import (
	"github.com/eringen/folio/analytics"
	"github.com/eringen/folio/tagindex"
)

// BlogPost is the core content type stored in SQLite and rendered by templates.
type BlogPost struct {
	Title     string
	Date      string // YYYY-MM-DD
	Tags      []string
	Summary   string
	Link      string
	Slug      string
	Content   string
	Image     string // cover image URL, empty when the post has none
	Published bool
}

// TagList returns the author's tags as written.
func (p BlogPost) TagList() []string { return p.Tags }

// IsPublished reports whether the post is visible on the public site.
func (p BlogPost) IsPublished() bool { return p.Published }

// PrimaryCategory returns the first tag and its category identifier, or two
// empty strings for an untagged post.
func (p BlogPost) PrimaryCategory() (tag, id string) {
	if len(p.Tags) == 0 {
		return "", ""
	}
	return p.Tags[0], tagindex.CategoryOf(p.Tags[0])
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Theme       string // "dark" or "light"
}

// HomePage is the data of the landing page.
type HomePage struct {
	Meta       PageMeta
	Posts      []BlogPost
	Categories []string // index identifiers, "all" first
	Counts     map[string]int
}

// PostPage is the data of an article page.
type PostPage struct {
	Meta    PageMeta
	Post    BlogPost
	Related []BlogPost
	Views   int64
	Counted bool // whether the view counter is mounted
}

// CategoryPage is everything a category listing renders.
type CategoryPage struct {
	Meta        PageMeta
	Slug        string
	Title       string
	Description string
	Posts       []BlogPost
	Categories  []string // chooser entries, "all" first
}

// AdminPage is the data of the admin dashboard.
type AdminPage struct {
	Posts     []BlogPost
	TopViews  []analytics.PageViews
	Message   string
	CSRFToken string
}
