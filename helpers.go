package folio

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/eringen/folio/tagindex"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// FilterEmpty trims each string and drops the empty ones.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// RelatedPosts returns the posts other than current that share a category
// with it, in input order.
func RelatedPosts(current BlogPost, posts []BlogPost) []BlogPost {
	ids := make(map[string]struct{}, len(current.Tags))
	for _, t := range current.Tags {
		ids[tagindex.CategoryOf(t)] = struct{}{}
	}
	var related []BlogPost
	for _, p := range posts {
		if p.Slug == current.Slug {
			continue
		}
		for _, t := range p.Tags {
			if _, ok := ids[tagindex.CategoryOf(t)]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

// JoinTags joins tags with ", ".
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// TagLines writes tags one per line, the format of the admin tags field.
func TagLines(tags []string) string {
	return strings.Join(tags, "\n")
}

// SplitTagLines reads the admin tags field: one tag per line, so a tag may
// contain commas.
func SplitTagLines(s string) []string {
	return FilterEmpty(strings.Split(s, "\n"))
}

// PathEscape escapes a string for use in a URL path.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// AbsoluteURL resolves a site-relative reference such as "/public/a.jpg"
// against base. Absolute references are returned unchanged.
func AbsoluteURL(base, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(ref, "/")
}

// CategoryURL returns the site-relative route of a category.
func CategoryURL(id string) string {
	return "/categories/" + url.PathEscape(id) + "/"
}

// TagURL returns the category route a tag chip links to.
func TagURL(tag string) string {
	return CategoryURL(tagindex.CategoryOf(tag))
}

// CategoryTitle is the page title of a category listing.
func CategoryTitle(id string) string {
	return strings.ReplaceAll(id, "-", " ") + " Blogs"
}

// CategoryDescription is the meta description of a category listing.
func CategoryDescription(id string) string {
	subject := id
	if id == tagindex.All {
		subject = "web development"
	}
	return "Learn more about " + subject + " through our collection of expert blogs and tutorials"
}

// FormatDate renders a YYYY-MM-DD date as "January 2, 2006". Unparseable
// input is returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	return marshalJsonLD(data)
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(post BlogPost, cfg SiteConfig) string {
	postURL := BuildURL(cfg.URL, "blog", post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Summary,
		"datePublished": post.Date,
		"url":           postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	if post.Image != "" {
		data["image"] = AbsoluteURL(cfg.URL, post.Image)
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	return marshalJsonLD(data)
}

// CollectionPageJsonLD returns a JSON-LD string for a category listing.
func CollectionPageJsonLD(page CategoryPage, cfg SiteConfig) string {
	parts := make([]map[string]string, 0, len(page.Posts))
	for _, p := range page.Posts {
		parts = append(parts, map[string]string{
			"@type":    "BlogPosting",
			"headline": p.Title,
			"url":      BuildURL(cfg.URL, "blog", p.Slug),
		})
	}
	return marshalJsonLD(map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "CollectionPage",
		"name":        page.Title,
		"description": page.Description,
		"url":         BuildURL(cfg.URL, "categories", page.Slug),
		"hasPart":     parts,
	})
}

func marshalJsonLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
