package folio

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "https://example.com", BuildURL("https://example.com"))
	assert.Equal(t, "https://example.com/blog/hello/", BuildURL("https://example.com", "blog", "hello"))
	assert.Equal(t, "https://example.com/sub/categories/go/", BuildURL("https://example.com/sub", "categories", "go"))
}

func TestFilterEmpty(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, FilterEmpty([]string{" a", "", "  ", "b "}))
	assert.Nil(t, FilterEmpty(nil))
}

func TestTagLines(t *testing.T) {
	tags := []string{"Hello, World", "Go"}
	assert.Equal(t, "Hello, World\nGo", TagLines(tags))
	assert.Equal(t, tags, SplitTagLines(TagLines(tags)))
	assert.Equal(t, tags, SplitTagLines(" Hello, World \r\n\nGo\r\n"))
	assert.Nil(t, SplitTagLines(""))
}

func TestRelatedPostsShareCategory(t *testing.T) {
	current := BlogPost{Slug: "cur", Tags: []string{"Web Dev"}}
	posts := []BlogPost{
		current,
		{Slug: "same-slug", Tags: []string{"web-dev"}},
		{Slug: "other", Tags: []string{"Go"}},
		{Slug: "case", Tags: []string{"Go", "WEB DEV"}},
	}

	var slugs []string
	for _, p := range RelatedPosts(current, posts) {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"same-slug", "case"}, slugs)
}

func TestRelatedPostsUntagged(t *testing.T) {
	assert.Empty(t, RelatedPosts(BlogPost{Slug: "x"}, []BlogPost{{Slug: "y", Tags: []string{"go"}}}))
}

func TestCategoryRoutes(t *testing.T) {
	assert.Equal(t, "/categories/web-dev/", CategoryURL("web-dev"))
	assert.Equal(t, "/categories/next-js/", TagURL("Next.js"))
	assert.Equal(t, "/categories/all-1/", TagURL("All"))
}

func TestCategoryTitleAndDescription(t *testing.T) {
	assert.Equal(t, "web dev Blogs", CategoryTitle("web-dev"))
	assert.Equal(t, "all Blogs", CategoryTitle("all"))
	assert.Equal(t, "Learn more about web development through our collection of expert blogs and tutorials", CategoryDescription("all"))
	assert.Equal(t, "Learn more about web-dev through our collection of expert blogs and tutorials", CategoryDescription("web-dev"))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "March 5, 2024", FormatDate("2024-03-05"))
	assert.Equal(t, "soon", FormatDate("soon"))
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "https://example.com/public/a.jpg", AbsoluteURL("https://example.com", "/public/a.jpg"))
	assert.Equal(t, "https://cdn.example.com/a.jpg", AbsoluteURL("https://example.com", "https://cdn.example.com/a.jpg"))
}

func TestBlogPostingJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Notes", URL: "https://example.com", Author: "Ada"}
	post := BlogPost{Slug: "hi", Title: "Hi </script>", Date: "2024-01-01", Tags: []string{"Go", "Web"}, Image: "/public/uploads/hi.jpg"}

	raw := BlogPostingJsonLD(post, cfg)
	assert.NotContains(t, raw, "</script>")

	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	assert.Equal(t, "BlogPosting", data["@type"])
	assert.Equal(t, "https://example.com/blog/hi/", data["url"])
	assert.Equal(t, "Go, Web", data["keywords"])
	assert.Equal(t, "https://example.com/public/uploads/hi.jpg", data["image"])
}

func TestCollectionPageJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Notes", URL: "https://example.com"}
	page := CategoryPage{Slug: "go", Title: "go Blogs", Posts: []BlogPost{{Slug: "a", Title: "A"}}}

	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(CollectionPageJsonLD(page, cfg)), &data))
	assert.Equal(t, "https://example.com/categories/go/", data["url"])
	assert.Len(t, data["hasPart"], 1)
}

func TestSafeReturn(t *testing.T) {
	assert.Equal(t, "/blog/a/", safeReturn("/blog/a/", ""))
	assert.Equal(t, "/categories/go/?x=1", safeReturn("", "https://example.com/categories/go/?x=1"))
	assert.Equal(t, "/", safeReturn("//evil.example", ""))
	assert.Equal(t, "/", safeReturn("", ""))
	assert.Equal(t, "/", safeReturn("javascript:alert(1)", ""))
}
