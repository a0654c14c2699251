package folio

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/tagindex"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "blog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetPost(t *testing.T) {
	s := setupTestStore(t)

	post := BlogPost{
		Slug:      "test-post",
		Title:     "Test Post",
		Date:      "2024-01-15",
		Tags:      []string{"Go", " Web Dev "},
		Summary:   "A test post summary",
		Content:   "# Test Content\n\nThis is test content.",
		Published: true,
	}
	require.NoError(t, s.SavePost(post))

	got, err := s.GetPost("test-post")
	require.NoError(t, err)
	assert.Equal(t, post.Title, got.Title)
	assert.Equal(t, post.Date, got.Date)
	assert.Equal(t, post.Content, got.Content)
	assert.Equal(t, []string{"Go", "Web Dev"}, got.Tags, "tags keep their case and are trimmed")
	assert.Equal(t, "/blog/test-post", got.Link)
	assert.True(t, got.Published)
}

func TestGetPostNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetPost("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDraftsHiddenFromPublicQueries(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.SavePost(BlogPost{Slug: "pub", Title: "Pub", Date: "2024-01-02", Published: true}))
	require.NoError(t, s.SavePost(BlogPost{Slug: "draft", Title: "Draft", Date: "2024-01-03"}))

	_, err := s.GetPost("draft")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.GetPostAny("draft")
	require.NoError(t, err)
	assert.False(t, got.Published)

	posts, err := s.ListPosts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "pub", posts[0].Slug)

	all, err := s.ListAllPosts()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListPostsOrder(t *testing.T) {
	s := setupTestStore(t)
	for _, p := range []BlogPost{
		{Slug: "b", Date: "2024-01-01", Published: true},
		{Slug: "c", Date: "2024-03-01", Published: true},
		{Slug: "a", Date: "2024-01-01", Published: true},
	} {
		require.NoError(t, s.SavePost(p))
	}

	posts, err := s.ListPosts()
	require.NoError(t, err)
	var slugs []string
	for _, p := range posts {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"c", "a", "b"}, slugs)
}

func TestListPostsEmpty(t *testing.T) {
	s := setupTestStore(t)

	posts, err := s.ListPosts()
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestDeletePost(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.SavePost(BlogPost{Slug: "gone", Date: "2024-01-01", Published: true}))

	require.NoError(t, s.DeletePost("gone"))
	_, err := s.GetPostAny("gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetPostImage(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.SavePost(BlogPost{Slug: "p", Date: "2024-01-01", Published: true}))

	require.NoError(t, s.SetPostImage("p", "/public/uploads/p.jpg"))
	got, err := s.GetPost("p")
	require.NoError(t, err)
	assert.Equal(t, "/public/uploads/p.jpg", got.Image)

	assert.ErrorIs(t, s.SetPostImage("missing", "x"), ErrNotFound)
}

func TestReopenStoreKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog.db")
	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SavePost(BlogPost{Slug: "kept", Date: "2024-01-01", Image: "/x.jpg", Published: true}))
	require.NoError(t, s.Close())

	s, err = NewStore(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.GetPost("kept")
	require.NoError(t, err)
	assert.Equal(t, "/x.jpg", got.Image)
}

func TestImportDocuments(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.SavePost(BlogPost{Slug: "admin-only", Date: "2023-01-01", Published: true}))
	require.NoError(t, s.SavePost(BlogPost{Slug: "intro", Title: "Old", Date: "2023-01-01", Published: true}))

	n, err := s.ImportDocuments(context.Background(), []content.Document{
		{Slug: "intro", Title: "Intro", Date: "2024-02-01", Tags: []string{"Go"}, Body: "hello", Published: true},
		{Slug: "wip", Title: "WIP", Date: "2024-02-02", Body: "soon"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	intro, err := s.GetPost("intro")
	require.NoError(t, err)
	assert.Equal(t, "Intro", intro.Title)
	assert.Equal(t, "hello", intro.Content)
	assert.Equal(t, []string{"Go"}, intro.Tags)

	wip, err := s.GetPostAny("wip")
	require.NoError(t, err)
	assert.False(t, wip.Published)

	_, err = s.GetPost("admin-only")
	assert.NoError(t, err, "import never deletes posts")
}

func TestImportDocumentsCanceled(t *testing.T) {
	s := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ImportDocuments(ctx, []content.Document{{Slug: "x", Date: "2024-01-01"}})
	assert.Error(t, err)
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{",", nil},
		{",go,", []string{"go"}},
		{",Go,Web Dev,", []string{"Go", "Web Dev"}},
		{"go,web", []string{"go", "web"}},
		{",go,,web,", []string{"go", "web"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseTags(tt.in), "ParseTags(%q)", tt.in)
	}
}

func TestFormatTags(t *testing.T) {
	assert.Equal(t, "", FormatTags(nil))
	assert.Equal(t, "", FormatTags([]string{" ", ""}))
	assert.Equal(t, `["Go","Web Dev"]`, FormatTags([]string{"Go", " Web Dev"}))
	assert.Equal(t, `["Hello, World"]`, FormatTags([]string{"Hello, World"}))
}

func TestDecodeTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{`[]`, nil},
		{`["Go","Hello, World"]`, []string{"Go", "Hello, World"}},
		{`[" Go ",""]`, []string{"Go"}},
		{",Go,Web Dev,", []string{"Go", "Web Dev"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DecodeTags(tt.in), "DecodeTags(%q)", tt.in)
	}
}

func TestTagsWithCommasRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	doc, err := content.Parse("hello.md", strings.NewReader("---\ndate: \"2024-01-01\"\ntags: [\"Hello, World\", Go]\n---\nbody\n"))
	require.NoError(t, err)
	_, err = s.ImportDocuments(context.Background(), []content.Document{doc})
	require.NoError(t, err)

	posts, err := s.ListPosts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, []string{"Hello, World", "Go"}, posts[0].Tags)

	ix := tagindex.BuildIndex(posts)
	assert.Equal(t, []string{"all", "hello-world", "go"}, ix.Identifiers)
}

func TestLegacyCommaTagsStillRead(t *testing.T) {
	s := setupTestStore(t)
	_, err := s.db.Exec(`INSERT INTO posts (slug, title, date, tags, summary, content, published) VALUES ('old', 'Old', '2023-01-01', ',Go,Web Dev,', '', '', 1)`)
	require.NoError(t, err)

	got, err := s.GetPost("old")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Web Dev"}, got.Tags)

	require.NoError(t, s.SavePost(got))
	var stored string
	require.NoError(t, s.db.QueryRow(`SELECT tags FROM posts WHERE slug = 'old'`).Scan(&stored))
	assert.Equal(t, `["Go","Web Dev"]`, stored, "saving rewrites legacy tags as JSON")
}

func TestSyncDocumentsUnpublishesRemoved(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SavePost(BlogPost{Slug: "admin-only", Date: "2023-01-01", Published: true}))

	_, err := s.SyncDocuments(ctx, []content.Document{
		{Slug: "first", Date: "2024-01-01", Published: true},
		{Slug: "second", Date: "2024-01-02", Published: true},
	})
	require.NoError(t, err)

	n, err := s.SyncDocuments(ctx, []content.Document{
		{Slug: "first", Date: "2024-01-01", Published: true},
		{Slug: "renamed", Date: "2024-01-02", Published: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = s.GetPost("second")
	assert.ErrorIs(t, err, ErrNotFound, "removed document is unpublished")
	gone, err := s.GetPostAny("second")
	require.NoError(t, err)
	assert.False(t, gone.Published)

	for _, slug := range []string{"first", "renamed", "admin-only"} {
		_, err := s.GetPost(slug)
		assert.NoError(t, err, slug)
	}

	_, err = s.SyncDocuments(ctx, nil)
	require.NoError(t, err)
	posts, err := s.ListPosts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "admin-only", posts[0].Slug)
}

func TestSavePostTakesOverImportedPost(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	_, err := s.SyncDocuments(ctx, []content.Document{{Slug: "edited", Date: "2024-01-01", Published: true}})
	require.NoError(t, err)

	got, err := s.GetPost("edited")
	require.NoError(t, err)
	got.Title = "Edited in admin"
	require.NoError(t, s.SavePost(got))

	_, err = s.SyncDocuments(ctx, nil)
	require.NoError(t, err)
	_, err = s.GetPost("edited")
	assert.NoError(t, err, "admin edits are not unpublished by a sync")
}
