package folio

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchContentReimportsOnChange(t *testing.T) {
	a := newTestApp(t)
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.WatchContent(ctx, dir) }()

	file := filepath.Join(dir, "watched.md")
	post := []byte("---\ntitle: Watched\ndate: \"2024-07-01\"\ntags: Go\n---\nBody\n")
	var written time.Time
	assert.Eventually(t, func() bool {
		// Rewrite now and then in case the first write happened before the
		// watcher was registered. Writes stay further apart than reloadDelay.
		if time.Since(written) > time.Second {
			_ = os.WriteFile(file, post, 0o644)
			written = time.Now()
		}
		return a.Cache.Exists("watched")
	}, 10*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchContentUnpublishesRenamedFile(t *testing.T) {
	a := newTestApp(t)
	dir := t.TempDir()
	oldFile := filepath.Join(dir, "before.md")
	require.NoError(t, os.WriteFile(oldFile, []byte("---\ndate: \"2024-07-01\"\n---\nBody\n"), 0o644))
	_, err := a.ImportContent(context.Background(), dir)
	require.NoError(t, err)
	require.True(t, a.Cache.Exists("before"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = a.WatchContent(ctx, dir) }()

	newFile := filepath.Join(dir, "after.md")
	var touched time.Time
	assert.Eventually(t, func() bool {
		// Rename once the watcher may be up, then keep touching the new file
		// so a rename that raced the watcher still triggers a reload.
		if time.Since(touched) > time.Second {
			if _, err := os.Stat(oldFile); err == nil {
				_ = os.Rename(oldFile, newFile)
			} else {
				now := time.Now()
				_ = os.Chtimes(newFile, now, now)
			}
			touched = time.Now()
		}
		return a.Cache.Exists("after") && !a.Cache.Exists("before")
	}, 10*time.Second, 50*time.Millisecond)
}

func TestIgnoreEvent(t *testing.T) {
	assert.True(t, ignoreEvent("/x/.hidden.md"))
	assert.True(t, ignoreEvent("/x/post.md~"))
	assert.True(t, ignoreEvent("/x/.post.md.swp"))
	assert.True(t, ignoreEvent("/x/#post.md#"))
	assert.False(t, ignoreEvent("/x/post.md"))
}
