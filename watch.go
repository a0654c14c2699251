package folio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/eringen/folio/content"
)

const reloadDelay = 300 * time.Millisecond

// ImportContent loads the markdown documents under dir into the store and
// drops the post cache. Imported posts whose file is gone are unpublished.
// Files that fail to parse are reported in the returned error; the others
// are still imported, but nothing is unpublished on such a partial load.
func (a *App) ImportContent(ctx context.Context, dir string) (int, error) {
	docs, loadErr := content.Load(dir)
	if len(docs) == 0 && loadErr != nil {
		a.metrics.ContentReloaded(false)
		return 0, fmt.Errorf("folio: load content: %w", loadErr)
	}
	importDocs := a.Store.SyncDocuments
	if loadErr != nil {
		importDocs = a.Store.ImportDocuments
	}
	n, err := importDocs(ctx, docs)
	if err != nil {
		a.metrics.ContentReloaded(false)
		return 0, err
	}
	if a.Cache != nil {
		a.Cache.Invalidate()
	}
	a.metrics.ContentReloaded(loadErr == nil)
	if loadErr != nil {
		return n, fmt.Errorf("folio: load content: %w", loadErr)
	}
	return n, nil
}

// WatchContent re-imports dir whenever a file under it changes, until ctx
// is done. Bursts of events within reloadDelay cause one import.
func (a *App) WatchContent(ctx context.Context, dir string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("folio: fsnotify: %w", err)
	}
	defer w.Close()
	if err := watchDirs(w, dir); err != nil {
		return err
	}

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ignoreEvent(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = watchDirs(w, ev.Name)
				}
			}
			timer.Reset(reloadDelay)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.Echo.Logger.Warnf("content watcher: %v", err)
		case <-timer.C:
			n, err := a.ImportContent(ctx, dir)
			if err != nil {
				a.Echo.Logger.Warnf("content reload: %v", err)
			}
			a.Echo.Logger.Infof("content reloaded: %d documents", n)
		}
	}
}

func watchDirs(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}

// ignoreEvent skips hidden files and editor swap files.
func ignoreEvent(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") ||
		strings.HasPrefix(base, "#") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp")
}
