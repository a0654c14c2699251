package folio

import (
	"sync"
	"time"

	"github.com/eringen/folio/tagindex"
)

// PostCache is an in-memory cache of published blog posts with TTL. The
// category index is derived from the cached posts on every call and never
// stored.
type PostCache struct {
	mu      sync.RWMutex
	posts   []BlogPost
	fetched time.Time
	ttl     time.Duration
	store   *Store
	metrics *Metrics
}

// NewPostCache creates a PostCache backed by the given Store. m may be nil.
func NewPostCache(s *Store, ttl time.Duration, m *Metrics) *PostCache {
	return &PostCache{store: s, ttl: ttl, metrics: m}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPosts()
	if err != nil {
		return err
	}
	c.posts = posts
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached posts after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() ([]BlogPost, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, err
	}
	return c.posts, nil
}

// ListPosts returns published posts, newest first.
func (c *PostCache) ListPosts() ([]BlogPost, error) {
	return c.ensureLoaded()
}

// GetPost returns a single published post by slug from the cache.
func (c *PostCache) GetPost(slug string) (BlogPost, error) {
	posts, err := c.ensureLoaded()
	if err != nil {
		return BlogPost{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return BlogPost{}, ErrNotFound
}

// Exists reports whether a published post with slug is cached.
func (c *PostCache) Exists(slug string) bool {
	_, err := c.GetPost(slug)
	return err == nil
}

// Categories builds the category index over the published posts.
func (c *PostCache) Categories() (tagindex.Index[BlogPost], error) {
	posts, err := c.ensureLoaded()
	if err != nil {
		return tagindex.Index[BlogPost]{}, err
	}
	start := time.Now()
	ix := tagindex.BuildIndex(posts)
	c.metrics.ObserveIndexBuild(time.Since(start))
	return ix, nil
}

// Category filters the published posts by category identifier.
func (c *PostCache) Category(id string) (tagindex.Filtered[BlogPost], error) {
	posts, err := c.ensureLoaded()
	if err != nil {
		return tagindex.Filtered[BlogPost]{}, err
	}
	return tagindex.FilterByCategory(posts, id), nil
}
