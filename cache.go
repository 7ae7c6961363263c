package folio

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/eringen/folio/content"
)

// PostCache is an in-memory view of the post index with a TTL.
type PostCache struct {
	mu      sync.RWMutex
	posts   []content.Post
	tags    []string
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.tags = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPosts("")
	if err != nil {
		return err
	}
	tags, err := c.store.ListTags()
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []content.Post{}
	}
	c.posts = posts
	c.tags = tags
	c.fetched = time.Now()
	return nil
}

// ensureLoaded takes the read lock first and only upgrades when a reload
// is needed.
func (c *PostCache) ensureLoaded() ([]content.Post, []string, error) {
	c.mu.RLock()
	if c.valid() {
		posts, tags := c.posts, c.tags
		c.mu.RUnlock()
		return posts, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.posts, c.tags, nil
}

// ListPosts returns indexed posts, optionally filtered by tag.
func (c *PostCache) ListPosts(tag string) ([]content.Post, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return posts, nil
	}
	return content.FilterByTag(posts, tag), nil
}

// ListTags returns all unique tags.
func (c *PostCache) ListTags() ([]string, error) {
	_, tags, err := c.ensureLoaded()
	return tags, err
}

// GetPost returns a single post by slug from the cache.
func (c *PostCache) GetPost(slug string) (content.Post, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return content.Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return content.Post{}, ErrNotFound
}

// PageCache holds rendered pages keyed by URL path. The dev server fills it
// lazily and purges it whenever content changes. Each purge starts a new
// generation; pages rendered against an older generation are not stored.
type PageCache struct {
	mu    sync.Mutex
	gen   uint64
	pages *lru.Cache[string, Page]
}

// NewPageCache creates a PageCache holding at most size pages.
func NewPageCache(size int) (*PageCache, error) {
	c, err := lru.New[string, Page](size)
	if err != nil {
		return nil, err
	}
	return &PageCache{pages: c}, nil
}

// Get returns the cached page for urlPath.
func (c *PageCache) Get(urlPath string) (Page, bool) {
	return c.pages.Get(urlPath)
}

// Generation returns the current purge generation. Read it before loading
// the data a page is rendered from.
func (c *PageCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Add stores p under its path if no purge happened since gen. It reports
// whether the page was stored.
func (c *PageCache) Add(gen uint64, p Page) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.pages.Add(p.Path, p)
	return true
}

// Len reports the number of cached pages.
func (c *PageCache) Len() int {
	return c.pages.Len()
}

// Purge drops every cached page and starts a new generation.
func (c *PageCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.pages.Purge()
}
