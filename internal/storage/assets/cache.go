package assets

import (
	"sort"
)

// Entry is a cached file, ready to be written to the wire.
//
// Entries are immutable once the cache is built. Callers must not modify
// Body or Gzip; several URL paths may share the same Entry.
type Entry struct {
	// Body is the raw file content.
	Body []byte
	// Gzip is the precompressed body, nil when the content type is not
	// compressible or compression failed.
	Gzip []byte
	// ContentType is the value of the Content-Type header.
	ContentType string
	// CacheControl is the Cache-Control policy, "" for none.
	CacheControl string
	// Hash is the murmur3 digest of Body.
	Hash uint64
}

// HasGzip reports whether a precompressed variant exists.
func (e *Entry) HasGzip() bool {
	return e.Gzip != nil
}

// Cache maps URL paths to entries.
type Cache struct {
	root     string
	entries  map[string]*Entry
	notFound *Entry
	stats    Stats
}

// Stats summarizes a loaded cache.
type Stats struct {
	// Files is the number of files read from the tree.
	Files int
	// Routes is the number of URL paths, aliases included.
	Routes int
	// Bytes is the total raw body size of the files.
	Bytes int64
	// GzipBytes is the total size of the precompressed variants.
	GzipBytes int64
}

// Route describes one URL path of the cache.
type Route struct {
	Path  string
	Entry *Entry
}

// Empty returns a cache with no entries and no not-found page.
func Empty() *Cache {
	return &Cache{entries: make(map[string]*Entry)}
}

// Get returns the entry registered for an exact URL path.
// No normalization is applied.
func (c *Cache) Get(urlPath string) (*Entry, bool) {
	e, ok := c.entries[urlPath]
	return e, ok
}

// NotFound returns the designated 404 entry, if one was loaded.
func (c *Cache) NotFound() (*Entry, bool) {
	return c.notFound, c.notFound != nil
}

// Root returns the canonical root directory, "" if it could not be resolved.
func (c *Cache) Root() string {
	return c.root
}

// Len returns the number of registered URL paths.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Stats returns load statistics.
func (c *Cache) Stats() Stats {
	return c.stats
}

// Routes returns every registered URL path sorted lexically.
func (c *Cache) Routes() []Route {
	out := make([]Route, 0, len(c.entries))
	for p, e := range c.entries {
		out = append(out, Route{Path: p, Entry: e})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}
