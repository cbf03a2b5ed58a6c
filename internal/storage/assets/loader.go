package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaolacci/murmur3"
)

// NotFoundFile is the file, relative to the root, served for cache misses.
const NotFoundFile = "404.html"

// ErrNotDirectory is returned when the static root is not a directory.
var ErrNotDirectory = errors.New("assets: static root is not a directory")

// Option configures Load.
type Option func(*loader)

// WithLogger sets the logger used while loading.
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

type loader struct {
	logger *slog.Logger
}

// Load reads every regular file under root into memory.
//
// A root that cannot be resolved yields an empty cache and a warning
// rather than an error: the server still starts and answers every
// request with the not-found fallback.
func Load(root string, opts ...Option) *Cache {
	ld := &loader{logger: slog.Default()}
	for _, opt := range opts {
		opt(ld)
	}

	base, err := canonicalize(root)
	if err != nil {
		ld.logger.Warn("could not resolve static root, serving empty cache",
			"root", root,
			"error", err,
		)
		return Empty()
	}

	c := &Cache{
		root:    base,
		entries: make(map[string]*Entry),
	}

	_ = filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			ld.logger.Warn("skipping unreadable path", "path", p, "error", err)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(base, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		ent, err := ld.loadFile(p)
		if err != nil {
			ld.logger.Warn("skipping unreadable file", "path", p, "error", err)
			return nil
		}

		c.stats.Files++
		c.stats.Bytes += int64(len(ent.Body))
		c.stats.GzipBytes += int64(len(ent.Gzip))

		for _, key := range RouteKeys(rel) {
			c.entries[key] = ent
		}
		return nil
	})

	if ent, ok := c.entries["/"+NotFoundFile]; ok {
		c.notFound = ent
	} else if ent, err := ld.loadFile(filepath.Join(base, NotFoundFile)); err == nil {
		c.notFound = ent
	}

	c.stats.Routes = len(c.entries)

	ld.logger.Info("asset cache loaded",
		"root", base,
		"files", c.stats.Files,
		"routes", c.stats.Routes,
		"bytes", c.stats.Bytes,
		"gzip_bytes", c.stats.GzipBytes,
		"not_found_page", c.notFound != nil,
	)

	return c
}

// RouteKeys returns the URL paths registered for a file at rel, a
// slash-separated path relative to the root. The first key is always
// "/" + rel; the rest are aliases.
//
//	a/index.html -> /a/index.html, /a, /a/
//	index.html   -> /index.html, /
//	about.html   -> /about.html, /about
func RouteKeys(rel string) []string {
	key := "/" + rel
	keys := []string{key}

	switch {
	case strings.HasSuffix(rel, "index.html"):
		dir := strings.TrimRight(trimSuffixAll(key, "index.html"), "/")
		if dir == "" {
			keys = append(keys, "/")
		} else {
			keys = append(keys, dir, dir+"/")
		}
	case strings.HasSuffix(rel, ".html"):
		keys = append(keys, trimSuffixAll(key, ".html"))
	}

	return keys
}

// loadFile reads and classifies a single file.
func (ld *loader) loadFile(p string) (*Entry, error) {
	body, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}

	name := filepath.ToSlash(p)
	ent := &Entry{
		Body:         body,
		ContentType:  ContentType(name),
		CacheControl: CacheControl(name),
		Hash:         murmur3.Sum64(body),
	}

	if Compressible(ent.ContentType) {
		gz, err := compress(body)
		if err != nil {
			ld.logger.Warn("gzip failed, serving identity only", "path", p, "error", err)
		} else {
			ent.Gzip = gz
		}
	}

	return ent, nil
}

// canonicalize resolves root to an absolute, symlink-free directory path.
func canonicalize(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, resolved)
	}
	return resolved, nil
}

func trimSuffixAll(s, suffix string) string {
	for strings.HasSuffix(s, suffix) {
		s = s[:len(s)-len(suffix)]
	}
	return s
}
