package service

import (
	"github.com/yndnr/featherserve-go/internal/storage/assets"
)

// Source yields the asset cache snapshot to serve from.
//
// Implementations must return a fully built, immutable cache.
// *assets.Holder satisfies it.
type Source interface {
	Load() *assets.Cache
}

// Kind is the disposition of a request path.
type Kind int

const (
	// Serve returns a cached asset with status 200.
	Serve Kind = iota
	// ServeNotFound returns the not-found page with status 404.
	ServeNotFound
	// Deceive returns fabricated content with status 200.
	Deceive
)

// String returns the disposition name used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case Serve:
		return "serve"
	case ServeNotFound:
		return "not_found"
	case Deceive:
		return "deceive"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of resolving one path.
type Resolution struct {
	Kind Kind

	// Entry is the asset to serve. It is nil for Deceive, and nil for
	// ServeNotFound when no 404 page was loaded.
	Entry *assets.Entry

	// Category is set for Deceive.
	Category Category
}

// Resolver maps a raw request path to a disposition.
//
// The path is never normalized: probe detection runs on exactly what the
// client sent and cache lookups are exact-match. There is no filesystem
// access here; everything comes from the snapshot returned by Source.
type Resolver struct {
	source   Source
	detector *Detector
}

// NewResolver creates a resolver over the given cache source.
func NewResolver(source Source) *Resolver {
	return &Resolver{
		source:   source,
		detector: NewDetector(),
	}
}

// Resolve decides how to answer a request for path.
//
// Probe detection takes precedence over cache hits.
func (r *Resolver) Resolve(path string) Resolution {
	if r.detector.Match(path) {
		return Resolution{Kind: Deceive, Category: Classify(path)}
	}

	cache := r.source.Load()
	if entry, ok := cache.Get(path); ok {
		return Resolution{Kind: Serve, Entry: entry}
	}

	entry, _ := cache.NotFound()
	return Resolution{Kind: ServeNotFound, Entry: entry}
}
