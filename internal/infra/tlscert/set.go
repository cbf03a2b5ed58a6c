package tlscert

import (
	"crypto/tls"
	"log/slog"
	"sync"
)

type pair struct {
	cert, key string
}

// Set shares one Watcher between listeners that use the same files.
type Set struct {
	mu       sync.Mutex
	watchers map[pair]*Watcher
	opts     []WatcherOption
	started  bool
	logger   *slog.Logger
}

// NewSet creates an empty set. opts are applied to every watcher.
func NewSet(logger *slog.Logger, opts ...WatcherOption) *Set {
	if logger == nil {
		logger = slog.Default()
	}
	return &Set{
		watchers: make(map[pair]*Watcher),
		opts:     append([]WatcherOption{WithLogger(logger)}, opts...),
		logger:   logger,
	}
}

// Config returns a server tls.Config for the pair, loading it on first
// use. Load errors are returned.
func (s *Set) Config(certFile, keyFile string) (*tls.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := pair{certFile, keyFile}
	if w, ok := s.watchers[p]; ok {
		return w.TLSConfig(), nil
	}

	w, err := NewWatcher(certFile, keyFile, s.opts...)
	if err != nil {
		return nil, err
	}
	s.watchers[p] = w
	if s.started {
		w.StartAsync()
	}
	return w.TLSConfig(), nil
}

// Len returns the number of distinct pairs.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.watchers)
}

// StartAsync starts every watcher, and any added later.
func (s *Set) StartAsync() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	for _, w := range s.watchers {
		w.StartAsync()
	}
	if len(s.watchers) > 0 {
		s.logger.Info("certificate hot reload enabled", "pairs", len(s.watchers))
	}
}

// Stop stops every watcher.
func (s *Set) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.watchers {
		w.Stop()
	}
}
