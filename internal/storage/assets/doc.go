// Package assets provides the in-memory static asset cache.
//
// A Cache is built once from a directory tree and is read-only afterwards,
// so lookups need no locking and entries can be shared by every worker.
//
// Loading walks the tree and keeps regular files only. Symbolic links are
// skipped, including links to files inside the root, so a site that relies
// on them must be copied out first.
//
// Files:
//
//   - classify.go: content type, cache-control and compressibility tables
//   - loader.go: tree walk and alias derivation
//   - compress.go: gzip variants for compressible types
//   - holder.go: atomic publication of rebuilt snapshots
//   - watcher.go: fsnotify-driven rebuilds
package assets
