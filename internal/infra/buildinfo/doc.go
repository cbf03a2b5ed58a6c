// Package buildinfo provides build information for featherserve.
//
// This package exposes build-time information injected via ldflags:
//
//   - Version: Semantic version (e.g., "1.0.0")
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//
// The Go version and, when ldflags are absent, the module version and VCS
// revision come from runtime/debug.ReadBuildInfo.
//
// Usage:
//
//	go build -ldflags "-X github.com/yndnr/featherserve-go/internal/infra/buildinfo.Version=1.0.0"
package buildinfo
