// Package metric provides Prometheus metrics for featherserve.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry and HTTP handler
//   - collector.go: a collector reading asset cache statistics on scrape
//
// Metrics include:
//
//   - Connection accept, reject and error counters
//   - Request counters and latency histograms by disposition
//   - Honeypot hits by category
//   - Asset cache size gauges
//
// Metrics are exposed at /metrics in Prometheus format by the admin server.
package metric
