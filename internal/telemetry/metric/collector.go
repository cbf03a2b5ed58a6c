package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CacheStats is a point-in-time view of the asset cache.
type CacheStats struct {
	Files     int
	Routes    int
	Bytes     int64
	GzipBytes int64
}

// CacheCollector reports asset cache size on every scrape.
//
// Reading on scrape means a rebuilt cache shows up without the reload
// path having to know about metrics.
type CacheCollector struct {
	stats func() CacheStats

	files     *prometheus.Desc
	routes    *prometheus.Desc
	bytes     *prometheus.Desc
	gzipBytes *prometheus.Desc
}

// NewCacheCollector creates a collector calling stats on each scrape.
func NewCacheCollector(stats func() CacheStats) *CacheCollector {
	return &CacheCollector{
		stats: stats,
		files: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "cache", "files"),
			"Files held in the asset cache.", nil, nil),
		routes: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "cache", "routes"),
			"URL paths served from the asset cache, aliases included.", nil, nil),
		bytes: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "cache", "bytes"),
			"Raw body bytes held in the asset cache.", nil, nil),
		gzipBytes: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "cache", "gzip_bytes"),
			"Precompressed body bytes held in the asset cache.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *CacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.files
	ch <- c.routes
	ch <- c.bytes
	ch <- c.gzipBytes
}

// Collect implements prometheus.Collector.
func (c *CacheCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	ch <- prometheus.MustNewConstMetric(c.files, prometheus.GaugeValue, float64(s.Files))
	ch <- prometheus.MustNewConstMetric(c.routes, prometheus.GaugeValue, float64(s.Routes))
	ch <- prometheus.MustNewConstMetric(c.bytes, prometheus.GaugeValue, float64(s.Bytes))
	ch <- prometheus.MustNewConstMetric(c.gzipBytes, prometheus.GaugeValue, float64(s.GzipBytes))
}
