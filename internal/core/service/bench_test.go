package service

import (
	"testing"

	"github.com/yndnr/featherserve-go/internal/core/domain"
)

var benchPaths = []string{
	"/",
	"/about",
	"/docs/index.html",
	"/missing/page",
	"/.env",
	"/wp-admin/../wp-config.php",
	"/static/js/app.3f9a1c.js",
}

// BenchmarkDetectorMatch benchmarks probe detection on typical paths.
func BenchmarkDetectorMatch(b *testing.B) {
	d := NewDetector()
	for _, p := range benchPaths {
		b.Run(p, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				d.Match(p)
			}
		})
	}
}

// BenchmarkHandle benchmarks the full request-to-response path from
// many goroutines at once.
func BenchmarkHandle(b *testing.B) {
	h := NewHandler(newSource(b, siteFiles))
	reqs := make([]domain.Request, len(benchPaths))
	for i, p := range benchPaths {
		reqs[i] = domain.Request{Method: "GET", Path: p, AcceptsGzip: i%2 == 0}
	}

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			h.Handle(reqs[i%len(reqs)])
			i++
		}
	})
}
