package domain

import (
	"io"
	"testing"
)

var benchRequest = []byte("GET /assets/app.js HTTP/1.1\r\n" +
	"Host: example.com\r\n" +
	"User-Agent: Mozilla/5.0 (X11; Linux x86_64)\r\n" +
	"Accept: */*\r\n" +
	"Accept-Language: en-US,en;q=0.9\r\n" +
	"Accept-Encoding: gzip, deflate, br\r\n" +
	"Connection: close\r\n\r\n")

// BenchmarkParseRequest benchmarks parsing a browser-like request.
func BenchmarkParseRequest(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(benchRequest)))
	for i := 0; i < b.N; i++ {
		if _, err := ParseRequest(benchRequest); err != nil {
			b.Fatalf("ParseRequest failed: %v", err)
		}
	}
}

// BenchmarkResponseAppendTo benchmarks serializing into a reused buffer.
func BenchmarkResponseAppendTo(b *testing.B) {
	resp := Response{
		Status:       StatusOK,
		ContentType:  "application/javascript",
		Body:         make([]byte, 8<<10),
		Gzip:         true,
		CacheControl: "public, max-age=31536000, immutable",
	}
	buf := make([]byte, 0, 16<<10)

	b.ReportAllocs()
	b.SetBytes(int64(len(resp.Body)))
	for i := 0; i < b.N; i++ {
		buf = resp.AppendTo(buf[:0])
	}
	_, _ = io.Discard.Write(buf)
}
