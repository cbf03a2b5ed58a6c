package domain

import (
	"strings"
	"unicode/utf8"
)

// MaxRequestSize is the number of bytes read from a connection.
// Anything beyond it is ignored; larger requests are not supported.
const MaxRequestSize = 4096

const acceptEncodingPrefix = "accept-encoding:"

// Request is a parsed inbound request.
//
// Only the request line and the Accept-Encoding header are interpreted.
// Method and Proto are recorded but never validated.
type Request struct {
	Method      string
	Path        string
	Proto       string
	AcceptsGzip bool
}

// ParseRequest decodes raw request bytes.
//
// It fails only when the input is empty, is not valid UTF-8, or the first
// line has fewer than two whitespace-separated tokens. Header lines that
// are not of the form "key: value" are ignored.
func ParseRequest(raw []byte) (Request, error) {
	if len(raw) == 0 {
		return Request{}, ErrEmptyRequest
	}
	if !utf8.Valid(raw) {
		return Request{}, ErrMalformedRequest
	}

	first, rest, _ := strings.Cut(string(raw), "\n")
	fields := strings.Fields(strings.TrimSuffix(first, "\r"))
	if len(fields) < 2 {
		return Request{}, ErrMalformedRequest
	}

	req := Request{
		Method: fields[0],
		Path:   fields[1],
	}
	if len(fields) > 2 {
		req.Proto = fields[2]
	}

	for rest != "" {
		var line string
		line, rest, _ = strings.Cut(rest, "\n")
		if acceptsGzip(strings.TrimSuffix(line, "\r")) {
			req.AcceptsGzip = true
			break
		}
	}

	return req, nil
}

// acceptsGzip reports whether a header line is an Accept-Encoding header
// mentioning gzip. Both checks are case-insensitive.
func acceptsGzip(line string) bool {
	if len(line) < len(acceptEncodingPrefix) {
		return false
	}
	if !strings.EqualFold(line[:len(acceptEncodingPrefix)], acceptEncodingPrefix) {
		return false
	}
	return strings.Contains(strings.ToLower(line[len(acceptEncodingPrefix):]), "gzip")
}
