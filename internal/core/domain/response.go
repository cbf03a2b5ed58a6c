package domain

import (
	"io"
	"strconv"
)

// Status is the response status.
type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusForbidden
)

// Code returns the numeric HTTP status code.
func (s Status) Code() int {
	switch s {
	case StatusNotFound:
		return 404
	case StatusForbidden:
		return 403
	default:
		return 200
	}
}

// String returns the status as written on the status line.
func (s Status) String() string {
	switch s {
	case StatusNotFound:
		return "404 NOT FOUND"
	case StatusForbidden:
		return "403 FORBIDDEN"
	default:
		return "200 OK"
	}
}

// Response is a complete response ready for serialization.
//
// Body may alias a cached buffer and must be treated as read-only.
type Response struct {
	Status       Status
	ContentType  string
	Body         []byte
	Gzip         bool
	CacheControl string
}

// AppendTo appends the wire form of the response to dst.
//
// Header order is fixed: Content-Length, Content-Type, then the optional
// Content-Encoding and Cache-Control.
func (r *Response) AppendTo(dst []byte) []byte {
	dst = append(dst, "HTTP/1.1 "...)
	dst = append(dst, r.Status.String()...)
	dst = append(dst, "\r\nContent-Length: "...)
	dst = strconv.AppendInt(dst, int64(len(r.Body)), 10)
	dst = append(dst, "\r\nContent-Type: "...)
	dst = append(dst, r.ContentType...)
	dst = append(dst, "\r\n"...)
	if r.Gzip {
		dst = append(dst, "Content-Encoding: gzip\r\n"...)
	}
	if r.CacheControl != "" {
		dst = append(dst, "Cache-Control: "...)
		dst = append(dst, r.CacheControl...)
		dst = append(dst, "\r\n"...)
	}
	dst = append(dst, "\r\n"...)
	return append(dst, r.Body...)
}

// Bytes returns the wire form of the response.
func (r *Response) Bytes() []byte {
	return r.AppendTo(make([]byte, 0, r.headerSizeHint()+len(r.Body)))
}

// WriteTo writes the whole response with a single Write call.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Bytes())
	return int64(n), err
}

func (r *Response) headerSizeHint() int {
	return 96 + len(r.ContentType) + len(r.CacheControl)
}
