package domain

import "errors"

var (
	// ErrEmptyRequest is returned when the client sent no bytes.
	ErrEmptyRequest = errors.New("domain: empty request")

	// ErrMalformedRequest is returned when the request line cannot be parsed.
	ErrMalformedRequest = errors.New("domain: malformed request")
)
