// Package domain defines the wire-level request and response models.
//
// The models are plain values with no IO dependencies:
//
//   - Request: the parsed request line plus the gzip negotiation flag
//   - Response: status, headers and body, serialized in a fixed header order
//   - Errors: parse failures that close a connection without a reply
package domain
