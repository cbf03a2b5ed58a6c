// Package service turns parsed requests into responses.
//
// It contains:
//
//   - Detector: honeypot pattern detection on the raw request path
//   - Resolver: the security gate deciding between serving, not-found
//     and deception
//   - Handler: combines the resolver with response building
//
// Services hold no per-request state and are safe for concurrent use.
// The asset cache is read through a Source so that a rebuilt cache can be
// published without coordinating with in-flight requests.
package service
