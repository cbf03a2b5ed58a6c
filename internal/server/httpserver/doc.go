// Package httpserver provides the admin HTTP endpoint.
//
// It exposes Prometheus metrics, liveness and readiness probes and build
// information on a separate, normally loopback-only, address. It never
// serves site content; that is the job of staticserver.
package httpserver
