// Package main provides the entry point for featherserve.
//
// featherserve loads a static site into memory at startup and answers
// HTTP and HTTPS requests from that cache. Probes for well-known secret
// files get fabricated content instead of a 404.
package main
