// Package staticserver accepts TCP and TLS connections and answers one
// request per connection from the in-memory asset cache.
//
// Every listener runs its own accept loop. Accepted connections are handed
// to a fixed pool of workers through a bounded queue; when the queue stays
// full past the submit timeout the connection is closed unanswered. A
// single slow or failing connection never affects the others.
package staticserver
