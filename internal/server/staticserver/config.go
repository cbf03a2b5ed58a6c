package staticserver

import (
	"crypto/tls"
	"runtime"
	"time"
)

// Defaults applied by Config.withDefaults.
const (
	DefaultReadTimeout   = 30 * time.Second
	DefaultWriteTimeout  = 30 * time.Second
	DefaultSubmitTimeout = time.Second

	// queuePerWorker sizes the accept queue when QueueSize is unset.
	queuePerWorker = 64
)

// Bind is one listening endpoint.
type Bind struct {
	// Addr is a host:port pair, e.g. "0.0.0.0:8080".
	Addr string
	// TLS enables TLS on this endpoint when non-nil.
	TLS *tls.Config
}

// Config holds the static server configuration.
type Config struct {
	// Binds lists the endpoints to listen on. At least one is required.
	Binds []Bind

	// Workers is the number of connection workers (default: NumCPU).
	Workers int
	// QueueSize bounds accepted connections waiting for a worker
	// (default: Workers*64).
	QueueSize int

	// ReadTimeout bounds the TLS handshake and the request read.
	ReadTimeout time.Duration
	// WriteTimeout bounds the response write.
	WriteTimeout time.Duration
	// SubmitTimeout is how long an accept loop waits for queue space
	// before rejecting the connection.
	SubmitTimeout time.Duration

	// RateLimit is connections per second allowed per client IP.
	// Zero disables rate limiting.
	RateLimit float64
	// RateBurst is the per-IP burst (default: max(1, RateLimit)).
	RateBurst int
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.QueueSize <= 0 {
		c.QueueSize = c.Workers * queuePerWorker
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.SubmitTimeout <= 0 {
		c.SubmitTimeout = DefaultSubmitTimeout
	}
	if c.RateLimit > 0 && c.RateBurst <= 0 {
		c.RateBurst = max(1, int(c.RateLimit))
	}
	return c
}
