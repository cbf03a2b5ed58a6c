package config

import "time"

// ServerConfig is the root configuration for featherserve.
type ServerConfig struct {
	Static StaticSection `koanf:"static"`
	Server ServerSection `koanf:"server"`
	Admin  AdminSection  `koanf:"admin"`
	Log    LogSection    `koanf:"log"`
}

// StaticSection configures the asset tree.
type StaticSection struct {
	// Root is the directory served from memory.
	Root string `koanf:"root"`

	// Watch rebuilds the cache when files under Root change.
	Watch bool `koanf:"watch"`
}

// ServerSection configures listeners and the connection dispatcher.
type ServerSection struct {
	HTTP  HTTPConfig  `koanf:"http"`
	HTTPS HTTPSConfig `koanf:"https"`

	// Listeners are additional binds. An entry with cert and key is TLS.
	Listeners []ListenerConfig `koanf:"listeners"`

	// Workers is the size of the worker pool, 0 for one per CPU.
	Workers int `koanf:"workers"`

	// Queue is the number of accepted connections that may wait for a
	// worker, 0 for 64 per worker.
	Queue int `koanf:"queue"`

	Timeouts  TimeoutsConfig  `koanf:"timeouts"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
}

// HTTPConfig configures the plain listener.
type HTTPConfig struct {
	// Addr is the bind address; empty disables the plain listener.
	Addr string `koanf:"addr"`
}

// HTTPSConfig configures the TLS listener.
type HTTPSConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
	Cert    string `koanf:"cert"`
	Key     string `koanf:"key"`
}

// ListenerConfig is one extra bind.
type ListenerConfig struct {
	Addr string `koanf:"addr"`
	Cert string `koanf:"cert"`
	Key  string `koanf:"key"`
}

// TimeoutsConfig bounds per-connection work.
type TimeoutsConfig struct {
	// Read is the deadline for receiving the request.
	Read time.Duration `koanf:"read"`
	// Write is the deadline for sending the response.
	Write time.Duration `koanf:"write"`
	// Submit is how long the accept loop waits for a free queue slot.
	Submit time.Duration `koanf:"submit"`
}

// RateLimitConfig configures per-IP connection limiting.
type RateLimitConfig struct {
	// Rate is connections per second per IP; 0 disables limiting.
	Rate float64 `koanf:"rate"`
	// Burst is the bucket size.
	Burst int `koanf:"burst"`
}

// AdminSection configures the metrics and health endpoint.
type AdminSection struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`

	// Allow restricts the endpoint to these IPs or CIDRs; empty allows all.
	Allow []string `koanf:"allow"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
