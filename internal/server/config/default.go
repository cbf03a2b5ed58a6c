package config

import "time"

// Default configuration values.
const (
	DefaultStaticRoot = "pages"

	DefaultHTTPAddr  = "0.0.0.0:8080"
	DefaultHTTPSAddr = "0.0.0.0:8443"
	DefaultAdminAddr = "127.0.0.1:9090"

	DefaultReadTimeout   = 30 * time.Second
	DefaultWriteTimeout  = 30 * time.Second
	DefaultSubmitTimeout = time.Second

	DefaultRateBurst = 20

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Static: StaticSection{
			Root: DefaultStaticRoot,
		},
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr: DefaultHTTPAddr,
			},
			HTTPS: HTTPSConfig{
				Addr: DefaultHTTPSAddr,
			},
			Timeouts: TimeoutsConfig{
				Read:   DefaultReadTimeout,
				Write:  DefaultWriteTimeout,
				Submit: DefaultSubmitTimeout,
			},
			RateLimit: RateLimitConfig{
				Burst: DefaultRateBurst,
			},
		},
		Admin: AdminSection{
			Addr: DefaultAdminAddr,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
