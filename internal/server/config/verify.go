package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

func invalid(key, format string, args ...any) error {
	return fmt.Errorf("%w: %s %s", ErrInvalid, key, fmt.Sprintf(format, args...))
}

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if strings.TrimSpace(cfg.Static.Root) == "" {
		return invalid("static.root", "is required")
	}
	if err := verifyListeners(cfg); err != nil {
		return err
	}
	if err := verifyDispatcher(&cfg.Server); err != nil {
		return err
	}
	if cfg.Admin.Enabled {
		if _, _, err := net.SplitHostPort(cfg.Admin.Addr); err != nil {
			return invalid("admin.addr", "%q: %v", cfg.Admin.Addr, err)
		}
		for i, entry := range cfg.Admin.Allow {
			if !validAllowEntry(entry) {
				return invalid(fmt.Sprintf("admin.allow[%d]", i), "%q is not an IP or CIDR", entry)
			}
		}
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "", "json", "text", "console":
	default:
		return invalid("log.format", "must be json or text, got %q", cfg.Log.Format)
	}
	return nil
}

func verifyListeners(cfg *ServerConfig) error {
	https := &cfg.Server.HTTPS
	if https.Enabled {
		if https.Cert == "" {
			return invalid("server.https.cert", "is required when HTTPS is enabled")
		}
		if https.Key == "" {
			return invalid("server.https.key", "is required when HTTPS is enabled")
		}
	}

	for i, l := range cfg.Server.Listeners {
		if (l.Cert == "") != (l.Key == "") {
			return invalid(fmt.Sprintf("server.listeners[%d]", i), "needs both cert and key for TLS")
		}
	}

	specs := cfg.BindSpecs()
	if len(specs) == 0 {
		return invalid("server", "has no listeners: set server.http.addr, enable server.https or add server.listeners")
	}

	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		if _, _, err := net.SplitHostPort(s.Addr); err != nil {
			return invalid("listener address", "%q: %v", s.Addr, err)
		}
		if seen[s.Addr] {
			return invalid("listener address", "%q is bound twice", s.Addr)
		}
		seen[s.Addr] = true
	}
	return nil
}

func verifyDispatcher(cfg *ServerSection) error {
	if cfg.Workers < 0 {
		return invalid("server.workers", "must not be negative")
	}
	if cfg.Queue < 0 {
		return invalid("server.queue", "must not be negative")
	}
	if cfg.Timeouts.Read < 0 {
		return invalid("server.timeouts.read", "must not be negative")
	}
	if cfg.Timeouts.Write < 0 {
		return invalid("server.timeouts.write", "must not be negative")
	}
	if cfg.Timeouts.Submit < 0 {
		return invalid("server.timeouts.submit", "must not be negative")
	}
	if cfg.RateLimit.Rate < 0 {
		return invalid("server.ratelimit.rate", "must not be negative")
	}
	if cfg.RateLimit.Rate > 0 && cfg.RateLimit.Burst < 1 {
		return invalid("server.ratelimit.burst", "must be at least 1 when rate limiting is on")
	}
	return nil
}

func validAllowEntry(entry string) bool {
	entry = strings.TrimSpace(entry)
	if strings.Contains(entry, "/") {
		_, _, err := net.ParseCIDR(entry)
		return err == nil
	}
	return net.ParseIP(entry) != nil
}
