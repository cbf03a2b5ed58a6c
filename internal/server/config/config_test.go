package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/featherserve-go/internal/infra/confloader"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Static.Root != DefaultStaticRoot {
		t.Errorf("Static.Root = %q, want %q", cfg.Static.Root, DefaultStaticRoot)
	}
	if cfg.Static.Watch {
		t.Error("Static.Watch should be off by default")
	}
	if cfg.Server.HTTP.Addr != DefaultHTTPAddr {
		t.Errorf("HTTP.Addr = %q, want %q", cfg.Server.HTTP.Addr, DefaultHTTPAddr)
	}
	if cfg.Server.HTTPS.Enabled {
		t.Error("HTTPS should be disabled by default")
	}
	if cfg.Server.Timeouts.Read != 30*time.Second || cfg.Server.Timeouts.Write != 30*time.Second {
		t.Errorf("Timeouts = %+v, want 30s read/write", cfg.Server.Timeouts)
	}
	if cfg.Server.Timeouts.Submit != time.Second {
		t.Errorf("Timeouts.Submit = %v, want 1s", cfg.Server.Timeouts.Submit)
	}
	if cfg.Server.RateLimit.Rate != 0 {
		t.Error("rate limiting should be off by default")
	}
	if cfg.Admin.Enabled {
		t.Error("admin should be disabled by default")
	}
	if cfg.Log.Level != DefaultLogLevel || cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log = %+v", cfg.Log)
	}

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify(Default()) error = %v", err)
	}
}

func TestBindSpecs(t *testing.T) {
	cfg := Default()
	cfg.Server.HTTPS = HTTPSConfig{Enabled: true, Addr: ":8443", Cert: "c.pem", Key: "k.pem"}
	cfg.Server.Listeners = []ListenerConfig{
		{Addr: "[::1]:8081"},
		{Addr: "[::1]:8444", Cert: "c2.pem", Key: "k2.pem"},
	}

	specs := cfg.BindSpecs()
	if len(specs) != 4 {
		t.Fatalf("BindSpecs() returned %d specs, want 4", len(specs))
	}

	want := []struct {
		addr string
		tls  bool
	}{
		{DefaultHTTPAddr, false},
		{":8443", true},
		{"[::1]:8081", false},
		{"[::1]:8444", true},
	}
	for i, w := range want {
		if specs[i].Addr != w.addr || specs[i].TLS() != w.tls {
			t.Errorf("specs[%d] = %+v (tls=%v), want %s tls=%v", i, specs[i], specs[i].TLS(), w.addr, w.tls)
		}
	}
}

func TestBindSpecs_HTTPDisabled(t *testing.T) {
	cfg := Default()
	cfg.Server.HTTP.Addr = ""

	if specs := cfg.BindSpecs(); len(specs) != 0 {
		t.Errorf("BindSpecs() = %v, want none", specs)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantKey string
	}{
		{"empty root", func(c *ServerConfig) { c.Static.Root = " " }, "static.root"},
		{"no listeners", func(c *ServerConfig) { c.Server.HTTP.Addr = "" }, "has no listeners"},
		{"https without cert", func(c *ServerConfig) {
			c.Server.HTTPS = HTTPSConfig{Enabled: true, Addr: ":8443", Key: "k"}
		}, "server.https.cert"},
		{"https without key", func(c *ServerConfig) {
			c.Server.HTTPS = HTTPSConfig{Enabled: true, Addr: ":8443", Cert: "c"}
		}, "server.https.key"},
		{"listener half tls", func(c *ServerConfig) {
			c.Server.Listeners = []ListenerConfig{{Addr: ":9000", Cert: "c"}}
		}, "server.listeners[0]"},
		{"bad address", func(c *ServerConfig) { c.Server.HTTP.Addr = "no-port" }, "no-port"},
		{"duplicate address", func(c *ServerConfig) {
			c.Server.Listeners = []ListenerConfig{{Addr: DefaultHTTPAddr}}
		}, "bound twice"},
		{"negative workers", func(c *ServerConfig) { c.Server.Workers = -1 }, "server.workers"},
		{"negative queue", func(c *ServerConfig) { c.Server.Queue = -1 }, "server.queue"},
		{"negative read timeout", func(c *ServerConfig) { c.Server.Timeouts.Read = -time.Second }, "server.timeouts.read"},
		{"negative write timeout", func(c *ServerConfig) { c.Server.Timeouts.Write = -time.Second }, "server.timeouts.write"},
		{"negative submit timeout", func(c *ServerConfig) { c.Server.Timeouts.Submit = -time.Second }, "server.timeouts.submit"},
		{"negative rate", func(c *ServerConfig) { c.Server.RateLimit.Rate = -1 }, "server.ratelimit.rate"},
		{"rate without burst", func(c *ServerConfig) {
			c.Server.RateLimit = RateLimitConfig{Rate: 10}
		}, "server.ratelimit.burst"},
		{"admin bad addr", func(c *ServerConfig) {
			c.Admin = AdminSection{Enabled: true, Addr: "nope"}
		}, "admin.addr"},
		{"admin bad allow entry", func(c *ServerConfig) {
			c.Admin = AdminSection{Enabled: true, Addr: DefaultAdminAddr, Allow: []string{"10.0.0.0/8", "localhost"}}
		}, "admin.allow[1]"},
		{"bad log format", func(c *ServerConfig) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Verify(cfg)
			if err == nil {
				t.Fatal("Verify() should fail")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v should wrap ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.wantKey) {
				t.Errorf("error %q should mention %q", err, tt.wantKey)
			}
		})
	}
}

func TestVerify_Valid(t *testing.T) {
	cfg := Default()
	cfg.Server.HTTPS = HTTPSConfig{Enabled: true, Addr: ":8443", Cert: "c.pem", Key: "k.pem"}
	cfg.Server.Workers = 4
	cfg.Server.RateLimit = RateLimitConfig{Rate: 50, Burst: 100}
	cfg.Admin.Enabled = true

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}

func TestLoad_FromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "featherserve.yaml")
	content := `
static:
  root: /srv/site
  watch: true
server:
  http:
    addr: "127.0.0.1:8000"
  https:
    enabled: true
    addr: "127.0.0.1:8443"
    cert: /etc/featherserve/tls.crt
    key: /etc/featherserve/tls.key
  listeners:
    - addr: "127.0.0.1:9001"
  timeouts:
    read: 5s
  ratelimit:
    rate: 25
    burst: 50
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("FEATHERSERVE_SERVER_WORKERS", "12")

	cfg := Default()
	loader := confloader.NewLoader(confloader.WithConfigFile(path))
	if err := loader.Load(cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Static.Root != "/srv/site" || !cfg.Static.Watch {
		t.Errorf("Static = %+v", cfg.Static)
	}
	if cfg.Server.HTTP.Addr != "127.0.0.1:8000" {
		t.Errorf("HTTP.Addr = %q", cfg.Server.HTTP.Addr)
	}
	if !cfg.Server.HTTPS.Enabled || cfg.Server.HTTPS.Cert != "/etc/featherserve/tls.crt" {
		t.Errorf("HTTPS = %+v", cfg.Server.HTTPS)
	}
	if len(cfg.Server.Listeners) != 1 || cfg.Server.Listeners[0].Addr != "127.0.0.1:9001" {
		t.Errorf("Listeners = %+v", cfg.Server.Listeners)
	}
	if cfg.Server.Timeouts.Read != 5*time.Second {
		t.Errorf("Timeouts.Read = %v, want 5s", cfg.Server.Timeouts.Read)
	}
	if cfg.Server.Timeouts.Write != DefaultWriteTimeout {
		t.Errorf("Timeouts.Write = %v, default should survive", cfg.Server.Timeouts.Write)
	}
	if cfg.Server.Workers != 12 {
		t.Errorf("Workers = %d, want 12 from env", cfg.Server.Workers)
	}
	if cfg.Server.RateLimit.Rate != 25 || cfg.Server.RateLimit.Burst != 50 {
		t.Errorf("RateLimit = %+v", cfg.Server.RateLimit)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log = %+v", cfg.Log)
	}

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}
