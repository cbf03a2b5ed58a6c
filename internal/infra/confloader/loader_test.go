package confloader

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Server struct {
		HTTP struct {
			Address string `koanf:"address"`
			Enabled bool   `koanf:"enabled"`
		} `koanf:"http"`
	} `koanf:"server"`
	Static struct {
		Root string `koanf:"root"`
	} `koanf:"static"`
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l == nil {
		t.Fatal("NewLoader() returned nil")
	}
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}
}

func TestNewLoader_WithOptions(t *testing.T) {
	l := NewLoader(WithConfigFile("/path/to/config.yaml"))

	if got := l.FilePath(); got != "/path/to/config.yaml" {
		t.Errorf("FilePath() = %q, want %q", got, "/path/to/config.yaml")
	}
	if l.filePath != "/path/to/config.yaml" {
		t.Errorf("filePath = %q, want %q", l.filePath, "/path/to/config.yaml")
	}
}

func TestLoader_LoadFile(t *testing.T) {
	// Create temp config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
server:
  http:
    address: "0.0.0.0:5080"
    enabled: true
static:
  root: "/srv/www"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	l := NewLoader()
	if err := l.LoadFile(configPath); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	var cfg testConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.Server.HTTP.Address != "0.0.0.0:5080" {
		t.Errorf("server.http.address = %q, want %q", cfg.Server.HTTP.Address, "0.0.0.0:5080")
	}
	if !cfg.Server.HTTP.Enabled {
		t.Error("server.http.enabled should be true")
	}
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	l := NewLoader()
	err := l.LoadFile("/nonexistent/config.yaml")
	if err == nil {
		t.Error("LoadFile() should return error for nonexistent file")
	}
}

func TestLoader_LoadFile_Empty(t *testing.T) {
	l := NewLoader()
	// Empty path should not error
	if err := l.LoadFile(""); err != nil {
		t.Errorf("LoadFile(\"\") should not error, got: %v", err)
	}
}

func TestLoader_LoadEnv(t *testing.T) {
	// Set environment variables
	t.Setenv("FEATHERSERVE_SERVER_HTTP_ADDRESS", "127.0.0.1:8080")
	t.Setenv("FEATHERSERVE_SERVER_HTTP_ENABLED", "true")

	l := NewLoader()
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	var cfg testConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.Server.HTTP.Address != "127.0.0.1:8080" {
		t.Errorf("server.http.address = %q, want %q", cfg.Server.HTTP.Address, "127.0.0.1:8080")
	}
}

func TestLoader_LoadEnv_IgnoresOtherPrefixes(t *testing.T) {
	t.Setenv("MYAPP_STATIC_ROOT", "/elsewhere")

	l := NewLoader()
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	for _, k := range l.Keys() {
		if k == "static.root" || k == "myapp.static.root" {
			t.Errorf("Keys() contains %q from a foreign prefix", k)
		}
	}
}

func TestLoader_LoadMap(t *testing.T) {
	l := NewLoader()

	data := map[string]any{
		"server.http.address": "localhost:3000",
		"server.http.enabled": true,
	}

	if err := l.LoadMap(data); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	var cfg testConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.Server.HTTP.Address != "localhost:3000" {
		t.Errorf("server.http.address = %q, want %q", cfg.Server.HTTP.Address, "localhost:3000")
	}
	if !cfg.Server.HTTP.Enabled {
		t.Error("server.http.enabled should be true")
	}
}

func TestLoader_Load_Priority(t *testing.T) {
	// Create temp config file with low priority value
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
server:
  http:
    address: "from-file:5080"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	// Set environment variable with high priority value
	t.Setenv("FEATHERSERVE_SERVER_HTTP_ADDRESS", "from-env:8080")

	l := NewLoader(WithConfigFile(configPath))

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Environment should override file
	if cfg.Server.HTTP.Address != "from-env:8080" {
		t.Errorf("Address = %q, want %q (env should override file)",
			cfg.Server.HTTP.Address, "from-env:8080")
	}
}

func TestLoader_Unmarshal(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
server:
  http:
    address: "0.0.0.0:5080"
    enabled: true
static:
  root: "/srv/www"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	l := NewLoader(WithConfigFile(configPath))

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTP.Address != "0.0.0.0:5080" {
		t.Errorf("Address = %q, want %q", cfg.Server.HTTP.Address, "0.0.0.0:5080")
	}
	if !cfg.Server.HTTP.Enabled {
		t.Error("Enabled should be true")
	}
	if cfg.Static.Root != "/srv/www" {
		t.Errorf("Root = %q, want %q", cfg.Static.Root, "/srv/www")
	}
}

func TestLoader_Keys(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{
		"static.root":         "/srv/www",
		"server.http.address": ":8080",
	}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	keys := l.Keys()
	if len(keys) != 2 {
		t.Fatalf("Keys() = %v, want 2 keys", keys)
	}
	if keys[0] != "server.http.address" || keys[1] != "static.root" {
		t.Errorf("Keys() = %v, want sorted keys", keys)
	}
}

func TestLoader_LoadMap_Nested(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{"server.http.address": "flag:1"}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	var cfg testConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.Server.HTTP.Address != "flag:1" {
		t.Errorf("Address = %q, want %q", cfg.Server.HTTP.Address, "flag:1")
	}
}

func TestLoader_Load_OverridesWin(t *testing.T) {
	t.Setenv("FEATHERSERVE_SERVER_HTTP_ADDRESS", "from-env:8080")

	l := NewLoader(WithOverrides(map[string]any{
		"server.http.address": "from-flag:9090",
	}))

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.HTTP.Address != "from-flag:9090" {
		t.Errorf("Address = %q, flags should override env", cfg.Server.HTTP.Address)
	}
}

func TestLoader_Load_KeepsDefaults(t *testing.T) {
	var cfg testConfig
	cfg.Server.HTTP.Address = "default:80"
	cfg.Static.Root = "pages"

	l := NewLoader(WithOverrides(map[string]any{"static.root": "/srv/www"}))
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.HTTP.Address != "default:80" {
		t.Errorf("Address = %q, default should survive", cfg.Server.HTTP.Address)
	}
	if cfg.Static.Root != "/srv/www" {
		t.Errorf("Root = %q, want /srv/www", cfg.Static.Root)
	}
}
