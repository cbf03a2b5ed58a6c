package command

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/featherserve-go/internal/infra/confloader"
	"github.com/yndnr/featherserve-go/internal/server/config"
	"github.com/yndnr/featherserve-go/internal/telemetry/logger"
)

// overrideFlag maps a command flag onto a configuration key.
type overrideFlag struct {
	flag string
	key  string
}

// overrides collects the flags the user actually set.
func overrides(c *cli.Context, mapping []overrideFlag) map[string]any {
	values := make(map[string]any)
	for _, m := range mapping {
		if c.IsSet(m.flag) {
			values[m.key] = c.Value(m.flag)
		}
	}
	return values
}

// loadConfig loads defaults, the config file, environment and flag
// overrides, in that order, then validates the result.
func loadConfig(configFile string, values map[string]any) (*config.ServerConfig, error) {
	cfg, _, err := loadConfigFrom(configFile, values)
	return cfg, err
}

// loadConfigFrom is loadConfig that also returns the loader, so callers
// can report where the settings came from.
func loadConfigFrom(configFile string, values map[string]any) (*config.ServerConfig, *confloader.Loader, error) {
	cfg := config.Default()

	opts := []confloader.Option{confloader.WithOverrides(values)}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	l := confloader.NewLoader(opts...)
	if err := l.Load(cfg); err != nil {
		return nil, nil, err
	}
	if err := config.Verify(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, l, nil
}

// describeSource summarizes a loader for reports, e.g.
// "file site.yaml, 4 keys set".
func describeSource(l *confloader.Loader) string {
	src := "defaults only"
	if p := l.FilePath(); p != "" {
		src = "file " + p
	}
	return fmt.Sprintf("%s, %d keys set", src, len(l.Keys()))
}

// initLogger creates the process logger and installs it as the default.
func initLogger(cfg *config.ServerConfig) *slog.Logger {
	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	logger.SetDefault(log)
	return log
}
