package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/featherserve-go/internal/core/service"
	"github.com/yndnr/featherserve-go/internal/infra/buildinfo"
	"github.com/yndnr/featherserve-go/internal/infra/confloader"
	"github.com/yndnr/featherserve-go/internal/infra/shutdown"
	"github.com/yndnr/featherserve-go/internal/infra/tlscert"
	"github.com/yndnr/featherserve-go/internal/server/config"
	"github.com/yndnr/featherserve-go/internal/server/httpserver"
	"github.com/yndnr/featherserve-go/internal/server/staticserver"
	"github.com/yndnr/featherserve-go/internal/storage/assets"
	"github.com/yndnr/featherserve-go/internal/telemetry/logger"
	"github.com/yndnr/featherserve-go/internal/telemetry/metric"
)

const shutdownTimeout = 30 * time.Second

var serveFlagKeys = []overrideFlag{
	{"root", "static.root"},
	{"watch", "static.watch"},
	{"http", "server.http.addr"},
	{"cert", "server.https.cert"},
	{"key", "server.https.key"},
	{"workers", "server.workers"},
	{"rate-limit", "server.ratelimit.rate"},
	{"log-level", "log.level"},
	{"log-format", "log.format"},
}

// ServeCommand returns the serve command.
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "load the site into memory and serve it",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "root", Aliases: []string{"r"}, Usage: "site directory"},
			&cli.BoolFlag{Name: "watch", Usage: "reload the site when files change"},
			&cli.StringFlag{Name: "http", Usage: "plain listener address, empty to disable"},
			&cli.StringFlag{Name: "https", Usage: "enable TLS on this address"},
			&cli.StringFlag{Name: "cert", Usage: "TLS certificate file"},
			&cli.StringFlag{Name: "key", Usage: "TLS private key file"},
			&cli.IntFlag{Name: "workers", Usage: "connection workers, 0 for one per CPU"},
			&cli.Float64Flag{Name: "rate-limit", Usage: "connections per second per client IP, 0 to disable"},
			&cli.StringFlag{Name: "admin", Usage: "enable the metrics and health endpoint on this address"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "log-format", Usage: "json or text"},
		},
		Action: runServe,
	}
}

func serveOverrides(c *cli.Context) map[string]any {
	values := overrides(c, serveFlagKeys)
	if c.IsSet("https") {
		values["server.https.enabled"] = true
		values["server.https.addr"] = c.String("https")
	}
	if c.IsSet("admin") {
		values["admin.enabled"] = true
		values["admin.addr"] = c.String("admin")
	}
	return values
}

func runServe(c *cli.Context) error {
	configFile := c.String("config")
	values := serveOverrides(c)

	cfg, err := loadConfig(configFile, values)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := initLogger(cfg)

	info := buildinfo.Get()
	log.Info("starting featherserve",
		"version", info.Version,
		"commit", info.Commit,
		"config", configFile,
		"root", cfg.Static.Root)

	metrics := metric.NewRegistry()

	holder := assets.NewHolder(assets.Load(cfg.Static.Root, assets.WithLogger(log)))
	stats := holder.Load().Stats()
	log.Info("site loaded",
		"files", stats.Files,
		"routes", stats.Routes,
		"bytes", stats.Bytes,
		"gzip_bytes", stats.GzipBytes)
	metrics.MustRegister(metric.NewCacheCollector(func() metric.CacheStats {
		s := holder.Load().Stats()
		return metric.CacheStats{Files: s.Files, Routes: s.Routes, Bytes: s.Bytes, GzipBytes: s.GzipBytes}
	}))

	certs := tlscert.NewSet(log)
	staticCfg, err := config.ToStaticConfig(cfg, certs)
	if err != nil {
		return err
	}

	srv := staticserver.New(staticCfg, service.NewHandler(holder), log, metrics)
	if err := srv.Bind(); err != nil {
		return err
	}

	var admin *httpserver.Server
	if cfg.Admin.Enabled {
		admin = httpserver.New(cfg.Admin.Addr, httpserver.NewRouter(&httpserver.RouterConfig{
			Metrics:   metrics.Handler(),
			Ready:     srv.Running,
			Info:      info,
			Logger:    log,
			AllowList: cfg.Admin.Allow,
		}), log)
		if err := admin.Listen(); err != nil {
			_ = srv.Shutdown(context.Background())
			return fmt.Errorf("admin listen %s: %w", cfg.Admin.Addr, err)
		}
	}

	sh := shutdown.NewHandler(shutdownTimeout)

	// Hooks run in reverse order of registration.
	sh.OnShutdown(func(ctx context.Context) error {
		log.Info("stopping static server")
		return srv.Shutdown(ctx)
	})

	if certs.Len() > 0 {
		certs.StartAsync()
		sh.OnShutdown(func(context.Context) error {
			certs.Stop()
			return nil
		})
	}

	if cfg.Static.Watch {
		w, err := assets.NewWatcher(cfg.Static.Root, holder,
			assets.WithWatcherLogger(log),
			assets.OnReload(func(*assets.Cache) { metrics.CacheReloads.Inc() }),
		)
		if err != nil {
			log.Warn("site watcher disabled", "error", err)
		} else {
			w.StartAsync()
			sh.OnShutdown(func(context.Context) error {
				w.Stop()
				return nil
			})
		}
	}

	if configFile != "" {
		cw, err := watchLogLevel(configFile, values, log)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			sh.OnShutdown(func(context.Context) error {
				return cw.Stop()
			})
		}
	}

	if admin != nil {
		go func() {
			if err := admin.Serve(); err != nil {
				log.Error("admin endpoint failed", "error", err)
			}
		}()
		sh.OnShutdown(func(ctx context.Context) error {
			log.Info("stopping admin endpoint")
			return admin.Shutdown(ctx)
		})
	}

	waitCtx, stopWaiting := context.WithCancel(context.Background())
	defer stopWaiting()

	var serveErr error
	serveDone := make(chan struct{})
	go func() {
		serveErr = srv.Serve(context.Background())
		close(serveDone)
		stopWaiting()
	}()

	log.Info("featherserve started, press Ctrl+C to stop")
	err = sh.Wait(waitCtx)

	select {
	case <-serveDone:
		err = errors.Join(err, serveErr)
	default:
	}
	if err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("featherserve stopped", "reason", sh.Reason())
	return nil
}

// watchLogLevel re-reads the config file on change and applies its log
// level. Flag overrides still win over the file.
func watchLogLevel(path string, values map[string]any, log *slog.Logger) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, err
	}

	w.OnChange(func(string) {
		cfg, err := loadConfig(path, values)
		if err != nil {
			log.Warn("ignoring invalid config change", "config", path, "error", err)
			return
		}
		if cfg.Log.Level != logger.GetLevel() {
			logger.SetLevel(cfg.Log.Level)
			log.Info("log level changed", "level", logger.GetLevel())
		}
	})
	w.StartAsync()
	return w, nil
}
