package httpserver

import (
	"log/slog"
	"net/http"
)

// RouterConfig holds configuration for the admin router.
type RouterConfig struct {
	// Metrics serves GET /metrics. Nil disables the route.
	Metrics http.Handler

	// Ready reports readiness for GET /readyz. Nil means always ready.
	Ready func() bool

	// Info is returned as JSON by GET /version.
	Info any

	// Logger for access and panic logging.
	Logger *slog.Logger

	// AllowList is the IP/CIDR allowlist (empty = no restriction).
	AllowList []string
}

// NewRouter builds the admin handler.
//
// Order: RequestID -> Recover -> NetworkACL -> AccessLog -> route.
func NewRouter(cfg *RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(cfg.Ready))
	if cfg.Info != nil {
		mux.HandleFunc("GET /version", handleVersion(cfg.Info))
	}
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	return Chain(mux,
		RequestID(logger),
		Recover(),
		NetworkACL(&NetworkACLConfig{AllowList: cfg.AllowList, Logger: logger}),
		AccessLog(),
	)
}
