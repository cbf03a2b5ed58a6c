package staticserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yndnr/featherserve-go/internal/core/domain"
	"github.com/yndnr/featherserve-go/internal/core/service"
	"github.com/yndnr/featherserve-go/internal/telemetry/logger"
	"github.com/yndnr/featherserve-go/internal/telemetry/metric"
)

// Server errors.
var (
	ErrNoBinds       = errors.New("staticserver: no listen addresses configured")
	ErrServerRunning = errors.New("staticserver: already serving")
	ErrServerClosed  = errors.New("staticserver: server closed")
)

const (
	minAcceptBackoff = 5 * time.Millisecond
	maxAcceptBackoff = time.Second
)

// Handler turns a parsed request into a response.
// *service.Handler satisfies it.
type Handler interface {
	Handle(req domain.Request) (domain.Response, service.Resolution)
}

// Server is the connection dispatcher.
type Server struct {
	cfg     Config
	handler Handler
	logger  *slog.Logger
	metrics *metric.Registry
	limiter *ipLimiter
	pool    *pool

	mu        sync.Mutex
	listeners []*listener

	started   atomic.Bool
	running   atomic.Bool
	closing   chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

// New creates a server. Nothing is bound until Bind or Serve is called.
func New(cfg Config, handler Handler, logger *slog.Logger, metrics *metric.Registry) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = metric.Global()
	}
	cfg = cfg.withDefaults()

	s := &Server{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		metrics: metrics,
		closing: make(chan struct{}),
		done:    make(chan struct{}),
	}
	s.pool = newPool(cfg.Workers, cfg.QueueSize, s.serveConn, metrics)
	if cfg.RateLimit > 0 {
		s.limiter = newIPLimiter(cfg.RateLimit, cfg.RateBurst)
	}
	return s
}

// Bind opens every configured endpoint. On failure any endpoint already
// opened is closed again and the error names the failing address.
func (s *Server) Bind() error {
	if len(s.cfg.Binds) == 0 {
		return ErrNoBinds
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.listeners) > 0 {
		return nil
	}

	listeners := make([]*listener, 0, len(s.cfg.Binds))
	for _, b := range s.cfg.Binds {
		l, err := listen(b)
		if err != nil {
			for _, opened := range listeners {
				_ = opened.close()
			}
			return fmt.Errorf("bind %s: %w", b.Addr, err)
		}
		listeners = append(listeners, l)
	}
	s.listeners = listeners
	return nil
}

// Addrs returns the bound addresses in configuration order.
func (s *Server) Addrs() []net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	addrs := make([]net.Addr, len(s.listeners))
	for i, l := range s.listeners {
		addrs[i] = l.ln.Addr()
	}
	return addrs
}

// Running reports whether Serve is accepting connections.
func (s *Server) Running() bool {
	return s.running.Load()
}

// Serve runs the accept loops and the worker pool until ctx is cancelled
// or Shutdown is called. Connections already queued are served before
// Serve returns.
func (s *Server) Serve(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrServerRunning
	}
	defer close(s.done)

	select {
	case <-s.closing:
		return ErrServerClosed
	default:
	}

	if err := s.Bind(); err != nil {
		return err
	}

	s.running.Store(true)
	defer s.running.Store(false)

	s.pool.start()
	if s.limiter != nil {
		go s.limiter.run(s.closing, func(n int) {
			s.metrics.RateLimitClients.Set(float64(n))
		})
	}

	s.mu.Lock()
	listeners := s.listeners
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	for _, l := range listeners {
		s.logger.Info("listening", "address", l.addr, "scheme", l.scheme())
		g.Go(func() error {
			return s.acceptLoop(gctx, l)
		})
	}
	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-s.closing:
		}
		return s.closeListeners()
	})

	err := g.Wait()
	s.signalClose()

	s.pool.close()
	s.pool.wait()
	s.logger.Info("static server stopped")
	return err
}

// Shutdown stops accepting, lets workers finish queued connections and
// waits for Serve to return or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.signalClose()
	err := s.closeListeners()

	if !s.started.Load() {
		return err
	}
	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return err
}

func (s *Server) signalClose() {
	s.closeOnce.Do(func() {
		close(s.closing)
	})
}

func (s *Server) closeListeners() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	for _, l := range s.listeners {
		if err := l.close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, fmt.Errorf("close %s: %w", l.addr, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Server) isClosing() bool {
	select {
	case <-s.closing:
		return true
	default:
		return false
	}
}

// acceptLoop runs until the listener is closed. Transient accept errors
// are retried with capped exponential backoff.
func (s *Server) acceptLoop(ctx context.Context, l *listener) error {
	var delay time.Duration
	accepted := s.metrics.ConnectionsAccepted.WithLabelValues(l.addr)

	// Queued connections outlive ctx during drain, so only its values
	// are passed on.
	base := logger.WithLogger(context.WithoutCancel(ctx), s.logger.With("listener", l.addr))

	for {
		c, err := l.ln.Accept()
		if err != nil {
			if s.isClosing() || errors.Is(err, net.ErrClosed) {
				return nil
			}

			delay = nextBackoff(delay)
			s.metrics.AcceptErrors.WithLabelValues(l.addr).Inc()
			s.logger.Warn("accept failed", "address", l.addr, "error", err, "retry_in", delay)

			t := time.NewTimer(delay)
			select {
			case <-t.C:
			case <-s.closing:
				t.Stop()
				return nil
			case <-ctx.Done():
				t.Stop()
				return nil
			}
			continue
		}
		delay = 0
		accepted.Inc()

		if s.limiter != nil && !s.limiter.allow(remoteIP(c)) {
			s.metrics.RecordReject(metric.RejectRateLimited)
			_ = c.Close()
			continue
		}

		j := job{
			ctx:      logger.WithConnID(base, logger.NewConnID()),
			conn:     c,
			ln:       l,
			accepted: time.Now(),
		}
		if !s.pool.submit(j, s.cfg.SubmitTimeout, s.closing) {
			reason := metric.RejectQueueFull
			if s.isClosing() {
				reason = metric.RejectShutdown
			}
			s.metrics.RecordReject(reason)
			logger.L(j.ctx).Debug("connection rejected", "remote", c.RemoteAddr().String(), "reason", reason)
			_ = c.Close()
		}
	}
}

func nextBackoff(d time.Duration) time.Duration {
	if d == 0 {
		return minAcceptBackoff
	}
	return min(d*2, maxAcceptBackoff)
}

func remoteIP(c net.Conn) string {
	if a, ok := c.RemoteAddr().(*net.TCPAddr); ok {
		return a.IP.String()
	}
	host, _, err := net.SplitHostPort(c.RemoteAddr().String())
	if err != nil {
		return c.RemoteAddr().String()
	}
	return host
}
