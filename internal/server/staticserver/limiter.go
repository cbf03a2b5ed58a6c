package staticserver

import (
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/featherserve-go/pkg/cmap"
)

const (
	// limiterIdle is how long a client may stay quiet before its bucket
	// is dropped.
	limiterIdle = 3 * time.Minute
	// limiterSweep is the interval between idle sweeps.
	limiterSweep = time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// ipLimiter applies a token bucket per client IP.
type ipLimiter struct {
	limit   rate.Limit
	burst   int
	clients *cmap.Map[string, *client]
	now     func() time.Time
	every   time.Duration
}

func newIPLimiter(perSecond float64, burst int) *ipLimiter {
	return &ipLimiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		clients: cmap.New[string, *client](),
		now:     time.Now,
		every:   limiterSweep,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	now := l.now()
	c, _ := l.clients.GetOrCompute(ip, func() *client {
		return &client{limiter: rate.NewLimiter(l.limit, l.burst)}
	})
	c.lastSeen.Store(now.UnixNano())
	return c.limiter.AllowN(now, 1)
}

// sweep drops clients idle for longer than idle and returns how many.
func (l *ipLimiter) sweep(idle time.Duration) int {
	cutoff := l.now().Add(-idle).UnixNano()
	return l.clients.RemoveIf(func(_ string, c *client) bool {
		return c.lastSeen.Load() < cutoff
	})
}

// size returns the number of tracked clients.
func (l *ipLimiter) size() int {
	return l.clients.Count()
}

// run sweeps idle clients until stop is closed, passing the table size
// to report after every sweep.
func (l *ipLimiter) run(stop <-chan struct{}, report func(int)) {
	t := time.NewTicker(l.every)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			l.sweep(limiterIdle)
			report(l.size())
		case <-stop:
			return
		}
	}
}
