package staticserver

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/yndnr/featherserve-go/internal/telemetry/metric"
)

// job is an accepted connection waiting for a worker. ctx carries the
// connection's logger and ID.
type job struct {
	ctx      context.Context
	conn     net.Conn
	ln       *listener
	accepted time.Time
}

// pool runs a fixed number of workers over a bounded queue.
type pool struct {
	queue   chan job
	workers int
	handle  func(job)
	metrics *metric.Registry

	wg sync.WaitGroup
}

func newPool(workers, queueSize int, handle func(job), metrics *metric.Registry) *pool {
	return &pool{
		queue:   make(chan job, queueSize),
		workers: workers,
		handle:  handle,
		metrics: metrics,
	}
}

func (p *pool) start() {
	p.metrics.Workers.Set(float64(p.workers))
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.work()
	}
}

func (p *pool) work() {
	defer p.wg.Done()
	for j := range p.queue {
		p.metrics.QueueDepth.Set(float64(len(p.queue)))
		p.handle(j)
	}
}

// submit enqueues j, waiting up to timeout for space. It reports false
// when the queue stayed full or stop fired first.
func (p *pool) submit(j job, timeout time.Duration, stop <-chan struct{}) bool {
	select {
	case p.queue <- j:
		p.metrics.QueueDepth.Set(float64(len(p.queue)))
		return true
	default:
	}

	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case p.queue <- j:
		p.metrics.QueueDepth.Set(float64(len(p.queue)))
		return true
	case <-t.C:
		return false
	case <-stop:
		return false
	}
}

// close stops intake. Queued jobs are still served. It must only be
// called once every submitter has returned.
func (p *pool) close() {
	close(p.queue)
}

// wait blocks until all workers have exited.
func (p *pool) wait() {
	p.wg.Wait()
	p.metrics.Workers.Set(0)
	p.metrics.QueueDepth.Set(0)
}
