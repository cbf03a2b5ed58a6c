package staticserver

import (
	"testing"
	"time"
)

func TestIPLimiter(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := newIPLimiter(1, 2)
	l.now = func() time.Time { return now }

	if !l.allow("10.0.0.1") || !l.allow("10.0.0.1") {
		t.Fatal("burst of 2 not allowed")
	}
	if l.allow("10.0.0.1") {
		t.Error("third immediate connection allowed")
	}
	if !l.allow("10.0.0.2") {
		t.Error("separate client limited by another client's bucket")
	}

	now = now.Add(time.Second)
	if !l.allow("10.0.0.1") {
		t.Error("token not refilled after one second")
	}
}

func TestIPLimiter_Sweep(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := newIPLimiter(10, 10)
	l.now = func() time.Time { return now }

	l.allow("10.0.0.1")
	now = now.Add(2 * time.Minute)
	l.allow("10.0.0.2")
	now = now.Add(2 * time.Minute)

	if removed := l.sweep(3 * time.Minute); removed != 1 {
		t.Errorf("sweep removed %d, want 1", removed)
	}
	if got := l.size(); got != 1 {
		t.Fatalf("size() = %d after sweep, want 1", got)
	}
	if _, existed := l.clients.GetOrCompute("10.0.0.2", func() *client { return nil }); !existed {
		t.Error("recent client was swept")
	}
}

func TestIPLimiter_RunReportsSize(t *testing.T) {
	l := newIPLimiter(10, 10)
	l.every = 10 * time.Millisecond
	l.allow("10.0.0.1")
	l.allow("10.0.0.2")

	stop := make(chan struct{})
	sizes := make(chan int, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		l.run(stop, func(n int) {
			select {
			case sizes <- n:
			default:
			}
		})
	}()

	select {
	case n := <-sizes:
		if n != 2 {
			t.Errorf("reported size = %d, want 2", n)
		}
	case <-time.After(2 * time.Second):
		t.Error("run never reported a size")
	}
	close(stop)
	<-done
}
