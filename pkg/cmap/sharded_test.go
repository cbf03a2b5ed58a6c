package cmap

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

func TestNewWithShards(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{0, DefaultShardCount},
		{-1, DefaultShardCount},
		{3, DefaultShardCount},
		{1, 1},
		{8, 8},
		{32, 32},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("shards=%d", tt.input), func(t *testing.T) {
			m := NewWithShards[string, int](tt.input)
			if got := len(m.shards); got != tt.expected {
				t.Errorf("NewWithShards(%d) shard count = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGetOrCompute(t *testing.T) {
	m := New[string, *int]()
	calls := 0
	create := func() *int {
		calls++
		v := calls
		return &v
	}

	first, existed := m.GetOrCompute("a", create)
	if existed {
		t.Error("first GetOrCompute reported existing value")
	}
	second, existed := m.GetOrCompute("a", create)
	if !existed {
		t.Error("second GetOrCompute did not report existing value")
	}
	if first != second {
		t.Error("GetOrCompute returned different values for the same key")
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestGetOrComputeConcurrent(t *testing.T) {
	m := New[int, *atomic.Int64]()
	var created atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 100; k++ {
				c, _ := m.GetOrCompute(k, func() *atomic.Int64 {
					created.Add(1)
					return new(atomic.Int64)
				})
				c.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := created.Load(); got != 100 {
		t.Errorf("created = %d, want 100", got)
	}
	for k := 0; k < 100; k++ {
		c, _ := m.GetOrCompute(k, func() *atomic.Int64 { return new(atomic.Int64) })
		if c.Load() != 64 {
			t.Errorf("key %d counter = %d, want 64", k, c.Load())
		}
	}
	if got := m.Count(); got != 100 {
		t.Errorf("Count() = %d, want 100", got)
	}
}

func TestRemoveIf(t *testing.T) {
	m := NewWithShards[int, int](4)
	for i := 0; i < 100; i++ {
		m.GetOrCompute(i, func() int { return i })
	}

	removed := m.RemoveIf(func(_ int, v int) bool { return v%2 == 0 })
	if removed != 50 {
		t.Errorf("RemoveIf removed %d, want 50", removed)
	}
	if got := m.Count(); got != 50 {
		t.Errorf("Count() = %d, want 50", got)
	}
	if n := m.RemoveIf(func(k, _ int) bool { return k%2 == 0 }); n != 0 {
		t.Errorf("%d even keys survived RemoveIf", n)
	}
}

// BenchmarkGetOrCompute benchmarks the per-client lookup pattern under
// parallel load.
func BenchmarkGetOrCompute(b *testing.B) {
	m := New[string, *atomic.Int64]()
	keys := make([]string, 1024)
	for i := range keys {
		keys[i] = fmt.Sprintf("10.0.%d.%d", i/256, i%256)
	}

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			c, _ := m.GetOrCompute(keys[i%len(keys)], func() *atomic.Int64 { return new(atomic.Int64) })
			c.Add(1)
			i++
		}
	})
}
