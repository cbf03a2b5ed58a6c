package assets

import "sync/atomic"

// Holder publishes the current cache snapshot to concurrent readers.
//
// A published Cache is never modified. Rebuilds construct a complete new
// Cache and swap the pointer, so a reader that called Load keeps a
// consistent snapshot for as long as it holds it.
type Holder struct {
	p atomic.Pointer[Cache]
}

// NewHolder returns a holder publishing c.
func NewHolder(c *Cache) *Holder {
	if c == nil {
		c = Empty()
	}
	h := &Holder{}
	h.p.Store(c)
	return h
}

// Load returns the current snapshot.
func (h *Holder) Load() *Cache {
	return h.p.Load()
}

// Swap publishes c and returns the previous snapshot.
func (h *Holder) Swap(c *Cache) *Cache {
	return h.p.Swap(c)
}

// Diff counts routes added, removed and changed (by content hash)
// between two snapshots.
func Diff(prev, next *Cache) (added, removed, changed int) {
	for p, e := range next.entries {
		old, ok := prev.entries[p]
		switch {
		case !ok:
			added++
		case old.Hash != e.Hash || old.ContentType != e.ContentType:
			changed++
		}
	}
	for p := range prev.entries {
		if _, ok := next.entries[p]; !ok {
			removed++
		}
	}
	return added, removed, changed
}
