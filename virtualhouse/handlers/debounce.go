package handlers

import (
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// Debouncer absorbs double-tapped buttons at the interaction layer before
// they reach the store. It is a UX nicety only; correctness under
// concurrent operations comes from the per-player row locks inside the
// ledger transactions.
type Debouncer struct {
	cache  *lru.Cache
	window time.Duration
}

func NewDebouncer(size int, window time.Duration) *Debouncer {
	cache, _ := lru.New(size)
	return &Debouncer{cache: cache, window: window}
}

// Allow reports whether the user's interaction should proceed. The first
// interaction inside a window wins; repeats are dropped.
func (d *Debouncer) Allow(userID string) bool {
	now := time.Now()
	if v, ok := d.cache.Get(userID); ok {
		if last, ok := v.(time.Time); ok && now.Sub(last) < d.window {
			return false
		}
	}
	d.cache.Add(userID, now)
	return true
}
