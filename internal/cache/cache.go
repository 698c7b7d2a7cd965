// Package cache owns the single process-wide aggregation result. The entry
// is read-mostly with one writer per pass: a completed pass replaces it with
// a single assignment, so readers always see a complete entry, never a mix.
package cache

import (
	"sync"
	"time"

	"github.com/DeejuSivadas/Malayalam-News/internal/aggregator"
	"github.com/DeejuSivadas/Malayalam-News/internal/collector"
)

// Entry is one complete aggregation result.
type Entry struct {
	FetchedAt time.Time
	Items     []collector.Item
	Stats     []aggregator.SourceResult
}

// RunFunc executes one aggregation pass.
type RunFunc func() (*aggregator.Result, error)

// Gate hides the TTL decision: a request is either served the stored entry
// verbatim or triggers a fresh pass. Concurrent forced refreshes each run
// their own pass; passes are independent and idempotent, so the redundancy
// is accepted rather than de-duplicated.
type Gate struct {
	mu    sync.RWMutex
	entry *Entry

	ttl time.Duration
	run RunFunc
}

func NewGate(ttl time.Duration, run RunFunc) *Gate {
	return &Gate{ttl: ttl, run: run}
}

// Get returns the current entry and whether it came from cache. A non-forced
// call within the TTL is served the stored entry; otherwise a new pass runs
// and atomically replaces it.
func (g *Gate) Get(force bool) (*Entry, bool, error) {
	if !force {
		g.mu.RLock()
		e := g.entry
		g.mu.RUnlock()
		if e != nil && time.Since(e.FetchedAt) < g.ttl {
			return e, true, nil
		}
	}

	res, err := g.run()
	if err != nil {
		return nil, false, err
	}

	e := &Entry{FetchedAt: res.FetchedAt, Items: res.Items, Stats: res.Stats}
	g.mu.Lock()
	g.entry = e
	g.mu.Unlock()
	return e, false, nil
}
