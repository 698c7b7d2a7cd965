// Package aggregator runs one full pass across all configured sources:
// parallel fetch+extract with per-source failure isolation, date enrichment,
// and the final sort/recency filter that the API serves.
package aggregator

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/DeejuSivadas/Malayalam-News/internal/collector"
	"github.com/DeejuSivadas/Malayalam-News/internal/dateparse"
	"github.com/DeejuSivadas/Malayalam-News/internal/fetch"
)

const (
	StatusOK    = "ok"
	StatusError = "error"

	// sourceTimeoutSlack bounds a slow parse on top of the network timeout.
	sourceTimeoutSlack = 4 * time.Second
)

// SourceResult is the per-source outcome surfaced as stats.
type SourceResult struct {
	Source string `json:"source"`
	Status string `json:"status"`
	Count  int    `json:"count,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Result is one completed pass.
type Result struct {
	FetchedAt time.Time
	Items     []collector.Item
	Stats     []SourceResult
}

type Options struct {
	RecencyWindow time.Duration
	EnrichWorkers int
	EnrichMax     int
}

type Aggregator struct {
	fetchers []collector.Fetcher
	client   *fetch.Client
	opts     Options
}

// New builds an aggregator over prepared fetchers. The client is reused for
// the per-article enrichment fetches.
func New(fetchers []collector.Fetcher, client *fetch.Client, opts Options) *Aggregator {
	return &Aggregator{fetchers: fetchers, client: client, opts: opts}
}

// Run executes one pass. A failure in one source never aborts or delays the
// others; the pass always waits for every source to settle.
func (a *Aggregator) Run() (*Result, error) {
	started := time.Now()
	log.Printf("aggregation pass: %d sources...", len(a.fetchers))

	type outcome struct {
		items []collector.Item
		err   error
	}
	outcomes := make([]outcome, len(a.fetchers))

	var wg sync.WaitGroup
	for i, f := range a.fetchers {
		wg.Add(1)
		go func(i int, f collector.Fetcher) {
			defer wg.Done()
			items, err := fetchBounded(f, a.client.Timeout()+sourceTimeoutSlack)
			if err != nil {
				log.Printf("fetch %s error: %v", f.Name(), err)
			}
			outcomes[i] = outcome{items: items, err: err}
		}(i, f)
	}
	wg.Wait()

	var merged []collector.Item
	stats := make([]SourceResult, 0, len(a.fetchers))
	for i, f := range a.fetchers {
		if outcomes[i].err != nil {
			stats = append(stats, SourceResult{Source: f.Name(), Status: StatusError, Error: outcomes[i].err.Error()})
			continue
		}
		count := 0
		for _, it := range outcomes[i].items {
			if it.Title == "" {
				continue
			}
			merged = append(merged, it)
			count++
		}
		stats = append(stats, SourceResult{Source: f.Name(), Status: StatusOK, Count: count})
	}

	a.enrichDates(merged)

	// last resort for items enrichment could not resolve
	for i := range merged {
		if merged[i].PublishedAt == nil {
			if t, ok := dateparse.FromURL(merged[i].Link); ok {
				merged[i].PublishedAt = &t
			}
		}
	}

	sortItems(merged)
	merged = filterRecent(merged, time.Now().Add(-a.opts.RecencyWindow))
	// the window filter must not disturb ordering
	sortItems(merged)

	log.Printf("aggregation pass done: %d items in %s", len(merged), time.Since(started).Round(time.Millisecond))
	return &Result{FetchedAt: time.Now(), Items: merged, Stats: stats}, nil
}

// fetchBounded wraps one source fetch with an outer timer so a hung source
// cannot stall the join.
func fetchBounded(f collector.Fetcher, timeout time.Duration) ([]collector.Item, error) {
	type outcome struct {
		items []collector.Item
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		items, err := f.Fetch()
		done <- outcome{items: items, err: err}
	}()

	select {
	case o := <-done:
		return o.items, o.err
	case <-time.After(timeout):
		return nil, fmt.Errorf("source %s: timed out after %s", f.Name(), timeout)
	}
}

// sortItems orders dated items by publish time descending, ranks any dated
// item above any dateless one, and breaks dateless ties by discovery time.
func sortItems(items []collector.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.PublishedAt != nil && b.PublishedAt != nil:
			return a.PublishedAt.After(*b.PublishedAt)
		case a.PublishedAt != nil:
			return true
		case b.PublishedAt != nil:
			return false
		default:
			return a.DiscoveredAt.After(b.DiscoveredAt)
		}
	})
}

// filterRecent keeps items whose resolved timestamp, or discovery time when
// no date was found, falls inside the trailing window.
func filterRecent(items []collector.Item, cutoff time.Time) []collector.Item {
	out := items[:0]
	for _, it := range items {
		ts := it.DiscoveredAt
		if it.PublishedAt != nil {
			ts = *it.PublishedAt
		}
		if ts.After(cutoff) {
			out = append(out, it)
		}
	}
	return out
}
