package aggregator

import (
	"context"
	"log"
	"sync"

	"github.com/DeejuSivadas/Malayalam-News/internal/collector"
	"github.com/DeejuSivadas/Malayalam-News/internal/dateparse"
	"github.com/DeejuSivadas/Malayalam-News/internal/fetch"
)

// enrichDates fetches the article page of items still missing a publish date
// and applies the page-metadata resolvers, writing the result back onto the
// item. Best-effort only: per-item failures are swallowed and never fail the
// pass. The fixed worker count and total-fetch cap bound latency and
// outbound volume no matter how many items lack dates.
func (a *Aggregator) enrichDates(items []collector.Item) {
	if a.client == nil || a.opts.EnrichWorkers <= 0 || a.opts.EnrichMax <= 0 {
		return
	}

	var pending []int
	for i := range items {
		if items[i].PublishedAt == nil && items[i].Link != "" {
			pending = append(pending, i)
			if len(pending) >= a.opts.EnrichMax {
				break
			}
		}
	}
	if len(pending) == 0 {
		return
	}

	queue := make(chan int, len(pending))
	for _, i := range pending {
		queue <- i
	}
	close(queue)

	workers := a.opts.EnrichWorkers
	if workers > len(pending) {
		workers = len(pending)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				body, err := a.client.Get(context.Background(), items[i].Link, fetch.KindHTML)
				if err != nil {
					continue
				}
				if t, ok := dateparse.FromPage(body); ok {
					items[i].PublishedAt = &t
				}
			}
		}()
	}
	wg.Wait()

	resolved := 0
	for _, i := range pending {
		if items[i].PublishedAt != nil {
			resolved++
		}
	}
	log.Printf("enrichment: resolved %d/%d article dates", resolved, len(pending))
}
