// Package scheduler prewarms the headline cache on a cron spec so the first
// reader after TTL expiry rarely pays full aggregation latency.
package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/DeejuSivadas/Malayalam-News/internal/cache"
)

type Scheduler struct {
	cron *cron.Cron
	gate *cache.Gate
}

func New(spec string, gate *cache.Gate) (*Scheduler, error) {
	c := cron.New()
	s := &Scheduler{cron: c, gate: gate}

	if _, err := c.AddFunc(spec, s.refresh); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	// delay the first pass so startup traffic is not competing with it
	const startupDelay = 10 * time.Second
	time.AfterFunc(startupDelay, func() {
		go s.refresh()
	})
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) refresh() {
	log.Println("scheduled refresh...")
	entry, _, err := s.gate.Get(true)
	if err != nil {
		log.Printf("scheduled refresh error: %v", err)
		return
	}
	log.Printf("scheduled refresh done, %d items", len(entry.Items))
}
