package collector

import (
	"fmt"
	"log"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/DeejuSivadas/Malayalam-News/internal/fetch"
	"github.com/DeejuSivadas/Malayalam-News/internal/source"
)

// PageFetcher scrapes a site that publishes no feed: it downloads the page
// with an explicit request timeout and runs the heuristic anchor extraction
// over the raw body.
type PageFetcher struct {
	cfg     source.Config
	timeout time.Duration
}

func NewPageFetcher(cfg source.Config, timeout time.Duration) *PageFetcher {
	return &PageFetcher{cfg: cfg, timeout: timeout}
}

func (p *PageFetcher) Name() string { return p.cfg.Name }

func (p *PageFetcher) Fetch() ([]Item, error) {
	log.Printf("fetch page %s...", p.cfg.Name)

	c := colly.NewCollector(colly.UserAgent(fetch.UserAgent))
	c.SetRequestTimeout(p.timeout)

	var (
		body    []byte
		pageURL string
	)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml")
	})
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
		pageURL = r.Request.URL.String()
	})

	if err := c.Visit(p.cfg.URL); err != nil {
		return nil, fmt.Errorf("visit %s: %w", p.cfg.URL, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("visit %s: empty body", p.cfg.URL)
	}

	return ExtractHeadlines(pageURL, string(body), p.cfg, time.Now())
}
