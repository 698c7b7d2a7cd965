package collector

import (
	"time"

	"github.com/DeejuSivadas/Malayalam-News/internal/fetch"
	"github.com/DeejuSivadas/Malayalam-News/internal/source"
)

// Item is the unified headline record, before or after date enrichment.
// PublishedAt stays nil until some resolver produces a date.
type Item struct {
	Title        string     `json:"title"`
	Link         string     `json:"link"`
	Source       string     `json:"source"`
	Summary      string     `json:"summary,omitempty"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
	DiscoveredAt time.Time  `json:"discoveredAt"`
}

// Fetcher abstracts one configured source. Implementations own their network
// timeouts; the aggregator adds an outer bound on top.
type Fetcher interface {
	Name() string
	Fetch() ([]Item, error)
}

// BuildFetchers maps source descriptors to their fetcher implementation.
func BuildFetchers(sources []source.Config, client *fetch.Client) []Fetcher {
	out := make([]Fetcher, 0, len(sources))
	for _, cfg := range sources {
		switch cfg.Kind {
		case source.KindHTML:
			out = append(out, NewPageFetcher(cfg, client.Timeout()))
		default:
			out = append(out, NewFeedFetcher(cfg, client))
		}
	}
	return out
}
