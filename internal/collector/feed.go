package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/DeejuSivadas/Malayalam-News/internal/dateparse"
	"github.com/DeejuSivadas/Malayalam-News/internal/fetch"
	"github.com/DeejuSivadas/Malayalam-News/internal/source"
	"github.com/DeejuSivadas/Malayalam-News/internal/textutil"
)

// FeedFetcher pulls one syndication feed and maps its entries to Items.
// A malformed document fails the whole source; no partial recovery.
type FeedFetcher struct {
	cfg    source.Config
	client *fetch.Client
	parser *gofeed.Parser
}

func NewFeedFetcher(cfg source.Config, client *fetch.Client) *FeedFetcher {
	return &FeedFetcher{cfg: cfg, client: client, parser: gofeed.NewParser()}
}

func (f *FeedFetcher) Name() string { return f.cfg.Name }

func (f *FeedFetcher) Fetch() ([]Item, error) {
	log.Printf("fetch feed %s...", f.cfg.Name)

	body, err := f.client.Get(context.Background(), f.cfg.URL, fetch.KindFeed)
	if err != nil {
		return nil, err
	}

	feed, err := f.parser.ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", f.cfg.Name, err)
	}

	now := time.Now()
	items := make([]Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if len(items) >= f.cfg.MaxItems {
			break
		}

		title := textutil.NormalizeWhitespace(entry.Title)
		if title == "" || !textutil.ContainsMalayalam(title) {
			continue
		}
		if textutil.ContainsAnyKeyword(title, f.cfg.TitleExcludeKeywords) {
			continue
		}

		var published *time.Time
		switch {
		case entry.PublishedParsed != nil:
			published = entry.PublishedParsed
		case entry.UpdatedParsed != nil:
			published = entry.UpdatedParsed
		default:
			if t, ok := dateparse.Parse(entry.Published); ok {
				published = &t
			}
		}

		summary := entry.Description
		if summary == "" {
			summary = entry.Content
		}
		summary = textutil.StripTags(summary)
		if len([]rune(summary)) < 10 || summary == title {
			summary = ""
		} else {
			summary = textutil.FirstSentence(summary)
		}

		items = append(items, Item{
			Title:        title,
			Link:         entry.Link,
			Source:       f.cfg.Name,
			Summary:      summary,
			PublishedAt:  published,
			DiscoveredAt: now,
		})
	}
	return items, nil
}
