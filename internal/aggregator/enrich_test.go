package aggregator

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DeejuSivadas/Malayalam-News/internal/collector"
	"github.com/DeejuSivadas/Malayalam-News/internal/fetch"
)

const articlePage = `<html><head>
	<meta property="article:published_time" content="2024-03-07T06:00:00Z">
</head><body></body></html>`

func TestEnrichDatesFillsMissingDates(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(articlePage))
	}))
	t.Cleanup(srv.Close)

	now := time.Now()
	existing := now.Add(-time.Hour)
	items := []collector.Item{
		{Title: "missing", Link: srv.URL + "/a", DiscoveredAt: now},
		{Title: "has-date", Link: srv.URL + "/b", PublishedAt: &existing, DiscoveredAt: now},
		{Title: "no-link", DiscoveredAt: now},
	}

	a := New(nil, fetch.NewClient(3*time.Second), Options{EnrichWorkers: 4, EnrichMax: 10})
	a.enrichDates(items)

	if items[0].PublishedAt == nil || items[0].PublishedAt.Day() != 7 {
		t.Fatalf("missing date was not enriched: %+v", items[0].PublishedAt)
	}
	if !items[1].PublishedAt.Equal(existing) {
		t.Fatalf("existing date must never be overwritten: %v", items[1].PublishedAt)
	}
	if items[2].PublishedAt != nil {
		t.Fatalf("item without link must be skipped")
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("expected exactly 1 article fetch, got %d", got)
	}
}

func TestEnrichDatesHonorsTotalCap(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(articlePage))
	}))
	t.Cleanup(srv.Close)

	now := time.Now()
	items := make([]collector.Item, 5)
	for i := range items {
		items[i] = collector.Item{Title: "t", Link: srv.URL, DiscoveredAt: now}
	}

	a := New(nil, fetch.NewClient(3*time.Second), Options{EnrichWorkers: 2, EnrichMax: 3})
	a.enrichDates(items)

	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Fatalf("expected 3 fetches under the cap, got %d", got)
	}
	if items[4].PublishedAt != nil {
		t.Fatalf("items beyond the cap must stay untouched")
	}
}

func TestEnrichDatesSwallowsPerItemFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	now := time.Now()
	items := []collector.Item{{Title: "t", Link: srv.URL, DiscoveredAt: now}}

	a := New(nil, fetch.NewClient(3*time.Second), Options{EnrichWorkers: 2, EnrichMax: 10})
	a.enrichDates(items) // must not panic or error out

	if items[0].PublishedAt != nil {
		t.Fatalf("failed enrichment must leave the item dateless")
	}
}
