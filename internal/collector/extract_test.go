package collector

import (
	"strings"
	"testing"
	"time"

	"github.com/DeejuSivadas/Malayalam-News/internal/source"
)

const testHeadline = "മുഖ്യമന്ത്രി പുതിയ വിദ്യാഭ്യാസ പദ്ധതി പ്രഖ്യാപിച്ചു"

func testConfig() source.Config {
	return source.Config{Name: "test", MaxItems: 10}
}

func extract(t *testing.T, html string, cfg source.Config) []Item {
	t.Helper()
	items, err := ExtractHeadlines("https://x.test/news/", html, cfg, time.Now())
	if err != nil {
		t.Fatalf("ExtractHeadlines error: %v", err)
	}
	return items
}

func TestExtractDeduplicatesByURL(t *testing.T) {
	html := `<body>
		<a href="/news/story-1">` + testHeadline + `</a>
		<a href="https://x.test/news/story-1">` + testHeadline + `</a>
	</body>`
	items := extract(t, html, testConfig())
	if len(items) != 1 {
		t.Fatalf("expected 1 item after URL dedup, got %d", len(items))
	}
	if items[0].Link != "https://x.test/news/story-1" {
		t.Fatalf("unexpected link %q", items[0].Link)
	}
}

func TestExtractTitleFallbackChain(t *testing.T) {
	html := `<body>
		<a href="/a" title="` + testHeadline + `"></a>
		<a href="/b" aria-label="` + testHeadline + `"></a>
		<a href="/c"><img src="x.jpg" alt="` + testHeadline + `"></a>
	</body>`
	items := extract(t, html, testConfig())
	if len(items) != 3 {
		t.Fatalf("expected 3 items from attribute fallbacks, got %d", len(items))
	}
	for _, it := range items {
		if it.Title != testHeadline {
			t.Fatalf("unexpected title %q", it.Title)
		}
	}
}

func TestExtractRejectsUnusableTitles(t *testing.T) {
	html := `<body>
		<a href="/short">വാർത്ത</a>
		<a href="/english">This is an english headline only</a>
		<a href="/generic">` + strings.Repeat("അ", 200) + `</a>
		<a href="/two-words">തിരുവനന്തപുരം ജില്ലയിൽ</a>
		<a href="/ok">` + testHeadline + `</a>
	</body>`
	items := extract(t, html, testConfig())
	if len(items) != 1 {
		t.Fatalf("expected only the valid headline, got %d items", len(items))
	}
	if items[0].Link != "https://x.test/ok" {
		t.Fatalf("unexpected survivor %q", items[0].Link)
	}
}

func TestExtractIncludeExcludePatterns(t *testing.T) {
	cfg := testConfig()
	cfg.IncludePatterns = []string{`x\.test/news/`}
	cfg.ExcludePatterns = []string{`/video/`}
	html := `<body>
		<a href="/news/good">` + testHeadline + `</a>
		<a href="/news/video/clip">` + testHeadline + `</a>
		<a href="/sports/other">` + testHeadline + `</a>
	</body>`
	items := extract(t, html, cfg)
	if len(items) != 1 {
		t.Fatalf("expected 1 item after pattern filtering, got %d", len(items))
	}
	if items[0].Link != "https://x.test/news/good" {
		t.Fatalf("unexpected link %q", items[0].Link)
	}
}

func TestExtractTitleExcludeKeywords(t *testing.T) {
	cfg := testConfig()
	cfg.TitleExcludeKeywords = []string{"വീഡിയോ"}
	html := `<body>
		<a href="/a">പുതിയ വീഡിയോ ഇവിടെ കാണാം ഇപ്പോൾ</a>
		<a href="/b">` + testHeadline + `</a>
	</body>`
	items := extract(t, html, cfg)
	if len(items) != 1 || items[0].Link != "https://x.test/b" {
		t.Fatalf("keyword exclusion failed: %+v", items)
	}
}

func TestExtractSummaryFromContainer(t *testing.T) {
	html := `<body><article>
		<a href="/a">` + testHeadline + `</a>
		<p>സർക്കാരിന്റെ പുതിയ പദ്ധതി അടുത്ത മാസം ആരംഭിക്കും. കൂടുതൽ വിവരങ്ങൾ പിന്നീട്.</p>
	</article></body>`
	items := extract(t, html, testConfig())
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	want := "സർക്കാരിന്റെ പുതിയ പദ്ധതി അടുത്ത മാസം ആരംഭിക്കും."
	if items[0].Summary != want {
		t.Fatalf("summary = %q, want first sentence %q", items[0].Summary, want)
	}
}

func TestExtractSummaryDiscardsTitleEcho(t *testing.T) {
	html := `<body><li>
		<a href="/a">` + testHeadline + `</a>
		<p>` + testHeadline + `</p>
	</li></body>`
	items := extract(t, html, testConfig())
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Summary != "" {
		t.Fatalf("summary identical to title must be discarded, got %q", items[0].Summary)
	}
}

func TestExtractDateFromTimeElement(t *testing.T) {
	html := `<body><article>
		<a href="/a">` + testHeadline + `</a>
		<time datetime="2024-03-07T06:00:00Z"></time>
	</article></body>`
	items := extract(t, html, testConfig())
	if len(items) != 1 || items[0].PublishedAt == nil {
		t.Fatalf("expected dated item, got %+v", items)
	}
	if items[0].PublishedAt.Day() != 7 {
		t.Fatalf("unexpected date %v", items[0].PublishedAt)
	}
}

func TestExtractDateFromContainerText(t *testing.T) {
	html := `<body><li>
		<a href="/a">` + testHeadline + `</a>
		<span>March 7, 2024</span>
	</li></body>`
	items := extract(t, html, testConfig())
	if len(items) != 1 || items[0].PublishedAt == nil {
		t.Fatalf("expected date from container text, got %+v", items)
	}
}

func TestExtractDateFromURLPath(t *testing.T) {
	html := `<body><a href="/news/2024/03/07/story">` + testHeadline + `</a></body>`
	items := extract(t, html, testConfig())
	if len(items) != 1 || items[0].PublishedAt == nil {
		t.Fatalf("expected date from URL path, got %+v", items)
	}
	if !items[0].PublishedAt.Equal(time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", items[0].PublishedAt)
	}
}

func TestExtractHonorsMaxItems(t *testing.T) {
	cfg := testConfig()
	cfg.MaxItems = 2
	html := `<body>
		<a href="/a">` + testHeadline + `</a>
		<a href="/b">` + testHeadline + `</a>
		<a href="/c">` + testHeadline + `</a>
	</body>`
	items := extract(t, html, cfg)
	if len(items) != 2 {
		t.Fatalf("expected maxItems cap of 2, got %d", len(items))
	}
}
