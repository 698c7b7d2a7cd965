package collector

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/DeejuSivadas/Malayalam-News/internal/dateparse"
	"github.com/DeejuSivadas/Malayalam-News/internal/source"
	"github.com/DeejuSivadas/Malayalam-News/internal/textutil"
)

const (
	titleMinRunes   = 15
	titleMaxRunes   = 180
	summaryMinRunes = 10
)

// ExtractHeadlines scans every anchor of a raw HTML document in order and
// applies the source's extraction rules. Heuristic by design: unrelated sites
// share no markup, so each anchor is judged independently and the output is
// capped so one noisy source cannot dominate the aggregate.
func ExtractHeadlines(baseURL, htmlBody string, cfg source.Config, now time.Time) ([]Item, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return nil, fmt.Errorf("parse html %s: %w", cfg.Name, err)
	}

	items := make([]Item, 0, cfg.MaxItems)
	seen := make(map[string]struct{})

	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		abs := textutil.ToAbsoluteURL(href, baseURL)
		if abs == "" {
			return true
		}

		if len(cfg.IncludePatterns) > 0 && !textutil.MatchesAnyPattern(abs, cfg.IncludePatterns) {
			return true
		}
		if textutil.MatchesAnyPattern(abs, cfg.ExcludePatterns) {
			return true
		}

		// first-seen wins, keyed by resolved URL only
		if _, ok := seen[abs]; ok {
			return true
		}

		title := anchorTitle(a)
		if title == "" {
			return true
		}
		if n := len([]rune(title)); n < titleMinRunes || n > titleMaxRunes {
			return true
		}
		if !textutil.ContainsMalayalam(title) || !textutil.IsSpecificHeadline(title) {
			return true
		}
		if textutil.ContainsAnyKeyword(title, cfg.TitleExcludeKeywords) {
			return true
		}

		container := a.Closest("article, li, section, div")

		items = append(items, Item{
			Title:        title,
			Link:         abs,
			Source:       cfg.Name,
			Summary:      containerSummary(container, title),
			PublishedAt:  candidateDate(container, abs),
			DiscoveredAt: now,
		})
		seen[abs] = struct{}{}

		return len(items) < cfg.MaxItems
	})

	return items, nil
}

// anchorTitle derives a headline from an anchor: visible text, then the title
// attribute, then aria-label, then the alt text of a contained image.
func anchorTitle(a *goquery.Selection) string {
	if t := textutil.NormalizeWhitespace(a.Text()); t != "" {
		return t
	}
	if t := textutil.NormalizeWhitespace(a.AttrOr("title", "")); t != "" {
		return t
	}
	if t := textutil.NormalizeWhitespace(a.AttrOr("aria-label", "")); t != "" {
		return t
	}
	return textutil.NormalizeWhitespace(a.Find("img").First().AttrOr("alt", ""))
}

// containerSummary takes the first paragraph-like text of the enclosing
// block, discarding it when too short or identical to the title.
func containerSummary(container *goquery.Selection, title string) string {
	if container.Length() == 0 {
		return ""
	}
	text := textutil.NormalizeWhitespace(container.Find("p").First().Text())
	if len([]rune(text)) < summaryMinRunes || text == title {
		return ""
	}
	return textutil.FirstSentence(text)
}

// candidateDate resolves a publish date from the anchor's surroundings:
// a contained time element, then free text of the container, then the URL path.
func candidateDate(container *goquery.Selection, absURL string) *time.Time {
	if container.Length() > 0 {
		timeEl := container.Find("time").First()
		if timeEl.Length() > 0 {
			if v, ok := timeEl.Attr("datetime"); ok {
				if t, ok := dateparse.Parse(v); ok {
					return &t
				}
			}
			if t, ok := dateparse.Parse(timeEl.Text()); ok {
				return &t
			}
		}
		if t, ok := dateparse.FromText(container.Text()); ok {
			return &t
		}
	}
	if t, ok := dateparse.FromURL(absURL); ok {
		return &t
	}
	return nil
}
