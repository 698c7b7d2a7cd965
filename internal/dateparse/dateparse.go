// Package dateparse turns ambiguous date evidence (free text, URL paths,
// page metadata) into canonical timestamps. Resolvers never error: a miss is
// reported by the bool result and the caller falls back to discovery time.
package dateparse

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var (
	monthNames = `January|February|March|April|May|June|July|August|September|October|November|December`

	reMonthDayYear = regexp.MustCompile(`(?i)\b(` + monthNames + `)\s+(\d{1,2}),?\s+(\d{4})\b`)
	reDayMonthYear = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(` + monthNames + `)\s+(\d{4})\b`)
	reYearMonthDay = regexp.MustCompile(`\b(\d{4})[-/](\d{1,2})[-/](\d{1,2})\b`)

	reURLDate = regexp.MustCompile(`(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)
)

// directLayouts are tried before the free-text patterns when a value looks
// like a machine timestamp (meta tags, datetime attributes, feed dates).
var directLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
}

// FromText scans free text for a date. Patterns are tried in a fixed order
// ("January 2, 2006", then "2 January 2006", then "2006-01-02" / "2006/01/02")
// and the first one that matches and names a valid calendar date wins.
func FromText(s string) (time.Time, bool) {
	if m := reMonthDayYear.FindStringSubmatch(s); m != nil {
		if t, ok := makeDate(m[3], monthNumber(m[1]), m[2]); ok {
			return t, true
		}
	}
	if m := reDayMonthYear.FindStringSubmatch(s); m != nil {
		if t, ok := makeDate(m[3], monthNumber(m[2]), m[1]); ok {
			return t, true
		}
	}
	if m := reYearMonthDay.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[2])
		if t, ok := makeDate(m[1], month, m[3]); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// FromURL extracts a YYYY/MM/DD or YYYY-MM-DD segment from the URL path and
// interprets it as midnight UTC of that date.
func FromURL(rawurl string) (time.Time, bool) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return time.Time{}, false
	}
	m := reURLDate.FindStringSubmatch(u.Path)
	if m == nil {
		return time.Time{}, false
	}
	month, _ := strconv.Atoi(m[2])
	return makeDate(m[1], month, m[3])
}

// Parse tries a value first as a directly parseable timestamp, then as free text.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range directLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return FromText(s)
}

// metaSelectors lists the page-metadata tags that may carry a publish time,
// in resolution order.
var metaSelectors = []string{
	`meta[property="article:published_time"]`,
	`meta[property="og:published_time"]`,
	`meta[name="pubdate"]`,
	`meta[name="publish-date"]`,
	`meta[name="date"]`,
	`meta[itemprop="datePublished"]`,
}

// FromPage resolves a publish time from a fetched article page: known meta
// tags first, then the first <time datetime>, then the first JSON-LD block
// carrying a datePublished/dateCreated field. Malformed JSON-LD blocks are
// skipped, not propagated.
func FromPage(htmlBody string) (time.Time, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return time.Time{}, false
	}

	for _, sel := range metaSelectors {
		if v, ok := doc.Find(sel).First().Attr("content"); ok {
			if t, ok := Parse(v); ok {
				return t, true
			}
		}
	}

	if v, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		if t, ok := Parse(v); ok {
			return t, true
		}
	}

	var found time.Time
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		if v := findDateField(data); v != "" {
			if t, ok := Parse(v); ok {
				found = t
				return false
			}
		}
		return true
	})
	if !found.IsZero() {
		return found, true
	}

	return time.Time{}, false
}

// findDateField walks decoded JSON-LD for a datePublished/dateCreated value.
func findDateField(v any) string {
	switch node := v.(type) {
	case map[string]any:
		for _, key := range []string{"datePublished", "dateCreated"} {
			if s, ok := node[key].(string); ok && s != "" {
				return s
			}
		}
		for _, child := range node {
			if s := findDateField(child); s != "" {
				return s
			}
		}
	case []any:
		for _, child := range node {
			if s := findDateField(child); s != "" {
				return s
			}
		}
	}
	return ""
}

func monthNumber(name string) int {
	switch strings.ToLower(name[:3]) {
	case "jan":
		return 1
	case "feb":
		return 2
	case "mar":
		return 3
	case "apr":
		return 4
	case "may":
		return 5
	case "jun":
		return 6
	case "jul":
		return 7
	case "aug":
		return 8
	case "sep":
		return 9
	case "oct":
		return 10
	case "nov":
		return 11
	case "dec":
		return 12
	}
	return 0
}

// makeDate builds midnight UTC of the given components, rejecting values that
// do not name a real calendar date (e.g. February 30).
func makeDate(yearStr string, month int, dayStr string) (time.Time, bool) {
	year, _ := strconv.Atoi(yearStr)
	day, _ := strconv.Atoi(dayStr)
	if year < 1970 || year > 2100 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
