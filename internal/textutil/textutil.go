package textutil

import (
	"net/url"
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeWhitespace collapses runs of whitespace to a single space and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// ContainsMalayalam reports whether any rune falls in the Malayalam Unicode block.
func ContainsMalayalam(s string) bool {
	for _, r := range s {
		if r >= 0x0D00 && r <= 0x0D7F {
			return true
		}
	}
	return false
}

// IsSpecificHeadline filters out navigation labels and short teasers: a real
// headline has at least 12 characters and at least 3 words after normalization.
func IsSpecificHeadline(s string) bool {
	s = NormalizeWhitespace(s)
	if len([]rune(s)) < 12 {
		return false
	}
	return len(strings.Fields(s)) >= 3
}

const firstSentenceMaxRunes = 200

// FirstSentence returns the text up to and including the first sentence
// terminator followed by whitespace. Without a terminator the full text is
// returned when it fits in 200 characters, otherwise the first 200 plus "…".
func FirstSentence(s string) string {
	s = NormalizeWhitespace(s)
	rs := []rune(s)
	for i := 0; i < len(rs)-1; i++ {
		switch rs[i] {
		case '.', '!', '?':
			if rs[i+1] == ' ' {
				return string(rs[:i+1])
			}
		}
	}
	if len(rs) <= firstSentenceMaxRunes {
		return s
	}
	return string(rs[:firstSentenceMaxRunes]) + "…"
}

// ToAbsoluteURL resolves a possibly-relative href against a base URL.
// Returns "" on any malformed input, never an error.
func ToAbsoluteURL(href, base string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	abs := b.ResolveReference(ref)
	if !abs.IsAbs() || abs.Host == "" {
		return ""
	}
	return abs.String()
}

// MatchesAnyPattern reports whether value matches any of the given regex
// patterns, case-insensitively. An empty list never matches; patterns that
// fail to compile are skipped.
func MatchesAnyPattern(value string, patterns []string) bool {
	for _, p := range patterns {
		if p == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			continue
		}
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

// ContainsAnyKeyword reports whether any keyword appears in s, case-insensitively.
func ContainsAnyKeyword(s string, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	lower := strings.ToLower(s)
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" && strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

// StripTags removes HTML tags from a fragment, for feed descriptions that
// embed markup.
func StripTags(s string) string {
	return NormalizeWhitespace(tagRe.ReplaceAllString(s, " "))
}
