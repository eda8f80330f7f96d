package collector

import (
	"html"
	"regexp"
	"strings"
	"time"

	"BuildPulse/internal/model"
)

// The scanner is a best-effort regex scan over feed text, not a conformant
// RSS/Atom parser. It lives behind FeedFetcher so a real parser can replace
// it without touching the aggregator contract.

var (
	itemBlockRe = regexp.MustCompile(`(?is)<(?:item|entry)[\s>].*?</(?:item|entry)>`)
	titleRe     = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	linkHrefRe  = regexp.MustCompile(`(?is)<link[^>]*href="([^"]+)"`)
	linkTextRe  = regexp.MustCompile(`(?is)<link[^>]*>([^<]+)</link>`)
	dateRe      = regexp.MustCompile(`(?is)<(?:pubDate|published|updated|dc:date)[^>]*>(.*?)</`)
)

var feedDateFormats = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"02 Jan 2006 15:04:05 -0700",
	"2006-01-02",
}

// scanItems extracts feed items from raw feed text. A block missing a
// field yields that field as its zero value; the item itself is kept.
func scanItems(body string) []model.FeedItem {
	blocks := itemBlockRe.FindAllString(body, -1)
	items := make([]model.FeedItem, 0, len(blocks))
	for _, block := range blocks {
		var item model.FeedItem
		if m := titleRe.FindStringSubmatch(block); m != nil {
			item.Title = cleanText(m[1])
		}
		if m := linkHrefRe.FindStringSubmatch(block); m != nil {
			item.Link = cleanText(m[1])
		} else if m := linkTextRe.FindStringSubmatch(block); m != nil {
			item.Link = cleanText(m[1])
		}
		if m := dateRe.FindStringSubmatch(block); m != nil {
			item.PublishedAt = parseFeedDate(cleanText(m[1]))
		}
		items = append(items, item)
	}
	return items
}

// parseFeedDate tries the common feed date formats, returning nil when
// none match. Undated items sort after dated ones.
func parseFeedDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range feedDateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func cleanText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "<![CDATA[")
	s = strings.TrimSuffix(s, "]]>")
	return strings.TrimSpace(html.UnescapeString(s))
}
