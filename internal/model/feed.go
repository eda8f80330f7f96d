package model

import "time"

// FeedItem is one entry extracted from a news or planning feed.
type FeedItem struct {
	Title       string     `json:"title"`
	Link        string     `json:"link,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Source      string     `json:"source"`
	AlertHit    bool       `json:"alert_hit"` // derived each tick, never persisted
}
