package model

import "time"

// Snapshot is one complete aggregation result produced by a single poll
// tick. It is never mutated after publication; each tick builds a new one.
type Snapshot struct {
	News         []FeedItem         `json:"news"`
	Planning     []FeedItem         `json:"planning"`
	PMI          PmiReading         `json:"pmi"`
	Output       []IndicatorPoint   `json:"output"`
	Insolvencies []InsolvencyRecord `json:"insolvencies"`
	Alerts       []Alert            `json:"alerts"`
	TakenAt      time.Time          `json:"taken_at"`
	Generation   uint64             `json:"-"`
}
