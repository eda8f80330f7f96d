package alert

import (
	"fmt"
	"testing"

	"BuildPulse/internal/model"
	"BuildPulse/internal/settings"
)

func baseSettings() settings.Settings {
	return settings.Settings{
		PollingMinutes: 30,
		Keywords:       []string{"administration"},
		Thresholds:     settings.Thresholds{PMIFloor: 50, OutputFloor: -5},
	}
}

func countKind(alerts []model.Alert, kind model.AlertKind) int {
	n := 0
	for _, a := range alerts {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

func TestPMIThresholdIsStrict(t *testing.T) {
	tests := []struct {
		value float64
		fires bool
	}{
		{45.6, true},
		{49.9, true},
		{50.0, false},
		{50.1, false},
	}
	for _, tt := range tests {
		snap := &model.Snapshot{PMI: model.PmiReading{Label: "UK Construction PMI", Value: tt.value}}
		alerts := Evaluate(baseSettings(), snap)
		if fired := countKind(alerts, model.AlertPMI) > 0; fired != tt.fires {
			t.Errorf("PMI %.1f vs floor 50: fired=%v, want %v", tt.value, fired, tt.fires)
		}
	}
}

func TestOutputThresholdUsesLatestPoint(t *testing.T) {
	tests := []struct {
		latest float64
		fires  bool
	}{
		{-4.8, false},
		{-5.0, false},
		{-5.1, true},
	}
	for _, tt := range tests {
		snap := &model.Snapshot{
			PMI: model.PmiReading{Value: 55},
			Output: []model.IndicatorPoint{
				{Period: "2026-05", Value: -9.9}, // earlier points never fire
				{Period: "2026-06", Value: tt.latest},
			},
		}
		alerts := Evaluate(baseSettings(), snap)
		if fired := countKind(alerts, model.AlertOutput) > 0; fired != tt.fires {
			t.Errorf("latest output %.1f vs floor -5: fired=%v, want %v", tt.latest, fired, tt.fires)
		}
	}
}

func TestOutputAlertSkippedForEmptySeries(t *testing.T) {
	snap := &model.Snapshot{PMI: model.PmiReading{Value: 55}}
	if alerts := Evaluate(baseSettings(), snap); countKind(alerts, model.AlertOutput) != 0 {
		t.Error("no output alert expected for an empty series")
	}
}

func TestKeywordFlagging(t *testing.T) {
	snap := &model.Snapshot{
		PMI: model.PmiReading{Value: 55},
		News: []model.FeedItem{
			{Title: "Northern Build Co enters administration"},
			{Title: "Construction starts rise"},
			{Title: "ADMINISTRATION looms for regional contractor"},
		},
	}
	alerts := Evaluate(baseSettings(), snap)

	if !snap.News[0].AlertHit {
		t.Error("item 0 should be flagged")
	}
	if snap.News[1].AlertHit {
		t.Error("item 1 should not be flagged")
	}
	if !snap.News[2].AlertHit {
		t.Error("matching is case-insensitive, item 2 should be flagged")
	}
	if got := countKind(alerts, model.AlertKeyword); got != 2 {
		t.Errorf("expected 2 keyword alerts, got %d", got)
	}
}

func TestKeywordAlertsCappedAtFiveInListOrder(t *testing.T) {
	snap := &model.Snapshot{PMI: model.PmiReading{Value: 55}}
	for i := 0; i < 7; i++ {
		snap.News = append(snap.News, model.FeedItem{
			Title: fmt.Sprintf("Firm %d placed into administration", i),
		})
	}
	alerts := Evaluate(baseSettings(), snap)

	var keyword []model.Alert
	for _, a := range alerts {
		if a.Kind == model.AlertKeyword {
			keyword = append(keyword, a)
		}
	}
	if len(keyword) != 5 {
		t.Fatalf("expected 5 capped alerts, got %d", len(keyword))
	}
	for i, a := range keyword {
		want := fmt.Sprintf("Firm %d placed into administration", i)
		if a.Item == nil || a.Item.Title != want {
			t.Errorf("alert %d: expected first flagged items in list order, got %+v", i, a.Item)
		}
	}
	// All seven items stay flagged; only the alert list is capped.
	for i, it := range snap.News {
		if !it.AlertHit {
			t.Errorf("item %d should be flagged even beyond the cap", i)
		}
	}
}

func TestPlanningItemsAreNotKeywordMatched(t *testing.T) {
	snap := &model.Snapshot{
		PMI:      model.PmiReading{Value: 55},
		Planning: []model.FeedItem{{Title: "Scheme enters administration review"}},
	}
	alerts := Evaluate(baseSettings(), snap)
	if countKind(alerts, model.AlertKeyword) != 0 {
		t.Error("keyword rule applies to news items only")
	}
	if snap.Planning[0].AlertHit {
		t.Error("planning items are never flagged")
	}
}
