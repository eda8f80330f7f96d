package alert

import (
	"fmt"
	"strings"

	"BuildPulse/internal/model"
	"BuildPulse/internal/settings"
)

// maxKeywordAlerts caps how many flagged news items surface in the alert
// list. Selection is the first flagged items in the already date-sorted
// news list, preserving that order.
const maxKeywordAlerts = 5

// Evaluate derives the alert list for one snapshot and flags matching news
// items in place. It is a pure function of the snapshot contents and the
// configured rules; nothing here is persisted.
func Evaluate(cfg settings.Settings, snap *model.Snapshot) []model.Alert {
	var alerts []model.Alert

	// Strict less-than: a reading exactly at the floor does not fire.
	if snap.PMI.Value < cfg.Thresholds.PMIFloor {
		alerts = append(alerts, model.Alert{
			Kind:    model.AlertPMI,
			Message: fmt.Sprintf("PMI %.1f below floor %.1f", snap.PMI.Value, cfg.Thresholds.PMIFloor),
		})
	}

	if n := len(snap.Output); n > 0 {
		latest := snap.Output[n-1]
		if latest.Value < cfg.Thresholds.OutputFloor {
			alerts = append(alerts, model.Alert{
				Kind:    model.AlertOutput,
				Message: fmt.Sprintf("output %.1f%% (%s) below floor %.1f%%", latest.Value, latest.Period, cfg.Thresholds.OutputFloor),
			})
		}
	}

	capped := 0
	for i := range snap.News {
		item := &snap.News[i]
		kw, hit := matchKeyword(item.Title, cfg.Keywords)
		if !hit {
			continue
		}
		item.AlertHit = true
		if capped < maxKeywordAlerts {
			hitCopy := *item
			alerts = append(alerts, model.Alert{
				Kind:    model.AlertKeyword,
				Message: fmt.Sprintf("news matches %q: %s", kw, item.Title),
				Item:    &hitCopy,
			})
			capped++
		}
	}

	return alerts
}

// matchKeyword reports the first configured keyword contained in the
// lowercased title, if any. Keywords are stored lowercased already.
func matchKeyword(title string, keywords []string) (string, bool) {
	lower := strings.ToLower(title)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}
