package settings

import (
	"fmt"
	"net/url"
	"strings"
)

// FeedSource names one configured feed URL.
type FeedSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Sector is a display-only filter label; it does not alter what is fetched.
type Sector struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Thresholds holds the numeric alert floors. Both are strict less-than.
type Thresholds struct {
	PMIFloor    float64 `json:"pmi_floor"`
	OutputFloor float64 `json:"output_floor"`
}

// Endpoints holds the indicator endpoint overrides. An empty string means
// the built-in fixture dataset is used and no request is made.
type Endpoints struct {
	PMI        string `json:"pmi"`
	Output     string `json:"output"`
	Insolvency string `json:"insolvency"`
}

// Settings is the runtime-editable dashboard configuration. It is persisted
// as a single JSON blob and replaced wholesale on every save.
type Settings struct {
	PollingMinutes int          `json:"polling_minutes"`
	ProxyPrefix    string       `json:"proxy_prefix"`
	NewsFeeds      []FeedSource `json:"news_feeds"`
	PlanningFeeds  []FeedSource `json:"planning_feeds"`
	Sectors        []Sector     `json:"sectors"`
	Keywords       []string     `json:"keywords"`
	Thresholds     Thresholds   `json:"thresholds"`
	Endpoints      Endpoints    `json:"endpoints"`
}

// Default returns the built-in configuration used when nothing valid has
// been persisted yet.
func Default() Settings {
	return Settings{
		PollingMinutes: 30,
		NewsFeeds: []FeedSource{
			{Name: "Construction News", URL: "https://www.constructionnews.co.uk/feed/"},
			{Name: "Building", URL: "https://www.building.co.uk/rss"},
			{Name: "Construction Enquirer", URL: "https://www.constructionenquirer.com/feed/"},
		},
		PlanningFeeds: []FeedSource{
			{Name: "Planning Portal", URL: "https://www.planningportal.co.uk/feed"},
			{Name: "Planning Resource", URL: "https://www.planningresource.co.uk/rss"},
		},
		Sectors: []Sector{
			{ID: "all", Name: "All sectors"},
			{ID: "residential", Name: "Residential"},
			{ID: "commercial", Name: "Commercial"},
			{ID: "infrastructure", Name: "Infrastructure"},
		},
		Keywords: []string{"administration", "liquidation", "insolvency", "profit warning"},
		Thresholds: Thresholds{
			PMIFloor:    50,
			OutputFloor: -5,
		},
	}
}

// Normalize trims and lowercases the keyword list, dropping empties.
// Keyword matching is case-insensitive, so only the lowercased form is kept.
func (s *Settings) Normalize() {
	kept := make([]string, 0, len(s.Keywords))
	for _, kw := range s.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			kept = append(kept, kw)
		}
	}
	s.Keywords = kept
}

// Validate checks that the settings are structurally sound.
func (s *Settings) Validate() error {
	if s.PollingMinutes < 1 {
		return fmt.Errorf("polling_minutes must be >= 1, got %d", s.PollingMinutes)
	}
	if err := validateFeeds("news_feeds", s.NewsFeeds); err != nil {
		return err
	}
	if err := validateFeeds("planning_feeds", s.PlanningFeeds); err != nil {
		return err
	}
	for i, sec := range s.Sectors {
		if sec.ID == "" || sec.Name == "" {
			return fmt.Errorf("sectors[%d]: id and name are required", i)
		}
	}
	for _, ep := range []struct{ name, value string }{
		{"endpoints.pmi", s.Endpoints.PMI},
		{"endpoints.output", s.Endpoints.Output},
		{"endpoints.insolvency", s.Endpoints.Insolvency},
	} {
		if ep.value == "" {
			continue
		}
		if _, err := url.ParseRequestURI(ep.value); err != nil {
			return fmt.Errorf("%s: invalid URL %q", ep.name, ep.value)
		}
	}
	return nil
}

func validateFeeds(field string, feeds []FeedSource) error {
	for i, f := range feeds {
		if f.Name == "" {
			return fmt.Errorf("%s[%d]: name is required", field, i)
		}
		if f.URL == "" {
			return fmt.Errorf("%s[%d]: url is required", field, i)
		}
		if _, err := url.ParseRequestURI(f.URL); err != nil {
			return fmt.Errorf("%s[%d]: invalid URL %q", field, i, f.URL)
		}
	}
	return nil
}
