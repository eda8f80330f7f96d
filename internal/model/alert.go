package model

// AlertKind indicates which rule produced an alert.
type AlertKind string

const (
	AlertPMI     AlertKind = "PMI"
	AlertOutput  AlertKind = "OUTPUT"
	AlertKeyword AlertKind = "KEYWORD"
)

// Alert is one derived alert entry. Keyword alerts carry the matching item.
type Alert struct {
	Kind    AlertKind `json:"kind"`
	Message string    `json:"message"`
	Item    *FeedItem `json:"item,omitempty"`
}
