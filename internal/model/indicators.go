package model

// IndicatorPoint is one period of a signed percentage series.
type IndicatorPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// PmiReading is a single Purchasing Managers' Index observation.
// Values below 50 denote contraction.
type PmiReading struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Date  string  `json:"date"`
}

// InsolvencyRecord describes one corporate insolvency.
type InsolvencyRecord struct {
	Company string `json:"company"`
	Number  string `json:"number,omitempty"`
	Status  string `json:"status"`
	Updated string `json:"updated"`
}
