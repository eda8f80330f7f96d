package collector

import "BuildPulse/internal/model"

// Fixture datasets, returned whenever an indicator endpoint is unset or
// unreachable. Fresh slices are handed out on every call so a published
// snapshot never shares backing arrays with the next tick.

// FallbackPMI returns the built-in construction PMI reading.
func FallbackPMI() model.PmiReading {
	return model.PmiReading{
		Label: "UK Construction PMI",
		Value: 47.1,
		Date:  "2026-07",
	}
}

// FallbackOutput returns the built-in construction output YoY series,
// ordered by period.
func FallbackOutput() []model.IndicatorPoint {
	return []model.IndicatorPoint{
		{Period: "2026-01", Value: 1.8},
		{Period: "2026-02", Value: 0.9},
		{Period: "2026-03", Value: -0.4},
		{Period: "2026-04", Value: -1.7},
		{Period: "2026-05", Value: -2.3},
		{Period: "2026-06", Value: -1.2},
	}
}

// FallbackInsolvencies returns the built-in insolvency records.
func FallbackInsolvencies() []model.InsolvencyRecord {
	return []model.InsolvencyRecord{
		{Company: "Harwood Groundworks Ltd", Number: "08841213", Status: "liquidation", Updated: "2026-07-28"},
		{Company: "Pennine Steel Frames Ltd", Number: "11205644", Status: "administration", Updated: "2026-07-21"},
		{Company: "Calderdale Civils Ltd", Number: "09977310", Status: "administration", Updated: "2026-07-14"},
		{Company: "Brightstone Interiors Ltd", Status: "liquidation", Updated: "2026-07-02"},
	}
}
