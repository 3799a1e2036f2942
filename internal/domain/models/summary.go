package models

import "time"

// TopicSummary is the generated narrative for a topic page.
type TopicSummary struct {
	Summary     string     `json:"summary"`
	Headlines   []Headline `json:"headlines"`
	GeneratedAt time.Time  `json:"generatedAt"`
}

// Commentary is the generated equity commentary.
type Commentary struct {
	Commentary  string    `json:"commentary"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// IndicatorCard pairs an indicator definition with its latest reading.
type IndicatorCard struct {
	IndicatorDefinition
	Summary   *IndicatorSummary `json:"summary,omitempty"`
	Formatted string            `json:"formatted,omitempty"`
	Trend     string            `json:"trend,omitempty"`
	Change    float64           `json:"change,omitempty"`
}
