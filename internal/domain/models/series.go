package models

// MissingValue is the sentinel FRED uses for an observation without data.
const MissingValue = "."

// Observation is one (date, value) point of a FRED series.
type Observation struct {
	Date  string `json:"date"`  // YYYY-MM-DD
	Value string `json:"value"` // decimal string, or MissingValue
}

// SeriesQuery parameterises one FRED observations request.
type SeriesQuery struct {
	SeriesID         string
	ObservationStart string // optional, YYYY-MM-DD
	Units            string // optional provider transform, e.g. "pc1"
}

// IndicatorSummary is the latest/previous reduction of a series.
// Absent fields are nil and omitted from JSON.
type IndicatorSummary struct {
	Latest   *string `json:"latest,omitempty"`
	Previous *string `json:"previous,omitempty"`
	Date     *string `json:"date,omitempty"`
}

// LatestOr returns the latest value or def when it is absent.
func (s IndicatorSummary) LatestOr(def string) string {
	if s.Latest == nil || *s.Latest == "" {
		return def
	}
	return *s.Latest
}

// FormatKind selects how an indicator value is rendered.
type FormatKind string

const (
	FormatCurrency        FormatKind = "currency"
	FormatPercent         FormatKind = "percent"
	FormatMillions        FormatKind = "millions"
	FormatUnitsToMillions FormatKind = "unitsToMillions"
	FormatMonths          FormatKind = "months"
	FormatThousands       FormatKind = "thousands"
	FormatIndex           FormatKind = "index"
	FormatBillions        FormatKind = "billions"
)

// IndicatorDefinition is static metadata for a tracked series.
type IndicatorDefinition struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Format    FormatKind `json:"format"`
	Frequency string     `json:"frequency"`
	Subtitle  string     `json:"subtitle"`
	Tooltip   string     `json:"tooltip"`
	APIUnits  string     `json:"apiUnits,omitempty"`
}
