package models

// Query parameters of the API endpoints. Defined in domain for reuse by the CLI.

type SeriesRequest struct {
	SeriesID         string `query:"series_id" validate:"required"`
	ObservationStart string `query:"observation_start" validate:"omitempty,datetime=2006-01-02"`
	Units            string `query:"units" validate:"omitempty,alphanum,max=8"`
}

type QuoteRequest struct {
	Symbol string `query:"symbol" validate:"required,max=16"`
}

type IndicatorsRequest struct {
	Topic      string `query:"topic" default:"housing" validate:"oneof=housing labor inflation gdp consumer"`
	WithLatest bool   `query:"with_latest"`
}
