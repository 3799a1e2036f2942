package models

import "github.com/shopspring/decimal"

// Ticker is a symbol with its display name.
type Ticker struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// TickerGroup groups tickers for a dashboard card row.
type TickerGroup struct {
	Name    string   `json:"name"`
	Tickers []Ticker `json:"tickers"`
}

// PricePoint is one daily close.
type PricePoint struct {
	Date  string
	Close decimal.Decimal
}

// DailySeries is a provider's daily close series sorted by date ascending.
type DailySeries struct {
	Symbol string
	Points []PricePoint
}

// EquitySnapshot is the point-in-time summary used by narratives.
// Changes are percentages rounded to two decimals.
type EquitySnapshot struct {
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	DailyChange  decimal.Decimal `json:"dailyChange"`
	WeeklyChange decimal.Decimal `json:"weeklyChange"`
}

// HistoryPoint is a close in the quote history.
type HistoryPoint struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// EquityQuote is the body of the single-symbol equity endpoint.
type EquityQuote struct {
	Symbol        string         `json:"symbol"`
	Price         float64        `json:"price"`
	Change        float64        `json:"change"`
	ChangePercent float64        `json:"changePercent"`
	History       []HistoryPoint `json:"history"`
}
