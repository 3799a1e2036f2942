package catalog

import "SignalStories/internal/domain/models"

var housingStockGroups = []models.TickerGroup{
	{
		Name: "Homebuilders",
		Tickers: []models.Ticker{
			{Symbol: "DHI", Name: "D.R. Horton"},
			{Symbol: "LEN", Name: "Lennar"},
			{Symbol: "PHM", Name: "PulteGroup"},
		},
	},
	{
		Name: "Mortgage & Lending",
		Tickers: []models.Ticker{
			{Symbol: "RKT", Name: "Rocket Companies"},
			{Symbol: "UWMC", Name: "UWM Holdings"},
		},
	},
	{
		Name: "REITs & ETFs",
		Tickers: []models.Ticker{
			{Symbol: "INVH", Name: "Invitation Homes"},
			{Symbol: "VNQ", Name: "Vanguard Real Estate ETF"},
			{Symbol: "ITB", Name: "iShares Home Construction ETF"},
		},
	},
}

// CommentaryTickers are the sector representatives fed to the equity commentary.
var commentaryTickers = []models.Ticker{
	{Symbol: "ITB", Name: "iShares Home Construction ETF"},
	{Symbol: "VNQ", Name: "Vanguard Real Estate ETF"},
	{Symbol: "RKT", Name: "Rocket Companies"},
}

// HousingStockGroups returns a copy of the housing ticker groups.
func HousingStockGroups() []models.TickerGroup {
	out := make([]models.TickerGroup, len(housingStockGroups))
	for i, g := range housingStockGroups {
		out[i] = models.TickerGroup{Name: g.Name, Tickers: append([]models.Ticker(nil), g.Tickers...)}
	}
	return out
}

// CommentaryTickers returns the tickers used by the equity commentary.
func CommentaryTickers() []models.Ticker {
	return append([]models.Ticker(nil), commentaryTickers...)
}
