// Package catalog holds the static indicator and ticker tables shown on the
// dashboard. Values are immutable after process start.
package catalog

import "SignalStories/internal/domain/models"

const (
	TopicHousing   = "housing"
	TopicLabor     = "labor"
	TopicInflation = "inflation"
	TopicGDP       = "gdp"
	TopicConsumer  = "consumer"
)

var housingIndicators = []models.IndicatorDefinition{
	{
		ID:        "MSPUS",
		Name:      "Median Home Price",
		Format:    models.FormatCurrency,
		Frequency: "Quarterly",
		Subtitle:  "Half of homes sell above, half below",
		Tooltip:   "The median sales price of houses sold in the US. Unlike average price, median isn't skewed by luxury homes - it shows what a typical buyer actually pays.",
	},
	{
		ID:        "EXHOSLUSM495S",
		Name:      "Existing Home Sales",
		Format:    models.FormatUnitsToMillions,
		Frequency: "Monthly",
		Subtitle:  "Previously owned homes sold",
		Tooltip:   "Annual rate of existing (not new) home sales. This is the bulk of the market - about 85% of all home sales. Rising sales = more market activity.",
	},
	{
		ID:        "MORTGAGE30US",
		Name:      "30-Year Mortgage Rate",
		Format:    models.FormatPercent,
		Frequency: "Weekly",
		Subtitle:  "Average rate for new loans",
		Tooltip:   "The average interest rate for a 30-year fixed mortgage. This directly affects monthly payments and buying power. A 1% rate increase can reduce buying power by ~10%.",
	},
	{
		ID:        "MSACSR",
		Name:      "Housing Inventory",
		Format:    models.FormatMonths,
		Frequency: "Monthly",
		Subtitle:  "Months to sell all current homes",
		Tooltip:   "How many months it would take to sell all homes on the market at the current sales pace. Under 4 months = seller's market, over 6 months = buyer's market.",
	},
	{
		ID:        "HSN1F",
		Name:      "New Home Sales",
		Format:    models.FormatThousands,
		Frequency: "Monthly",
		Subtitle:  "Newly built homes sold",
		Tooltip:   "Annual rate of new single-family home sales. A leading indicator of housing demand and construction activity. New homes are about 15% of the market.",
	},
	{
		ID:        "HOUST",
		Name:      "Housing Starts",
		Format:    models.FormatThousands,
		Frequency: "Monthly",
		Subtitle:  "New construction begun",
		Tooltip:   "Annual rate of new housing units where construction has started. A leading economic indicator - builders start construction when they're confident about future demand.",
	},
}

var laborIndicators = []models.IndicatorDefinition{
	{
		ID:        "UNRATE",
		Name:      "Unemployment Rate",
		Format:    models.FormatPercent,
		Frequency: "Monthly",
		Subtitle:  "Share of labor force without jobs",
		Tooltip:   "The percentage of the labor force that is unemployed and actively seeking work. A key measure of labor market health. Below 4% is generally considered full employment.",
	},
	{
		ID:        "PAYEMS",
		Name:      "Nonfarm Payrolls",
		Format:    models.FormatThousands,
		Frequency: "Monthly",
		Subtitle:  "Total jobs in the economy",
		Tooltip:   "Total number of paid workers in the US excluding farm workers, government employees, private household employees, and nonprofit organization employees. The most-watched monthly jobs number.",
	},
	{
		ID:        "ICSA",
		Name:      "Initial Jobless Claims",
		Format:    models.FormatThousands,
		Frequency: "Weekly",
		Subtitle:  "New unemployment filings",
		Tooltip:   "Number of people filing for unemployment benefits for the first time. A leading indicator of labor market conditions. Below 250K is historically healthy.",
	},
	{
		ID:        "JTSJOL",
		Name:      "Job Openings (JOLTS)",
		Format:    models.FormatUnitsToMillions,
		Frequency: "Monthly",
		Subtitle:  "Available positions nationwide",
		Tooltip:   "Total number of job openings from the Job Openings and Labor Turnover Survey. High openings relative to unemployed workers indicates a tight labor market.",
	},
	{
		ID:        "CES0500000003",
		Name:      "Avg. Hourly Earnings",
		Format:    models.FormatCurrency,
		Frequency: "Monthly",
		Subtitle:  "Average pay per hour worked",
		Tooltip:   "Average hourly earnings of all employees on private nonfarm payrolls. A key measure of wage growth and inflationary pressure.",
	},
	{
		ID:        "CIVPART",
		Name:      "Labor Force Participation",
		Format:    models.FormatPercent,
		Frequency: "Monthly",
		Subtitle:  "Working-age adults in labor force",
		Tooltip:   "The percentage of the civilian noninstitutional population that is either employed or actively looking for work. Pre-pandemic was around 63.3%.",
	},
}

var inflationIndicators = []models.IndicatorDefinition{
	{
		ID:        "CPIAUCSL",
		Name:      "CPI Inflation Rate",
		Format:    models.FormatPercent,
		Frequency: "Monthly",
		Subtitle:  "Year-over-year consumer price change",
		Tooltip:   "The Consumer Price Index measures the average change in prices paid by urban consumers for a basket of goods and services. The most widely cited inflation measure.",
		APIUnits:  "pc1",
	},
	{
		ID:        "PCEPILFE",
		Name:      "Core PCE Inflation",
		Format:    models.FormatPercent,
		Frequency: "Monthly",
		Subtitle:  "The Fed's preferred inflation gauge",
		Tooltip:   "Personal Consumption Expenditures excluding food and energy. The Federal Reserve targets 2% core PCE inflation. Excludes volatile items to show underlying trend.",
		APIUnits:  "pc1",
	},
	{
		ID:        "PPIFIS",
		Name:      "Producer Price Index",
		Format:    models.FormatPercent,
		Frequency: "Monthly",
		Subtitle:  "Year-over-year producer price change",
		Tooltip:   "Measures the average change in selling prices received by domestic producers. A leading indicator of consumer inflation - rising producer costs often pass through to consumers.",
		APIUnits:  "pc1",
	},
	{
		ID:        "T10YIE",
		Name:      "10-Yr Breakeven Inflation",
		Format:    models.FormatPercent,
		Frequency: "Daily",
		Subtitle:  "Market's inflation expectation",
		Tooltip:   "The difference between 10-year Treasury yields and 10-year TIPS yields. Represents what bond markets expect average inflation to be over the next decade.",
	},
	{
		ID:        "GASREGW",
		Name:      "Regular Gas Price",
		Format:    models.FormatCurrency,
		Frequency: "Weekly",
		Subtitle:  "National average per gallon",
		Tooltip:   "The U.S. average retail price of regular unleaded gasoline. A highly visible inflation indicator that directly affects consumer sentiment and spending.",
	},
	{
		ID:        "CPIUFDSL",
		Name:      "Food CPI",
		Format:    models.FormatPercent,
		Frequency: "Monthly",
		Subtitle:  "Year-over-year food price change",
		Tooltip:   "The Consumer Price Index for food at home. Food prices are among the most visible inflation measures for everyday consumers and a key driver of sentiment.",
		APIUnits:  "pc1",
	},
}

var gdpIndicators = []models.IndicatorDefinition{
	{
		ID:        "A191RL1Q225SBEA",
		Name:      "Real GDP Growth",
		Format:    models.FormatPercent,
		Frequency: "Quarterly",
		Subtitle:  "Annualized quarterly growth rate",
		Tooltip:   "The annualized rate of change in real gross domestic product. The broadest measure of economic activity. Two consecutive negative quarters is a common recession signal.",
	},
	{
		ID:        "INDPRO",
		Name:      "Industrial Production",
		Format:    models.FormatPercent,
		Frequency: "Monthly",
		Subtitle:  "Year-over-year factory output change",
		Tooltip:   "Measures the real output of manufacturing, mining, and utilities. A key gauge of the industrial sector's health and a coincident economic indicator.",
		APIUnits:  "pc1",
	},
	{
		ID:        "DGORDER",
		Name:      "Durable Goods Orders",
		Format:    models.FormatBillions,
		Frequency: "Monthly",
		Subtitle:  "New orders for long-lasting goods",
		Tooltip:   "New orders placed with domestic manufacturers for goods expected to last 3+ years (appliances, cars, machinery). A leading indicator of manufacturing activity and business investment.",
	},
	{
		ID:        "NAPM",
		Name:      "ISM Manufacturing PMI",
		Format:    models.FormatIndex,
		Frequency: "Monthly",
		Subtitle:  "Above 50 = expansion",
		Tooltip:   "The Institute for Supply Management's Purchasing Managers Index. Above 50 signals manufacturing expansion, below 50 signals contraction. One of the most watched leading indicators.",
	},
	{
		ID:        "PERMIT",
		Name:      "Building Permits",
		Format:    models.FormatThousands,
		Frequency: "Monthly",
		Subtitle:  "Authorized new housing units",
		Tooltip:   "The number of new privately-owned housing units authorized by building permits. A leading indicator of future construction activity and economic confidence.",
	},
	{
		ID:        "T10Y2Y",
		Name:      "Yield Curve Spread",
		Format:    models.FormatPercent,
		Frequency: "Daily",
		Subtitle:  "10-year minus 2-year Treasury",
		Tooltip:   "The difference between 10-year and 2-year Treasury yields. When negative (inverted), it has preceded every US recession since 1970. A key recession warning signal.",
	},
}

var consumerIndicators = []models.IndicatorDefinition{
	{
		ID:        "RSAFS",
		Name:      "Retail Sales",
		Format:    models.FormatMillions,
		Frequency: "Monthly",
		Subtitle:  "Total monthly retail spending",
		Tooltip:   "Total receipts at retail and food service stores. Consumer spending drives about 70% of US GDP, making this a critical measure of economic health.",
	},
	{
		ID:        "UMCSENT",
		Name:      "Consumer Sentiment",
		Format:    models.FormatIndex,
		Frequency: "Monthly",
		Subtitle:  "University of Michigan survey",
		Tooltip:   "The University of Michigan Consumer Sentiment Index measures consumer confidence about the economy. Higher values indicate greater optimism. Baseline of 100 is from 1966.",
	},
	{
		ID:        "DPCERAM1M225NBEA",
		Name:      "Real Consumer Spending",
		Format:    models.FormatPercent,
		Frequency: "Monthly",
		Subtitle:  "Inflation-adjusted spending growth",
		Tooltip:   "Real personal consumption expenditures growth. Shows actual consumer spending power after accounting for inflation - the most direct measure of consumer demand.",
	},
	{
		ID:        "REVOLSL",
		Name:      "Revolving Credit",
		Format:    models.FormatMillions,
		Frequency: "Monthly",
		Subtitle:  "Credit card and other revolving debt",
		Tooltip:   "Total revolving consumer credit outstanding (mainly credit cards). Rising levels can signal consumer confidence or financial stress depending on the economic context.",
	},
	{
		ID:        "PSAVERT",
		Name:      "Personal Saving Rate",
		Format:    models.FormatPercent,
		Frequency: "Monthly",
		Subtitle:  "Share of income saved",
		Tooltip:   "Personal saving as a percentage of disposable personal income. The pre-pandemic average was about 7%. Low rates may signal consumer stress or confidence depending on context.",
	},
	{
		ID:        "TOTALSA",
		Name:      "Auto Sales",
		Format:    models.FormatMillions,
		Frequency: "Monthly",
		Subtitle:  "Total vehicle sales annualized",
		Tooltip:   "Total light vehicle sales at a seasonally adjusted annual rate. One of the largest consumer purchases - a strong indicator of consumer willingness to make big-ticket commitments.",
	},
}

var indicatorsByTopic = map[string][]models.IndicatorDefinition{
	TopicHousing:   housingIndicators,
	TopicLabor:     laborIndicators,
	TopicInflation: inflationIndicators,
	TopicGDP:       gdpIndicators,
	TopicConsumer:  consumerIndicators,
}

// Indicators returns a copy of the indicator table for a topic.
func Indicators(topic string) ([]models.IndicatorDefinition, bool) {
	defs, ok := indicatorsByTopic[topic]
	if !ok {
		return nil, false
	}
	out := make([]models.IndicatorDefinition, len(defs))
	copy(out, defs)
	return out, true
}

// Topics lists topic keys in navigation order.
func Topics() []string {
	return []string{TopicHousing, TopicLabor, TopicInflation, TopicGDP, TopicConsumer}
}
