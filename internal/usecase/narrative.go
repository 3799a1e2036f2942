package usecase

import (
	"context"
	"strconv"
	"strings"

	"SignalStories/internal/domain/models"
	domrepo "SignalStories/internal/domain/repository"
	"SignalStories/pkg/format"
)

// EmptyNarrative replaces an LLM reply without text content.
const EmptyNarrative = "Unable to generate response"

const noHedging = `No hedging, no "may" or "could" - be direct.`

// Indicators is the latest/previous reduction keyed by series id.
type Indicators map[string]models.IndicatorSummary

func (m Indicators) latest(id string) string {
	return m[id].LatestOr("0")
}

func (m Indicators) whole(id string) int64 { return format.ParseInt(m.latest(id)) }

func (m Indicators) num(id string) float64 { return format.ParseFloat(m.latest(id)) }

// PromptBuilder renders the LLM prompt of a topic.
type PromptBuilder func(data Indicators, headlines []models.Headline) string

// brief is the shared shape of every topic prompt.
type brief struct {
	analyst string
	data    []string
	context []string
	asks    []string
}

func (b brief) render(headlines []models.Headline) string {
	var sb strings.Builder
	sb.WriteString("You are a sharp " + b.analyst + " who cuts through noise. Write a 2-3 sentence market summary using the specific numbers below.\n\n")
	section(&sb, "DATA:", b.data)
	section(&sb, "CONTEXT:", b.context)
	sb.WriteString("HEADLINES:\n")
	sb.WriteString(headlineLines(headlines))
	sb.WriteString("\n\nWrite a punchy summary that:\n")
	numbered(&sb, b.asks)
	sb.WriteString("\n" + noHedging)
	return sb.String()
}

func section(sb *strings.Builder, title string, lines []string) {
	sb.WriteString(title + "\n")
	for _, l := range lines {
		sb.WriteString("- " + l + "\n")
	}
	sb.WriteString("\n")
}

func numbered(sb *strings.Builder, lines []string) {
	for i, l := range lines {
		sb.WriteString(strconv.Itoa(i+1) + ". " + l + "\n")
	}
}

func headlineLines(headlines []models.Headline) string {
	if len(headlines) == 0 {
		return "- None available"
	}
	lines := make([]string, len(headlines))
	for i, h := range headlines {
		lines[i] = "- " + h.Title
	}
	return strings.Join(lines, "\n")
}

func housingData(d Indicators) []string {
	return []string{
		"Median Home Price: $" + format.Comma(d.whole("MSPUS")),
		"Existing Home Sales: " + format.Fixed(float64(d.whole("EXHOSLUSM495S"))/1e6, 2) + " million/year",
		"30-Year Mortgage Rate: " + format.Fixed(d.num("MORTGAGE30US"), 2) + "%",
		"Housing Inventory: " + format.Fixed(d.num("MSACSR"), 1) + " months supply",
		"New Home Sales: " + strconv.FormatInt(d.whole("HSN1F"), 10) + "K/year",
		"Housing Starts: " + strconv.FormatInt(d.whole("HOUST"), 10) + "K/year",
	}
}

func HousingPrompt(d Indicators, headlines []models.Headline) string {
	return brief{
		analyst: "housing market analyst",
		data:    housingData(d),
		context: []string{
			"Under 4 months inventory = seller's market, over 6 = buyer's market",
			"Historical average mortgage rate is ~7%",
			"Pre-pandemic existing sales were ~5.5 million/year",
		},
		asks: []string{
			`Uses specific numbers (e.g., "$419K median price" not "high prices")`,
			`Compares to historical norms (e.g., "rates at 6.1% are below the 7% average")`,
			"States the bottom line for buyers/sellers in plain terms",
		},
	}.render(headlines)
}

func LaborPrompt(d Indicators, headlines []models.Headline) string {
	return brief{
		analyst: "labor market analyst",
		data: []string{
			"Unemployment Rate: " + format.Fixed(d.num("UNRATE"), 1) + "%",
			"Nonfarm Payrolls: " + format.Comma(d.whole("PAYEMS")) + "K",
			"Initial Jobless Claims: " + format.Comma(d.whole("ICSA")) + "K",
			"Job Openings (JOLTS): " + format.Fixed(float64(d.whole("JTSJOL"))/1e6, 2) + " million",
			"Avg. Hourly Earnings: $" + format.Fixed(d.num("CES0500000003"), 2),
			"Labor Force Participation: " + format.Fixed(d.num("CIVPART"), 1) + "%",
		},
		context: []string{
			"Below 4% unemployment is generally considered full employment",
			"Pre-pandemic labor force participation was ~63.3%",
			"Initial claims below 250K is historically healthy",
			"Pre-pandemic there were ~7 million job openings",
		},
		asks: []string{
			`Uses specific numbers (e.g., "3.8% unemployment" not "low unemployment")`,
			`Compares to historical norms (e.g., "claims at 220K are well below the 250K threshold")`,
			"States the bottom line for workers and employers in plain terms",
		},
	}.render(headlines)
}

func InflationPrompt(d Indicators, headlines []models.Headline) string {
	return brief{
		analyst: "inflation analyst",
		data: []string{
			"CPI Inflation Rate (YoY): " + format.Fixed(d.num("CPIAUCSL"), 1) + "%",
			"Core PCE Inflation (YoY): " + format.Fixed(d.num("PCEPILFE"), 1) + "%",
			"Producer Price Index (YoY): " + format.Fixed(d.num("PPIFIS"), 1) + "%",
			"10-Yr Breakeven Inflation: " + format.Fixed(d.num("T10YIE"), 2) + "%",
			"Regular Gas Price: $" + format.Fixed(d.num("GASREGW"), 2) + "/gallon",
			"Food CPI (YoY): " + format.Fixed(d.num("CPIUFDSL"), 1) + "%",
		},
		context: []string{
			"The Fed targets 2% core PCE inflation",
			"Pre-pandemic CPI averaged about 1.8%",
			"Gas prices above $4/gallon historically weigh on consumer sentiment",
			"Food inflation above 3% is considered elevated",
		},
		asks: []string{
			`Uses specific numbers (e.g., "CPI at 3.2%" not "elevated inflation")`,
			"Compares to the Fed's 2% target and historical norms",
			"States the bottom line for consumers and the Fed's likely stance",
		},
	}.render(headlines)
}

func GDPPrompt(d Indicators, headlines []models.Headline) string {
	return brief{
		analyst: "macroeconomic analyst",
		data: []string{
			"Real GDP Growth (annualized): " + format.Fixed(d.num("A191RL1Q225SBEA"), 1) + "%",
			"Industrial Production (YoY): " + format.Fixed(d.num("INDPRO"), 1) + "%",
			"Durable Goods Orders: $" + format.Fixed(d.num("DGORDER")/1000, 1) + "B",
			"ISM Manufacturing PMI: " + format.Fixed(d.num("NAPM"), 1),
			"Building Permits: " + format.Locale(d.num("PERMIT")) + "K",
			"Yield Curve Spread (10Y-2Y): " + format.Fixed(d.num("T10Y2Y"), 2) + "%",
		},
		context: []string{
			"GDP growth of 2-3% is considered healthy",
			"PMI above 50 = expansion, below 50 = contraction",
			"An inverted yield curve (negative spread) has preceded every US recession since 1970",
			"Pre-pandemic building permits averaged about 1,300K",
		},
		asks: []string{
			`Uses specific numbers (e.g., "GDP at 2.8%" not "solid growth")`,
			`Compares to historical norms (e.g., "PMI at 49.2 signals contraction")`,
			"States the bottom line for the economy's trajectory",
		},
	}.render(headlines)
}

func ConsumerPrompt(d Indicators, headlines []models.Headline) string {
	return brief{
		analyst: "consumer economy analyst",
		data: []string{
			"Retail Sales: $" + format.Fixed(d.num("RSAFS"), 0) + " million/month",
			"Consumer Sentiment (UMich): " + format.Fixed(d.num("UMCSENT"), 1),
			"Real Consumer Spending Growth: " + format.Fixed(d.num("DPCERAM1M225NBEA"), 1) + "%",
			"Revolving Credit Outstanding: $" + format.Fixed(d.num("REVOLSL"), 0) + " million",
			"Personal Saving Rate: " + format.Fixed(d.num("PSAVERT"), 1) + "%",
			"Auto Sales (SAAR): " + format.Fixed(d.num("TOTALSA"), 1) + " million",
		},
		context: []string{
			"Consumer spending drives ~70% of US GDP",
			"Pre-pandemic consumer sentiment averaged about 95-100",
			"Historical personal saving rate averages about 7%",
			"Pre-pandemic auto sales ran about 17 million/year",
			"Revolving credit above $1 trillion signals elevated consumer leverage",
		},
		asks: []string{
			`Uses specific numbers (e.g., "sentiment at 67.4" not "weak confidence")`,
			`Compares to historical norms (e.g., "saving rate at 3.8% is well below the 7% average")`,
			"States the bottom line for consumer health and the spending outlook",
		},
	}.render(headlines)
}

// CommentaryPrompt renders the equity commentary prompt. Snapshots are listed
// in the given order.
func CommentaryPrompt(d Indicators, stocks []models.EquitySnapshot) string {
	var sb strings.Builder
	sb.WriteString("You are a sharp housing market analyst. Write 2-3 sentences analyzing how current housing fundamentals are affecting housing-related stocks.\n\n")
	section(&sb, "HOUSING DATA:", housingData(d))

	sb.WriteString("STOCK DATA:\n")
	if len(stocks) == 0 {
		sb.WriteString("- Stock data unavailable")
	}
	for i, s := range stocks {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- " + s.Symbol + " (" + s.Name + "): $" + s.Price.StringFixed(2) +
			", daily " + s.DailyChange.StringFixed(2) + "%, weekly " + s.WeeklyChange.StringFixed(2) + "%")
	}
	sb.WriteString("\n\n")

	section(&sb, "SECTOR CONTEXT:", []string{
		"ITB tracks homebuilders (D.R. Horton, Lennar, PulteGroup, etc.)",
		"VNQ tracks REITs (Invitation Homes, etc.)",
		"RKT represents mortgage lenders (Rocket Companies, UWM Holdings)",
	})
	sb.WriteString("Write a punchy commentary that:\n")
	numbered(&sb, []string{
		"Connects specific housing data points to stock performance",
		"Explains WHY housing fundamentals are bullish or bearish for each sector",
		"Uses actual numbers from both datasets",
	})
	sb.WriteString("\n" + noHedging)
	return sb.String()
}

// Composer turns prompts into narratives.
type Composer struct {
	llm domrepo.TextGenerator
}

func NewComposer(llm domrepo.TextGenerator) *Composer {
	return &Composer{llm: llm}
}

// Compose returns the generated text, or EmptyNarrative when the provider
// answered without text.
func (c *Composer) Compose(ctx context.Context, prompt string) (string, error) {
	text, err := c.llm.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if text == "" {
		return EmptyNarrative, nil
	}
	return text, nil
}
