// Package format renders indicator values the way the dashboard displays them.
//
// Parsing is lenient: a value is read from its longest numeric prefix and
// anything unparseable counts as zero.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"SignalStories/internal/domain/models"
)

// Trend directions.
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

// flatThreshold is the absolute percent change below which a move is flat.
const flatThreshold = 0.1

// ParseInt reads the leading integer of s. "419300.00" yields 419300.
func ParseInt(s string) int64 {
	s = strings.TrimSpace(s)
	end := signEnd(s)
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseFloat reads the leading decimal number of s.
func ParseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := signEnd(s)
	digits := 0
	for end < len(s) && isDigit(s[end]) {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && isDigit(s[end]) {
			end++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	// exponent, only when complete
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		start := exp
		for exp < len(s) && isDigit(s[exp]) {
			exp++
		}
		if exp > start {
			end = exp
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0
	}
	return v
}

func signEnd(s string) int {
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		return 1
	}
	return 0
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Fixed renders x with exactly n decimals.
func Fixed(x float64, n int) string {
	return strconv.FormatFloat(x, 'f', n, 64)
}

// Comma renders an integer with thousands separators.
func Comma(n int64) string {
	return humanize.Comma(n)
}

// Whole renders x rounded to an integer with thousands separators.
func Whole(x float64) string {
	return humanize.Comma(int64(math.Round(x)))
}

// Locale renders x with thousands separators and up to three decimals.
func Locale(x float64) string {
	return humanize.CommafWithDigits(math.Round(x*1000)/1000, 3)
}

// Value renders a raw observation value for display.
func Value(value string, kind models.FormatKind) string {
	num := ParseFloat(value)
	switch kind {
	case models.FormatCurrency:
		return "$" + Whole(num)
	case models.FormatPercent:
		return Fixed(num, 2) + "%"
	case models.FormatMillions:
		return Fixed(num, 2) + " million"
	case models.FormatUnitsToMillions:
		return Fixed(num/1e6, 2) + " million"
	case models.FormatMonths:
		return Fixed(num, 1) + " mo"
	case models.FormatThousands:
		return Whole(num) + "K"
	default:
		return Locale(num)
	}
}

// Trend is the direction and percent change between the last two observations.
type Trend struct {
	Direction string  `json:"direction"`
	Change    float64 `json:"change"`
}

// CalculateTrend compares the last two observations. Fewer than two points,
// a zero previous value, or a move under 0.1% are flat.
func CalculateTrend(obs []models.Observation) Trend {
	if len(obs) < 2 {
		return Trend{Direction: TrendFlat}
	}
	current := ParseFloat(obs[len(obs)-1].Value)
	previous := ParseFloat(obs[len(obs)-2].Value)
	if previous == 0 {
		return Trend{Direction: TrendFlat}
	}

	change := (current - previous) / previous * 100
	if math.Abs(change) < flatThreshold {
		return Trend{Direction: TrendFlat}
	}
	if change > 0 {
		return Trend{Direction: TrendUp, Change: change}
	}
	return Trend{Direction: TrendDown, Change: change}
}
