package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"SignalStories/internal/domain/models"
)

func TestParseInt(t *testing.T) {
	cases := map[string]int64{
		"419300":    419300,
		"419300.00": 419300,
		" 42abc":    42,
		"-7.9":      -7,
		"":          0,
		".":         0,
		"abc":       0,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseInt(in), "input %q", in)
	}
}

func TestParseFloat(t *testing.T) {
	cases := map[string]float64{
		"6.08":   6.08,
		"3.":     3,
		"-0.25x": -0.25,
		"1e3":    1000,
		"2e":     2,
		".5":     0.5,
		".":      0,
		"":       0,
	}
	for in, want := range cases {
		assert.InDelta(t, want, ParseFloat(in), 1e-9, "input %q", in)
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		value string
		kind  models.FormatKind
		want  string
	}{
		{"419300", models.FormatCurrency, "$419,300"},
		{"6.084", models.FormatPercent, "6.08%"},
		{"1234.567", models.FormatMillions, "1234.57 million"},
		{"4020000", models.FormatUnitsToMillions, "4.02 million"},
		{"9.04", models.FormatMonths, "9.0 mo"},
		{"1356.4", models.FormatThousands, "1,356K"},
		{"101.25", models.FormatIndex, "101.25"},
		{"295000", models.FormatBillions, "295,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Value(tt.value, tt.kind), "%s %s", tt.kind, tt.value)
	}
}

func TestCalculateTrend(t *testing.T) {
	obs := func(vals ...string) []models.Observation {
		out := make([]models.Observation, len(vals))
		for i, v := range vals {
			out[i] = models.Observation{Date: "2024-01-01", Value: v}
		}
		return out
	}

	assert.Equal(t, TrendFlat, CalculateTrend(obs("1")).Direction)
	assert.Equal(t, TrendFlat, CalculateTrend(obs("100", "100.05")).Direction)
	assert.Equal(t, TrendFlat, CalculateTrend(obs("0", "5")).Direction)

	up := CalculateTrend(obs("100", "110"))
	assert.Equal(t, TrendUp, up.Direction)
	assert.InDelta(t, 10.0, up.Change, 1e-9)

	down := CalculateTrend(obs("200", "150"))
	assert.Equal(t, TrendDown, down.Direction)
	assert.InDelta(t, -25.0, down.Change, 1e-9)
}
