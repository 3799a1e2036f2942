package usecase

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"SignalStories/internal/domain/catalog"
	"SignalStories/internal/domain/models"
	"SignalStories/internal/service/fred"
	xhttp "SignalStories/pkg/http"
	"SignalStories/pkg/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestSummarizeMedianPriceScenario(t *testing.T) {
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		assert.Equal(t, "MSPUS", r.URL.Query().Get("series_id"))
		return jsonResponse(`{"observations":[
			{"date":"2024-01-01","value":"400000"},
			{"date":"2024-02-01","value":"."},
			{"date":"2024-03-01","value":"410000"}
		]}`), nil
	})
	client := fred.New(xhttp.NewClient(xhttp.WithTransport(transport)), "key", "http://fred.test/fred/series/observations")
	s := NewIndicatorSummarizer(client, nil, logger.Nop())

	got := s.Summarize(context.Background(), []models.IndicatorDefinition{{ID: "MSPUS"}}, "2024-01-01")

	require.Contains(t, got, "MSPUS")
	assert.Equal(t, models.IndicatorSummary{
		Latest:   strPtr("410000"),
		Previous: strPtr("400000"),
		Date:     strPtr("2024-03-01"),
	}, got["MSPUS"])
}

func TestSummarizeDropsFailedIndicator(t *testing.T) {
	defs, _ := catalog.Indicators(catalog.TopicHousing)
	series := &fakeSeries{data: map[string][]models.Observation{}, errs: map[string]error{
		"MSACSR": errors.New("boom"),
	}}
	for _, d := range defs {
		series.data[d.ID] = obs("2024-01-01", "1", "2024-02-01", d.ID)
	}
	m := newFakeMetrics()

	got := NewIndicatorSummarizer(series, m, logger.Nop()).Summarize(context.Background(), defs, "2024-01-01")

	assert.Len(t, got, len(defs)-1)
	assert.NotContains(t, got, "MSACSR")
	for _, d := range defs {
		if d.ID == "MSACSR" {
			continue
		}
		assert.Equal(t, d.ID, *got[d.ID].Latest)
		assert.Equal(t, "1", *got[d.ID].Previous)
	}
	assert.Equal(t, 1, m.dropped["indicator"])
}

func TestSummarizePassesStartDateAndUnits(t *testing.T) {
	series := &fakeSeries{}
	defs := []models.IndicatorDefinition{{ID: "CPIAUCSL", APIUnits: "pc1"}}

	got := NewIndicatorSummarizer(series, nil, logger.Nop()).Summarize(context.Background(), defs, "2023-06-01")

	assert.Empty(t, got)
	require.Len(t, series.queries, 1)
	assert.Equal(t, models.SeriesQuery{SeriesID: "CPIAUCSL", ObservationStart: "2023-06-01", Units: "pc1"}, series.queries[0])
}

func TestReduce(t *testing.T) {
	_, ok := Reduce(nil)
	assert.False(t, ok)

	sum, ok := Reduce(obs("2024-05-01", "6.9"))
	require.True(t, ok)
	assert.Equal(t, "6.9", *sum.Latest)
	assert.Equal(t, "2024-05-01", *sum.Date)
	assert.Nil(t, sum.Previous)
}
