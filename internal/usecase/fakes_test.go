package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"SignalStories/internal/domain"
	"SignalStories/internal/domain/models"
)

type fakeSeries struct {
	mu      sync.Mutex
	noKey   bool
	data    map[string][]models.Observation
	errs    map[string]error
	queries []models.SeriesQuery
}

func (f *fakeSeries) Name() string     { return "fred" }
func (f *fakeSeries) Configured() bool { return !f.noKey }

func (f *fakeSeries) FetchSeries(_ context.Context, q models.SeriesQuery) ([]models.Observation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if err := f.errs[q.SeriesID]; err != nil {
		return nil, err
	}
	return f.data[q.SeriesID], nil
}

func (f *fakeSeries) FetchRaw(_ context.Context, q models.SeriesQuery) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	return json.RawMessage(`{"observations":[]}`), nil
}

func (f *fakeSeries) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

type fakeDaily struct {
	mu      sync.Mutex
	noKey   bool
	series  map[string]*models.DailySeries
	errs    map[string]error
	symbols []string
}

func (f *fakeDaily) Name() string     { return "alphavantage" }
func (f *fakeDaily) Configured() bool { return !f.noKey }

func (f *fakeDaily) FetchDaily(_ context.Context, symbol string) (*models.DailySeries, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.symbols = append(f.symbols, symbol)
	if err := f.errs[symbol]; err != nil {
		return nil, err
	}
	s, ok := f.series[symbol]
	if !ok {
		return nil, &domain.ProviderError{Provider: "alphavantage", Status: 500, Message: "Unexpected response format"}
	}
	return s, nil
}

func (f *fakeDaily) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.symbols)
}

type fakeNews struct {
	noKey    bool
	articles []models.Headline
	err      error
	queries  []string
}

func (f *fakeNews) Name() string     { return "newsapi" }
func (f *fakeNews) Configured() bool { return !f.noKey }

func (f *fakeNews) Search(_ context.Context, query string, _ int) ([]models.Headline, error) {
	f.queries = append(f.queries, query)
	return f.articles, f.err
}

type fakeLLM struct {
	noKey   bool
	text    string
	err     error
	prompts []string
}

func (f *fakeLLM) Name() string     { return "anthropic" }
func (f *fakeLLM) Configured() bool { return !f.noKey }

func (f *fakeLLM) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

// mapCache is a JSON round-tripping cache without expiry.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string, any) (bool, error) {
	return false, errors.New("connection refused")
}

func (brokenCache) Set(context.Context, string, any, time.Duration) error {
	return errors.New("connection refused")
}

type fakeMetrics struct {
	mu          sync.Mutex
	dropped     map[string]int
	rateLimited map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{dropped: map[string]int{}, rateLimited: map[string]int{}}
}

func (m *fakeMetrics) RecordUpstream(string, int, float64) {}
func (m *fakeMetrics) RecordCacheLookup(string, bool)      {}

func (m *fakeMetrics) RecordRateLimited(provider string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rateLimited[provider]++
}

func (m *fakeMetrics) RecordDropped(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropped[kind]++
}

func obs(pairs ...string) []models.Observation {
	out := make([]models.Observation, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.Observation{Date: pairs[i], Value: pairs[i+1]})
	}
	return out
}

func dailySeries(symbol string, closes ...float64) *models.DailySeries {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	pts := make([]models.PricePoint, len(closes))
	for i, c := range closes {
		pts[i] = models.PricePoint{
			Date:  start.AddDate(0, 0, i).Format("2006-01-02"),
			Close: decimal.NewFromFloat(c),
		}
	}
	return &models.DailySeries{Symbol: symbol, Points: pts}
}

func strPtr(s string) *string { return &s }
