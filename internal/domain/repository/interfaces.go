package repository

import (
	"context"
	"encoding/json"
	"time"

	"SignalStories/internal/domain/models"
)

// SeriesProvider reads economic time series.
type SeriesProvider interface {
	Name() string
	Configured() bool
	// FetchSeries returns observations in ascending date order.
	FetchSeries(ctx context.Context, q models.SeriesQuery) ([]models.Observation, error)
	// FetchRaw returns the provider payload unmodified.
	FetchRaw(ctx context.Context, q models.SeriesQuery) (json.RawMessage, error)
}

// DailySeriesProvider reads daily equity closes.
type DailySeriesProvider interface {
	Name() string
	Configured() bool
	FetchDaily(ctx context.Context, symbol string) (*models.DailySeries, error)
}

// NewsProvider searches recent headlines.
type NewsProvider interface {
	Name() string
	Configured() bool
	Search(ctx context.Context, query string, pageSize int) ([]models.Headline, error)
}

// TextGenerator produces text from a single user prompt.
// An empty string means the provider returned no content.
type TextGenerator interface {
	Name() string
	Configured() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// IdentityVerifier validates a bearer token.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*models.AuthenticatedUser, error)
}

// Cache stores JSON-serialisable values. A miss returns (false, nil).
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type Metrics interface {
	RecordUpstream(host string, status int, seconds float64)
	RecordRateLimited(provider string)
	RecordCacheLookup(cache string, hit bool)
	RecordDropped(kind string)
}
