package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type quote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	defer goleak.VerifyNone(t)

	mc := NewMemoryCache()
	defer mc.Close()

	ctx := context.Background()
	require.NoError(t, mc.Set(ctx, "ITB", quote{Symbol: "ITB", Price: 101.5}, time.Minute))

	var got quote
	require.NoError(t, mc.Get(ctx, "ITB", &got))
	assert.Equal(t, quote{Symbol: "ITB", Price: 101.5}, got)

	assert.ErrorIs(t, mc.Get(ctx, "VNQ", &got), ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	defer goleak.VerifyNone(t)

	mc := NewMemoryCache()
	defer mc.Close()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mc.now = func() time.Time { return now }

	ctx := context.Background()
	require.NoError(t, mc.Set(ctx, "k", "v", 15*time.Minute))

	now = now.Add(14 * time.Minute)
	var s string
	require.NoError(t, mc.Get(ctx, "k", &s))

	now = now.Add(2 * time.Minute)
	assert.ErrorIs(t, mc.Get(ctx, "k", &s), ErrCacheMiss)
	assert.Equal(t, 0, mc.Len())
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	defer goleak.VerifyNone(t)

	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mc.now = func() time.Time { now = now.Add(time.Second); return now }

	ctx := context.Background()
	require.NoError(t, mc.Set(ctx, "a", 1, time.Hour))
	require.NoError(t, mc.Set(ctx, "b", 2, time.Hour))

	var v int
	require.NoError(t, mc.Get(ctx, "a", &v)) // a is now more recent than b

	require.NoError(t, mc.Set(ctx, "c", 3, time.Hour))
	assert.Equal(t, 2, mc.Len())
	assert.NoError(t, mc.Get(ctx, "a", &v))
	assert.ErrorIs(t, mc.Get(ctx, "b", &v), ErrCacheMiss)
}

func TestMemoryCacheCloseIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	mc := NewMemoryCache(WithMemoryCleanup(time.Millisecond))
	require.NoError(t, mc.Close())
	require.NoError(t, mc.Close())
}

func TestNamedReportsHitsAndMisses(t *testing.T) {
	defer goleak.VerifyNone(t)

	mc := NewMemoryCache()
	defer mc.Close()

	rec := &lookups{}
	n := NewNamed(mc, "equity", rec)
	ctx := context.Background()

	var q quote
	hit, err := n.Get(ctx, "ITB", &q)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, n.Set(ctx, "ITB", quote{Symbol: "ITB"}, time.Minute))
	hit, err = n.Get(ctx, "ITB", &q)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "ITB", q.Symbol)

	// stored under the name prefix
	assert.NoError(t, mc.Get(ctx, "equity:ITB", &q))
	assert.Equal(t, []bool{false, true}, rec.hits)
}

type lookups struct{ hits []bool }

func (l *lookups) RecordCacheLookup(_ string, hit bool) { l.hits = append(l.hits, hit) }
