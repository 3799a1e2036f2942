package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// fakeRemote stands in for Redis.
type fakeRemote struct {
	data  map[string][]byte
	ttl   map[string]time.Duration
	gets  int
	close bool
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{data: map[string][]byte{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRemote) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	return f.setRaw(ctx, key, data, exp)
}

func (f *fakeRemote) Get(ctx context.Context, key string, dest interface{}) error {
	data, _, err := f.getRaw(ctx, key)
	if err != nil {
		return err
	}
	return decode(data, dest)
}

func (f *fakeRemote) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeRemote) Close() error { f.close = true; return nil }

func (f *fakeRemote) getRaw(_ context.Context, key string) ([]byte, time.Duration, error) {
	f.gets++
	d, ok := f.data[key]
	if !ok {
		return nil, 0, ErrCacheMiss
	}
	return d, f.ttl[key], nil
}

func (f *fakeRemote) setRaw(_ context.Context, key string, data []byte, exp time.Duration) error {
	f.data[key] = data
	f.ttl[key] = exp
	return nil
}

func TestLayeredCachePromotesRemoteHits(t *testing.T) {
	defer goleak.VerifyNone(t)

	remote := newFakeRemote()
	lc := newLayered(remote, remote)
	ctx := context.Background()

	remote.data["summary:housing"] = []byte(`{"summary":"tight market"}`)
	remote.ttl["summary:housing"] = 10 * time.Minute

	var got map[string]string
	require.NoError(t, lc.Get(ctx, "summary:housing", &got))
	assert.Equal(t, "tight market", got["summary"])
	assert.Equal(t, 1, remote.gets)

	got = nil
	require.NoError(t, lc.Get(ctx, "summary:housing", &got))
	assert.Equal(t, "tight market", got["summary"])
	assert.Equal(t, 1, remote.gets, "second read is served from memory")

	require.NoError(t, lc.Close())
	assert.True(t, remote.close)
}

func TestLayeredCacheWriteThroughAndDelete(t *testing.T) {
	defer goleak.VerifyNone(t)

	remote := newFakeRemote()
	lc := newLayered(remote, remote, WithLayeredMemoryTTL(30*time.Second))
	defer lc.Close()
	ctx := context.Background()

	require.NoError(t, lc.Set(ctx, "k", 42, time.Hour))
	assert.JSONEq(t, `42`, string(remote.data["k"]))
	assert.Equal(t, time.Hour, remote.ttl["k"])

	require.NoError(t, lc.Delete(ctx, "k"))
	var v int
	assert.ErrorIs(t, lc.Get(ctx, "k", &v), ErrCacheMiss)
}

func TestLayeredL1TTLNeverExceedsRemote(t *testing.T) {
	lc := &LayeredCache{memoryTTL: time.Minute}
	assert.Equal(t, 5*time.Second, lc.l1TTL(5*time.Second))
	assert.Equal(t, time.Minute, lc.l1TTL(time.Hour))
	assert.Equal(t, time.Minute, lc.l1TTL(0))
}
