package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// GenerateKey creates a cache key with prefix and ID.
func GenerateKey(prefix string, id string) string {
	return fmt.Sprintf("%s:%s", prefix, id)
}

// LookupRecorder receives hit/miss observations for a named cache.
type LookupRecorder interface {
	RecordCacheLookup(cache string, hit bool)
}

// Named scopes a Service under a key prefix and reports hits and misses.
// A miss is (false, nil).
type Named struct {
	svc      Service
	name     string
	recorder LookupRecorder
}

// NewNamed wraps svc. recorder may be nil.
func NewNamed(svc Service, name string, recorder LookupRecorder) *Named {
	return &Named{svc: svc, name: name, recorder: recorder}
}

func (n *Named) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	err := n.svc.Get(ctx, GenerateKey(n.name, key), dest)
	hit := err == nil
	if n.recorder != nil {
		n.recorder.RecordCacheLookup(n.name, hit)
	}
	if errors.Is(err, ErrCacheMiss) {
		return false, nil
	}
	return hit, err
}

func (n *Named) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return n.svc.Set(ctx, GenerateKey(n.name, key), value, ttl)
}
