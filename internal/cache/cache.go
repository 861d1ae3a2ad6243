// Package cache provides the best-effort cache collaborator used by the
// response pipeline. Misses and backend failures are soft: callers treat any
// error as a miss and proceed without the cache.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned when a key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Well-known keys.
const (
	// KeyCorpus holds the JSON snapshot of all active training entries.
	KeyCorpus = "corpus:active"

	// LearnedPrefix prefixes learned-response keys; the remainder is the
	// exact lower-cased message text.
	LearnedPrefix = "learned:"
)

// CorpusTTL is the short TTL on the active-corpus snapshot.
const CorpusTTL = 60 * time.Second

// Cache is a get/put/forget store with per-key TTL.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Forget(ctx context.Context, key string) error
}
