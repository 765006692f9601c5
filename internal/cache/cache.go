package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
)

// Cache is the key-value TTL store the adapters write through. Backends must
// tolerate concurrent readers and writers; last-write-wins on races is
// acceptable and no cross-key consistency is guaranteed.
type Cache interface {
	Has(ctx context.Context, key string) bool
	// Get decodes the cached value into dest and reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Put(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Key derives a deterministic cache key from the given parts.
func Key(parts ...string) string {
	h := sha1.Sum([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(h[:])
}

// Remember returns the cached value for key, computing and storing it on a
// miss. The computed value is decoded into dest through the same JSON
// round-trip a later cache hit would take, so hits and misses observe
// identical shapes. Cache write failures are not fatal: the computed value
// is still returned.
func Remember(ctx context.Context, c Cache, key string, ttl time.Duration, dest any, compute func() (any, error)) error {
	if ok, err := c.Get(ctx, key, dest); err == nil && ok {
		return nil
	}

	value, err := compute()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return err
	}

	_ = c.Put(ctx, key, value, ttl)
	return nil
}
