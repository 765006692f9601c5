package cache

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores entries as JSON files under a directory, one file per
// key. Expiry is recorded inside the entry so every key carries its own TTL.
type FileCache struct {
	dir string
}

type fileEntry struct {
	ExpiresAt time.Time       `json:"expires_at"`
	Value     json.RawMessage `json:"value"`
}

func NewFileCache(dir string) (*FileCache, error) {
	if dir == "" {
		return nil, errors.New("cache directory not provided")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

func (c *FileCache) Has(ctx context.Context, key string) bool {
	var discard json.RawMessage
	ok, _ := c.Get(ctx, key, &discard)
	return ok
}

func (c *FileCache) Get(_ context.Context, key string, dest any) (bool, error) {
	if key == "" {
		return false, errors.New("empty key")
	}
	path := filepath.Join(c.dir, key+".json")
	f, err := os.Open(path)
	if err != nil {
		return false, nil
	}
	defer f.Close()

	var entry fileEntry
	if err := json.NewDecoder(f).Decode(&entry); err != nil {
		// Corrupt entry: drop it and treat as a miss.
		_ = os.Remove(path)
		return false, nil
	}
	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return false, nil
	}
	if err := json.Unmarshal(entry.Value, dest); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *FileCache) Put(_ context.Context, key string, value any, ttl time.Duration) error {
	if key == "" {
		return errors.New("empty key")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entry := fileEntry{ExpiresAt: time.Now().Add(ttl), Value: raw}

	path := filepath.Join(c.dir, key+".json")
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(f).Encode(entry); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
