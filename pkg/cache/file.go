package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/qrsmith/pkg/errors"
)

// FileCache stores entries as files under a root directory, sharded by
// the first two characters of the hashed key. It is safe for
// concurrent use by multiple processes on one machine.
type FileCache struct {
	root string
}

// fileEntry is the on-disk envelope for a cached artifact.
type fileEntry struct {
	ExpiresAt time.Time `json:"expires_at"`
	Data      []byte    `json:"data"`
}

// NewFileCache creates the root directory if needed and returns a
// file-backed cache.
func NewFileCache(root string) (*FileCache, error) {
	if root == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cache root must not be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "creating cache directory")
	}
	return &FileCache{root: root}, nil
}

// Root returns the cache directory.
func (c *FileCache) Root() string { return c.root }

// path maps a key to its file, hashing so arbitrary keys stay
// filesystem-safe.
func (c *FileCache) path(key string) string {
	h := HashString(key)
	return filepath.Join(c.root, h[:2], h[2:]+".json")
}

// Get returns the entry for key, treating expired or unreadable
// entries as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	raw, err := os.ReadFile(c.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "reading cache entry")
	}
	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		// Corrupt entry. Drop it and miss.
		_ = os.Remove(c.path(key))
		return nil, false, nil
	}
	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(c.path(key))
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set writes the entry atomically via a temp file rename.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	entry := fileEntry{
		ExpiresAt: time.Now().Add(ttl),
		Data:      data,
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encoding cache entry")
	}

	dst := c.path(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "creating cache shard")
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".qrsmith-cache-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "creating temp cache file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "writing cache entry")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "closing cache entry")
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "committing cache entry")
	}
	return nil
}

// Delete removes the entry for key if present.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeInternal, err, "deleting cache entry")
	}
	return nil
}

// Close is a no-op; the file cache holds no open handles.
func (c *FileCache) Close() error { return nil }

// Clear removes every entry under the cache root, leaving the root
// directory in place.
func (c *FileCache) Clear() error {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "listing cache directory")
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(c.root, e.Name())); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "clearing cache directory")
		}
	}
	return nil
}
