// Package caching keeps fetched pages on disk so repeated runs against the
// same URL don't hit the network.
package caching

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache is a file-based page cache with a TTL. A nil *Cache never hits.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates the cache directory if needed. A ttl <= 0 returns a nil
// cache, which disables caching.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		return nil, nil
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// Key derives a cache filename from the URL and the request variant
// (e.g. Accept-Language), since the same URL renders differently per locale.
func Key(url, variant string) string {
	hash := sha256.Sum256([]byte(url + "\x00" + variant))
	return fmt.Sprintf("%x.html", hash)
}

// Get returns the cached bytes if present and younger than the TTL.
func (c *Cache) Get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	filePath := filepath.Join(c.path, key)

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores data under key. Writes go through a temp file so a crashed
// run never leaves a truncated page behind.
func (c *Cache) Set(key string, data []byte) error {
	if c == nil {
		return nil
	}
	filePath := filepath.Join(c.path, key)

	tmp, err := os.CreateTemp(c.path, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), filePath); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}
