package caching

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache stores artifacts derived from large input files (such as the word list
// of an embedding file) on disk. Entries are keyed by the source file's path,
// size and modification time, so editing the source invalidates its entry.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates a new Cache instance.
// The cache path will be created if it doesn't exist. A zero ttl never expires.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.path
}

// key hashes the identity of the source file and the artifact kind.
func (c *Cache) key(kind string, source string, info os.FileInfo) string {
	id := fmt.Sprintf("%s|%s|%d|%d", kind, source, info.Size(), info.ModTime().UnixNano())
	hash := sha256.Sum256([]byte(id))
	return fmt.Sprintf("%x", hash)
}

// Get retrieves the artifact of the given kind derived from source.
// It returns the data and true if the entry exists, matches the current state
// of source and has not expired.
func (c *Cache) Get(kind, source string) ([]byte, bool) {
	srcInfo, err := os.Stat(source)
	if err != nil {
		return nil, false
	}
	filePath := filepath.Join(c.path, c.key(kind, source, srcInfo))

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) || err != nil {
		return nil, false // Cache miss
	}

	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return nil, false // Cache miss (expired)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false // Cache miss (read error)
	}

	return data, true // Cache hit
}

// Set stores the artifact of the given kind derived from source.
func (c *Cache) Set(kind, source string, data []byte) error {
	srcInfo, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("failed to stat cache source: %w", err)
	}
	filePath := filepath.Join(c.path, c.key(kind, source, srcInfo))
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}
