// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fulltext retrieves and caches full-text content for articles
// whose deposits live in the monthly archive bucket.
// Implements: prd008-fulltext-archive R3 (locate, extract, cache).
package fulltext

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Cache stores extracted full text on disk, one file per (source, article
// id) pair. A file that exists with non-zero size is a valid entry.
type Cache struct {
	dir string
}

// NewCache creates a cache rooted at dir.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Path returns the cache file for an article. IDs are sanitized for use
// as filenames ("/" and ":" become "_").
func (c *Cache) Path(source, articleID string) string {
	safe := strings.NewReplacer("/", "_", ":", "_").Replace(articleID)
	return filepath.Join(c.dir, source, safe+".xml")
}

// Has reports whether a valid entry exists.
func (c *Cache) Has(source, articleID string) bool {
	info, err := os.Stat(c.Path(source, articleID))
	return err == nil && info.Size() > 0
}

// Load returns a cached entry's content. The second return value is false
// when no valid entry exists or the file cannot be read.
func (c *Cache) Load(source, articleID string) (string, bool) {
	if !c.Has(source, articleID) {
		return "", false
	}
	data, err := os.ReadFile(c.Path(source, articleID))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Save writes content for an article. The write goes to a temporary file
// first and is renamed into place, so concurrent readers never observe a
// partial entry.
func (c *Cache) Save(source, articleID, content string) error {
	path := c.Path(source, articleID)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".fulltext-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.WriteString(content)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing cache entry: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Stats counts cached entries per source subdirectory.
func (c *Cache) Stats() (map[string]int, error) {
	stats := make(map[string]int)
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return nil, fmt.Errorf("reading cache directory %s: %w", c.dir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(c.dir, entry.Name(), "*.xml"))
		if err != nil {
			return nil, fmt.Errorf("globbing cache entries: %w", err)
		}
		stats[entry.Name()] = len(matches)
	}
	return stats, nil
}
