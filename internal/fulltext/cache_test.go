// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fulltext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSaveLoad(t *testing.T) {
	c := NewCache(t.TempDir())

	const doi = "10.1101/2024.12.18.628357"
	require.NoError(t, c.Save(SourceBioRxiv, doi, "<article/>"))

	assert.True(t, c.Has(SourceBioRxiv, doi))
	text, ok := c.Load(SourceBioRxiv, doi)
	require.True(t, ok)
	assert.Equal(t, "<article/>", text)
}

func TestCachePathSanitizesID(t *testing.T) {
	c := NewCache("cache")
	got := c.Path("biorxiv", "10.1101/2024.12.18.628357")
	want := filepath.Join("cache", "biorxiv", "10.1101_2024.12.18.628357.xml")
	assert.Equal(t, want, got)
}

func TestCacheMissingEntry(t *testing.T) {
	c := NewCache(t.TempDir())
	assert.False(t, c.Has(SourceBioRxiv, "10.1101/2024.01.01.000001"))
	_, ok := c.Load(SourceBioRxiv, "10.1101/2024.01.01.000001")
	assert.False(t, ok)
}

// An empty file is not a valid entry.
func TestCacheEmptyFileInvalid(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(dir)

	const doi = "10.1101/2024.12.18.628357"
	require.NoError(t, os.MkdirAll(filepath.Dir(c.Path(SourceBioRxiv, doi)), 0o755))
	require.NoError(t, os.WriteFile(c.Path(SourceBioRxiv, doi), nil, 0o644))

	assert.False(t, c.Has(SourceBioRxiv, doi))
	_, ok := c.Load(SourceBioRxiv, doi)
	assert.False(t, ok)
}

func TestCacheStats(t *testing.T) {
	c := NewCache(t.TempDir())
	require.NoError(t, c.Save("biorxiv", "10.1101/2024.12.01.000001", "<a/>"))
	require.NoError(t, c.Save("biorxiv", "10.1101/2024.12.18.628357", "<b/>"))
	require.NoError(t, c.Save("pmc", "PMC1234567", "<c/>"))

	stats, err := c.Stats()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"biorxiv": 2, "pmc": 1}, stats)
}

func TestCacheStatsMissingDir(t *testing.T) {
	c := NewCache(filepath.Join(t.TempDir(), "nonexistent"))
	stats, err := c.Stats()
	require.NoError(t, err)
	assert.Empty(t, stats)
}
