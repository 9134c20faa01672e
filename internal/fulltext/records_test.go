// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fulltext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/meca-fetch/pkg/types"
)

func TestReadRecordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.yaml")
	content := `articles:
  - doi: 10.1101/2024.12.18.628357
    publication_date: "2024-12-18"
    title: Example preprint
  - doi: 10.1101/2024.12.01.000001
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	articles, err := ReadRecordsFile(path)
	require.NoError(t, err)
	assert.Equal(t, []types.ArticleRef{
		{DOI: "10.1101/2024.12.18.628357", PublicationDate: "2024-12-18", Title: "Example preprint"},
		{DOI: "10.1101/2024.12.01.000001"},
	}, articles)
}

func TestReadRecordsFileMissing(t *testing.T) {
	_, err := ReadRecordsFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestReadRecordsFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.yaml")
	require.NoError(t, os.WriteFile(path, []byte("articles: {not a list"), 0o644))

	_, err := ReadRecordsFile(path)
	assert.Error(t, err)
}
