// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fulltext

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/meca-fetch/pkg/types"
)

// RecordsFile is the on-disk list of articles to fetch. The researcher can
// keep a reading list in a file and fetch it in one batch.
type RecordsFile struct {
	Articles []types.ArticleRef `yaml:"articles"`
}

// ReadRecordsFile loads a records file from disk.
func ReadRecordsFile(path string) ([]types.ArticleRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading records file: %w", err)
	}
	var rf RecordsFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing records file: %w", err)
	}
	return rf.Articles, nil
}
