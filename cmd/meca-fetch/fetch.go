package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/meca-fetch/internal/fulltext"
	"github.com/pdiddy/meca-fetch/internal/index"
	"github.com/pdiddy/meca-fetch/internal/logging"
	"github.com/pdiddy/meca-fetch/internal/objstore"
	"github.com/pdiddy/meca-fetch/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [DOIs...]",
	Short: "Retrieve full-text content for articles",
	Long: `Fetch retrieves full-text XML for one or more articles. Each DOI is
located through its month's index and the matching archive is downloaded
and unpacked. Cached text is reused unless --force is given.

Articles come either from DOI arguments with a shared --date, or from a
records file listing DOIs and publication dates.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("date", "", "publication date (YYYY-MM-DD) for the DOI arguments")
	fetchCmd.Flags().String("records", "", "YAML records file listing articles to fetch")
	fetchCmd.Flags().Bool("force", false, "re-fetch even when a cached entry exists")
	fetchCmd.Flags().String("out", "", "directory to copy fetched XML files into")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	date, _ := cmd.Flags().GetString("date")
	records, _ := cmd.Flags().GetString("records")
	force, _ := cmd.Flags().GetBool("force")
	out, _ := cmd.Flags().GetString("out")

	var articles []types.ArticleRef
	if records != "" {
		var err error
		articles, err = fulltext.ReadRecordsFile(records)
		if err != nil {
			return err
		}
	}
	for _, doi := range args {
		articles = append(articles, types.ArticleRef{DOI: doi, PublicationDate: date})
	}
	if len(articles) == 0 {
		return fmt.Errorf("provide one or more DOIs or a --records file")
	}

	cfg := loadConfig(cmd)
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := context.Background()
	store, err := objstore.NewS3Store(ctx, cfg.Store)
	if err != nil {
		return err
	}
	builder := index.NewBuilder(store, cfg.Index, cfg.Store.Prefix, log)
	cache := fulltext.NewCache(cfg.Fetch.CacheDir)
	fetcher := fulltext.NewFetcher(store, builder, cache, log)

	result := fetcher.FetchBatch(ctx, articles, force, os.Stdout)

	if out != "" {
		if err := exportFetched(cache, articles, out); err != nil {
			return err
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d article(s) failed", result.Failed)
	}
	return nil
}

// exportFetched copies every cached article in the batch into outDir.
// Articles that failed to fetch have no cache entry and are skipped.
func exportFetched(cache *fulltext.Cache, articles []types.ArticleRef, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outDir, err)
	}
	for _, article := range articles {
		src := cache.Path(fulltext.SourceBioRxiv, article.DOI)
		data, err := os.ReadFile(src)
		if err != nil {
			continue
		}
		dst := filepath.Join(outDir, filepath.Base(src))
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", dst, err)
		}
	}
	return nil
}
