package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/meca-fetch/internal/fulltext"
	"github.com/pdiddy/meca-fetch/internal/index"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the local caches",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report cached full-text entries and month indices",
	RunE:  runCacheStats,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	stats, err := fulltext.NewCache(cfg.Fetch.CacheDir).Stats()
	if err != nil {
		return err
	}
	months, err := index.CachedMonths(cfg.Index.CacheDir)
	if err != nil {
		return err
	}

	sources := make([]string, 0, len(stats))
	total := 0
	for source, n := range stats {
		sources = append(sources, source)
		total += n
	}
	sort.Strings(sources)

	fmt.Printf("Full-text entries: %d\n", total)
	for _, source := range sources {
		fmt.Printf("  %s: %d\n", source, stats[source])
	}
	fmt.Printf("Month indices: %d\n", months)
	return nil
}
