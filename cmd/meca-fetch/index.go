package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/meca-fetch/internal/index"
	"github.com/pdiddy/meca-fetch/internal/logging"
	"github.com/pdiddy/meca-fetch/internal/objstore"
	"github.com/pdiddy/meca-fetch/internal/telemetry"
	"github.com/pdiddy/meca-fetch/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index [month folders...]",
	Short: "Build or refresh per-month DOI indices",
	Long: `Index builds the DOI -> archive key index for one or more month folders
(e.g. "December_2024") by probing the tail of every deposit in the folder.
Fresh cached indices are reused unless --refresh is given.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().Bool("refresh", false, "rebuild even when a fresh cached index exists")

	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more month folders (e.g. December_2024)")
	}
	refresh, _ := cmd.Flags().GetBool("refresh")

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

	telemetry.Default.Reset()
	for _, month := range args {
		var idx *types.MonthIndex
		if refresh {
			idx = builder.Rebuild(ctx, month)
		} else {
			idx = builder.Month(ctx, month)
		}
		fmt.Printf("%s: %d DOIs\n", month, len(idx.DOIs))
	}

	snap := telemetry.Default.Snapshot()
	fmt.Printf("\nStore requests: %d (%d retries, %d throttles, %d failures)\n",
		snap.Requests, snap.Retries, snap.Throttles, snap.Failures)
	return nil
}
