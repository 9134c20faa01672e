// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the meca-fetch CLI.
// Implements: prd008-fulltext-archive (CLI surface).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/meca-fetch/internal/secrets"
	"github.com/pdiddy/meca-fetch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the meca-fetch CLI.
var rootCmd = &cobra.Command{
	Use:   "meca-fetch",
	Short: "Selective indexer and full-text fetcher for bioRxiv MECA deposits",
	Long: `meca-fetch locates bioRxiv full-text content stored as MECA archives in
the requester-pays monthly deposit bucket. It indexes a month's deposits by
probing only the tail of each archive for its DOI, then downloads a specific
archive in full only when its DOI is actually wanted.

Subcommands: index builds or refreshes a month's DOI index, fetch retrieves
full text for one or more articles, cache reports cache contents.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		secrets.ExportAWS(s)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./meca-fetch.yaml or ~/.config/meca-fetch/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default info)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("meca-fetch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "meca-fetch"))
		}
	}

	viper.SetEnvPrefix("MECA_FETCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig materializes the subsystem configuration from viper plus
// persistent flags, with defaults filled in.
func loadConfig(cmd *cobra.Command) types.Config {
	var cfg types.Config
	viper.UnmarshalKey("store", &cfg.Store)
	viper.UnmarshalKey("index", &cfg.Index)
	viper.UnmarshalKey("fetch", &cfg.Fetch)
	cfg.LogLevel = viper.GetString("log_level")

	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	cfg.SetDefaults()
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
