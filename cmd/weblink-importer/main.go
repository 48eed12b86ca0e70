// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the weblink-importer CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/weblink-importer/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the weblink-importer CLI.
var rootCmd = &cobra.Command{
	Use:   "weblink-importer",
	Short: "Bulk-import Markdown files into Capacities as weblinks",
	Long: `weblink-importer creates one Capacities Weblink per local Markdown file.
Each file becomes a /save-weblink request carrying the file contents as
mdText; calls are spaced out using the service's rate-limit headers.

Settings come from the environment (CAPACITIES_API_KEY, SPACE_ID,
VAULT_PATH, GLOB, MAX_FILES, SLEEP_SECONDS, ADD_FILENAME_HEADER, TAGS,
DESCRIPTION), an optional weblink-importer.yaml config file, and .secrets/
credential files.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(secrets.DefaultDir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./weblink-importer.yaml or ~/.config/weblink-importer/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("weblink-importer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "weblink-importer"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
