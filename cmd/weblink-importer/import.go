package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/weblink-importer/internal/config"
	"github.com/pdiddy/weblink-importer/internal/importer"
	"github.com/pdiddy/weblink-importer/internal/vault"
	"github.com/pdiddy/weblink-importer/internal/weblink"
	"github.com/pdiddy/weblink-importer/pkg/types"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Create one Capacities weblink per matched Markdown file",
	Long: `Import scans the vault for files matching the glob pattern, shapes one
/save-weblink payload per file, and posts them sequentially. Empty files
are skipped without a request; HTTP failures are counted and the run
continues. The throttle reads the response rate-limit headers and sleeps
between calls, falling back to the fixed delay.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	importCmd.Flags().String("vault", "", "root directory scanned for files (default $VAULT_PATH)")
	importCmd.Flags().String("glob", "", `filename pattern matched against base names (default "*.md")`)
	importCmd.Flags().Int("max-files", 0, "process at most N files in sorted order, 0 = unlimited")
	importCmd.Flags().Int("sleep", 0, "fallback delay between calls in seconds (default 7)")
	importCmd.Flags().String("report", "", "write a YAML run report to this path")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.RequireAuth(cfg); err != nil {
		return err
	}

	files, err := vault.List(cfg.VaultPath, cfg.Glob, cfg.MaxFiles)
	if err != nil {
		return err
	}

	client := &weblink.Client{
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		Token:      cfg.APIKey,
		UserAgent:  cfg.UserAgent,
	}

	started := time.Now()
	result, runErr := importer.Run(cmd.Context(), client, files, cfg, os.Stdout)

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		report := result.Report(cfg, started, time.Now())
		if err := importer.WriteReport(reportPath, report); err != nil {
			if runErr == nil {
				runErr = err
			}
		} else {
			fmt.Printf("Report written to %s\n", reportPath)
		}
	}

	// Per-file failures are visible in the output and report; only
	// transport-level errors make the run itself fail.
	return runErr
}

// loadConfig builds the run configuration, letting changed flags override
// environment and config-file settings.
func loadConfig(cmd *cobra.Command) (types.ImportConfig, error) {
	v := viper.GetViper()
	f := cmd.Flags()

	if f.Changed("vault") {
		s, _ := f.GetString("vault")
		v.Set("vault_path", s)
	}
	if f.Changed("glob") {
		s, _ := f.GetString("glob")
		v.Set("glob", s)
	}
	if f.Changed("max-files") {
		n, _ := f.GetInt("max-files")
		v.Set("max_files", n)
	}
	if f.Changed("sleep") {
		n, _ := f.GetInt("sleep")
		v.Set("sleep_seconds", n)
	}

	cfg, err := config.Load(v, loadedSecrets)
	if err != nil {
		return cfg, err
	}

	if d, err := f.GetDuration("timeout"); err == nil && d > 0 {
		cfg.Timeout = d
	}
	cfg.UserAgent = "weblink-importer/" + version
	return cfg, nil
}
