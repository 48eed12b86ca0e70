package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/weblink-importer/internal/importer"
	"github.com/pdiddy/weblink-importer/internal/vault"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Preview which files an import would send, without network calls",
	Long: `Scan enumerates the vault the same way import does and prints the planned
action per file: files with content would be created, empty or unreadable
files would be skipped. No credentials and no network access are needed.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().String("vault", "", "root directory scanned for files (default $VAULT_PATH)")
	scanCmd.Flags().String("glob", "", `filename pattern matched against base names (default "*.md")`)
	scanCmd.Flags().Int("max-files", 0, "process at most N files in sorted order, 0 = unlimited")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	files, err := vault.List(cfg.VaultPath, cfg.Glob, cfg.MaxFiles)
	if err != nil {
		return err
	}

	importer.Plan(files, cfg, os.Stdout)
	return nil
}
