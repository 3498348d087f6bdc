package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-odi-features/config"
)

var (
	dbPath  string
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "odifeatures",
	Short: "ODI match feature pipeline",
	Long:  "Parse raw ball-by-ball ODI match records and derive weighted match-outcome features.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".odifeatures", "odi.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
}

// resolveDBPath prefers an explicit --db flag, then the config file, then
// the default under the user's home.
func resolveDBPath(cfg *config.Config) string {
	if rootCmd.PersistentFlags().Changed("db") {
		return dbPath
	}
	if cfg != nil && cfg.Storage.DBPath != "" {
		return cfg.Storage.DBPath
	}
	return dbPath
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
