package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pable/go-odi-features/config"
	"github.com/pable/go-odi-features/internal/dataset"
	"github.com/pable/go-odi-features/internal/model"
	"github.com/pable/go-odi-features/internal/storage"
)

var buildDataDir string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the base dataset from a directory of raw match JSON files",
	Long: `Parse every raw match record under the data directory, keep the eligible
decisive matches, and store them as the base dataset (deduplicated by match id,
sorted by start date). Re-running over the same input replaces the dataset with
an identical one.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildDataDir, "data", "", "directory of raw match JSON files (default: data.raw_dir from config)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	rules, err := cfg.Rules()
	if err != nil {
		return err
	}

	dir := buildDataDir
	if dir == "" {
		dir = cfg.Data.RawDir
	}
	if dir == "" {
		return fmt.Errorf("no data directory: pass --data or set data.raw_dir in the config")
	}

	path := resolveDBPath(cfg)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(path)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	fmt.Fprintf(os.Stdout, "Building base dataset from %s...\n", dir)
	res, err := dataset.New(rules).BuildDir(dir)
	if err != nil {
		return fmt.Errorf("build dataset: %w", err)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if err := db.ReplaceMatches(res.Matches); err != nil {
		return fmt.Errorf("store matches: %w", err)
	}

	run := model.BuildRun{
		ID:        uuid.NewString(),
		BuiltAt:   time.Now().UTC().Format(time.RFC3339),
		SourceDir: dir,
		FilesSeen: res.FilesSeen,
		RowsKept:  len(res.Matches),
		Skipped:   res.Skipped,
	}
	if err := db.InsertBuildRun(run); err != nil {
		return fmt.Errorf("record build run: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Files seen: %d  |  Rows kept: %d  |  Skipped: %d\n",
		res.FilesSeen, len(res.Matches), res.Skipped)
	if n := len(res.Matches); n > 0 {
		fmt.Fprintf(os.Stdout, "Date range: %s → %s\n",
			res.Matches[0].StartDate.Format(model.DateFormat),
			res.Matches[n-1].StartDate.Format(model.DateFormat))
	}
	fmt.Fprintf(os.Stdout, "Build id: %s\n", run.ID)
	return nil
}
