package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-odi-features/config"
	"github.com/pable/go-odi-features/internal/report"
	"github.com/pable/go-odi-features/internal/storage"
)

// summaryCmd displays a high-level overview of the stored datasets.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the datasets",
	Long: `Display aggregate statistics about the stored base and feature datasets:
match count, date range, per-team win records, and recorded build runs.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	db, err := storage.Open(resolveDBPath(cfg))
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	ov, err := db.GetOverview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.TotalMatches == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'odifeatures build --data <dir>' to add some.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n=== Dataset Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Matches stored : %d\n", ov.TotalMatches)
	fmt.Fprintf(os.Stdout, "  Date range     : %s → %s\n", ov.EarliestMatch, ov.LatestMatch)
	fmt.Fprintf(os.Stdout, "  Teams          : %d\n", ov.UniqueTeams)
	fmt.Fprintf(os.Stdout, "  Host nations   : %d\n", ov.UniqueHosts)
	fmt.Fprintf(os.Stdout, "  Feature rows   : %d\n", ov.FeatureRows)

	summaries, err := db.GetTeamSummaries()
	if err != nil {
		return fmt.Errorf("get team summaries: %w", err)
	}
	fmt.Fprintf(os.Stdout, "\n--- Teams ---\n\n")
	report.PrintTeamSummaryTable(os.Stdout, summaries)

	builds, err := db.ListBuildRuns()
	if err != nil {
		return fmt.Errorf("get build runs: %w", err)
	}
	if len(builds) > 0 {
		fmt.Fprintf(os.Stdout, "\n--- Builds ---\n\n")
		for _, b := range builds {
			fmt.Fprintf(os.Stdout, "  %s  %s  files=%d kept=%d skipped=%d  (%s)\n",
				b.BuiltAt, b.ID[:8], b.FilesSeen, b.RowsKept, b.Skipped, b.SourceDir)
		}
	}
	return nil
}
