package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-odi-features/config"
	"github.com/pable/go-odi-features/internal/features"
	"github.com/pable/go-odi-features/internal/storage"
)

var featuresHalfLife float64

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Derive weighted features from the stored base dataset",
	Long: `Compute recency-weighted batting, bowling and win-rate statistics for both
teams of every stored match, using only matches that started strictly earlier.
Teams without prior history get NULL features, never zero.`,
	Args: cobra.NoArgs,
	RunE: runFeatures,
}

func init() {
	featuresCmd.Flags().Float64Var(&featuresHalfLife, "half-life", 0,
		"recency half-life in days (default: features.half_life_days from config)")
}

func runFeatures(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	halfLife := featuresHalfLife
	if halfLife <= 0 {
		halfLife = cfg.Features.HalfLifeDays
	}

	db, err := storage.Open(resolveDBPath(cfg))
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("load base dataset: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "Base dataset is empty. Run 'odifeatures build' first.")
		return nil
	}

	rows := features.NewDeriver(halfLife).Derive(matches)
	if err := db.ReplaceFeatures(rows); err != nil {
		return fmt.Errorf("store features: %w", err)
	}

	complete := 0
	for _, r := range rows {
		if r.BattingAvg0 != nil && r.BattingAvg1 != nil {
			complete++
		}
	}
	fmt.Fprintf(os.Stdout, "Derived %d feature rows (half-life %.0f days), %d with history for both teams.\n",
		len(rows), halfLife, complete)
	return nil
}
