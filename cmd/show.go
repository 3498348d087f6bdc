package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-odi-features/config"
	"github.com/pable/go-odi-features/internal/report"
	"github.com/pable/go-odi-features/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show <match-id>",
	Short: "Show one match's base row and derived features",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	matchID := args[0]

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	db, err := storage.Open(resolveDBPath(cfg))
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	m, err := db.GetMatch(matchID)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if m == nil {
		fmt.Fprintf(os.Stderr, "No match found with id %q\n", matchID)
		return nil
	}

	report.PrintMatchSummary(os.Stdout, *m)
	fmt.Fprintf(os.Stdout, "  %s: %d/%d off %d balls\n", m.Team0, m.Runs0, m.Wickets0, m.Deliveries0)
	fmt.Fprintf(os.Stdout, "  %s: %d/%d off %d balls\n\n", m.Team1, m.Runs1, m.Wickets1, m.Deliveries1)

	fr, err := db.GetFeatureRow(matchID)
	if err != nil {
		return fmt.Errorf("query features: %w", err)
	}
	if fr == nil {
		fmt.Fprintln(os.Stdout, "No features derived yet. Run 'odifeatures features'.")
		return nil
	}
	report.PrintFeatureTable(os.Stdout, *fr)
	return nil
}
