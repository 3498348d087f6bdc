package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-odi-features/config"
	"github.com/pable/go-odi-features/internal/model"
	"github.com/pable/go-odi-features/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all matches in the base dataset",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	db, err := storage.Open(resolveDBPath(cfg))
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'odifeatures build --data <dir>' to add some.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-10s  %-10s  %-14s  %-14s  %-12s  %9s  %9s  %s\n",
		"MATCH", "DATE", "TEAM 0", "TEAM 1", "HOST", "SCORE 0", "SCORE 1", "WINNER")
	fmt.Fprintf(os.Stdout, "%-10s  %-10s  %-14s  %-14s  %-12s  %9s  %9s  %s\n",
		"──────────", "──────────", "──────────────", "──────────────", "────────────", "─────────", "─────────", "──────")
	for _, m := range matches {
		fmt.Fprintf(os.Stdout, "%-10s  %-10s  %-14s  %-14s  %-12s  %9s  %9s  %s\n",
			m.MatchID, m.StartDate.Format(model.DateFormat), m.Team0, m.Team1, m.Country,
			fmt.Sprintf("%d/%d", m.Runs0, m.Wickets0),
			fmt.Sprintf("%d/%d", m.Runs1, m.Wickets1),
			m.Winner())
	}
	return nil
}
