package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-odi-features/config"
	"github.com/pable/go-odi-features/internal/report"
	"github.com/pable/go-odi-features/internal/storage"
)

var teamCmd = &cobra.Command{
	Use:   "team <name>",
	Short: "Chronological match history for one team",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeam,
}

func runTeam(cmd *cobra.Command, args []string) error {
	team := args[0]

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	db, err := storage.Open(resolveDBPath(cfg))
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.GetTeamMatches(team)
	if err != nil {
		return fmt.Errorf("query team matches: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintf(os.Stdout, "No matches found for %q.\n", team)
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n%s — %d matches\n\n", team, len(matches))
	report.PrintTeamFormTable(os.Stdout, team, matches)
	return nil
}
