package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/go-odi-features/config"
	"github.com/pable/go-odi-features/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the dataset database",
	Long: `Run an arbitrary SQL query against the dataset database and print results as a table.

Schema overview:
  matches(match_id, country, start_date, event, team_0, team_1,
    toss_winner, toss_decision, runs_0, wickets_0, deliveries_0,
    runs_1, wickets_1, deliveries_1, result)
  features(match_id, team_0, team_1, home_adv_0, home_adv_1,
    prior_matches_0, prior_matches_1, batting_avg_0, batting_sr_0,
    bowling_avg_0, economy_0, win_pct_0, ...same for _1)
  builds(id, built_at, source_dir, files_seen, rows_kept, skipped)

Note: start_date is stored as TEXT (YYYY-MM-DD), so lexicographic comparison
works: WHERE start_date >= '2024-01-01'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	db, err := storage.Open(resolveDBPath(cfg))
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
