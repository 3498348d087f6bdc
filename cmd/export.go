package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/go-odi-features/config"
	"github.com/pable/go-odi-features/internal/model"
	"github.com/pable/go-odi-features/internal/storage"
)

var (
	exportTable string
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the base or feature dataset as CSV",
	Long: `Write the stored base dataset or feature dataset as a CSV file readable by
downstream statistical tooling. Missing feature values (teams without prior
history) are written as empty cells, not zeros.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportTable, "table", "base", "dataset to export: base or features")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	db, err := storage.Open(resolveDBPath(cfg))
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	var out io.Writer = os.Stdout
	var f *os.File
	if exportOut != "" {
		f, err = os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		out = f
	}

	w := csv.NewWriter(out)
	switch exportTable {
	case "base":
		err = exportBase(db, w)
	case "features":
		err = exportFeatures(db, w)
	default:
		err = fmt.Errorf("unknown table %q: want base or features", exportTable)
	}
	if err != nil {
		if f != nil {
			f.Close()
		}
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		if f != nil {
			f.Close()
		}
		return fmt.Errorf("write csv: %w", err)
	}
	if f != nil {
		// A short write can surface only at close; don't report success past it.
		if err := f.Close(); err != nil {
			return fmt.Errorf("close output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Exported %s dataset to %s\n", exportTable, exportOut)
	}
	return nil
}

func exportBase(db *storage.DB, w *csv.Writer) error {
	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	header := []string{
		"match_id", "country", "start_date", "event", "team_0", "team_1",
		"toss_winner", "toss_decision",
		"runs_0", "wickets_0", "deliveries_0",
		"runs_1", "wickets_1", "deliveries_1",
		"result",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, m := range matches {
		rec := []string{
			m.MatchID, m.Country, m.StartDate.Format(model.DateFormat), m.Event,
			m.Team0, m.Team1,
			strconv.Itoa(m.TossWinner), strconv.Itoa(m.TossDecision),
			strconv.Itoa(m.Runs0), strconv.Itoa(m.Wickets0), strconv.Itoa(m.Deliveries0),
			strconv.Itoa(m.Runs1), strconv.Itoa(m.Wickets1), strconv.Itoa(m.Deliveries1),
			strconv.Itoa(m.Result),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func exportFeatures(db *storage.DB, w *csv.Writer) error {
	rows, err := db.ListFeatures()
	if err != nil {
		return fmt.Errorf("list features: %w", err)
	}
	header := []string{
		"match_id", "team_0", "team_1",
		"home_adv_0", "home_adv_1", "prior_matches_0", "prior_matches_1",
		"batting_avg_0", "batting_sr_0", "bowling_avg_0", "economy_0", "win_pct_0",
		"batting_avg_1", "batting_sr_1", "bowling_avg_1", "economy_1", "win_pct_1",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.MatchID, r.Team0, r.Team1,
			strconv.Itoa(r.HomeAdv0), strconv.Itoa(r.HomeAdv1),
			strconv.Itoa(r.PriorMatches0), strconv.Itoa(r.PriorMatches1),
			csvFloat(r.BattingAvg0), csvFloat(r.BattingSR0), csvFloat(r.BowlingAvg0),
			csvFloat(r.Economy0), csvFloat(r.WinPct0),
			csvFloat(r.BattingAvg1), csvFloat(r.BattingSR1), csvFloat(r.BowlingAvg1),
			csvFloat(r.Economy1), csvFloat(r.WinPct1),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// csvFloat renders a nullable statistic; missing history stays an empty cell.
func csvFloat(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', 4, 64)
}
