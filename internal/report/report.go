// Package report renders dataset tables for the CLI.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-odi-features/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// PrintMatchSummary prints a one-line summary header for a match.
func PrintMatchSummary(w io.Writer, m model.Match) {
	fmt.Fprintf(w, "\n%s  |  %s v %s  |  %s (%s)  |  Winner: %s\n\n",
		m.StartDate.Format(model.DateFormat), m.Team0, m.Team1, m.Event, m.Country, m.Winner())
}

// PrintFeatureTable prints one feature row as a two-line per-team table.
func PrintFeatureTable(w io.Writer, r model.FeatureRow) {
	table := newTable(w)
	table.Header("TEAM", "PRIOR", "HOME", "BAT AVG", "STRIKE RATE", "BOWL AVG", "ECONOMY", "WIN%")
	table.Append(
		r.Team0,
		strconv.Itoa(r.PriorMatches0),
		fmt.Sprintf("%+d", r.HomeAdv0),
		fmtStat(r.BattingAvg0, 2),
		fmtStat(r.BattingSR0, 2),
		fmtStat(r.BowlingAvg0, 2),
		fmtStat(r.Economy0, 2),
		fmtStat(r.WinPct0, 1),
	)
	table.Append(
		r.Team1,
		strconv.Itoa(r.PriorMatches1),
		fmt.Sprintf("%+d", r.HomeAdv1),
		fmtStat(r.BattingAvg1, 2),
		fmtStat(r.BattingSR1, 2),
		fmtStat(r.BowlingAvg1, 2),
		fmtStat(r.Economy1, 2),
		fmtStat(r.WinPct1, 1),
	)
	table.Render()
}

// PrintTeamFormTable prints a team's chronological match history.
func PrintTeamFormTable(w io.Writer, team string, matches []model.Match) {
	table := newTable(w)
	table.Header("DATE", "OPPONENT", "HOST", "FOR", "AGAINST", "RESULT")
	for _, m := range matches {
		n := m.TeamIndex(team)
		if n < 0 {
			continue
		}
		opponent, forScore, againstScore := m.Team1, scoreline(m.Runs0, m.Wickets0), scoreline(m.Runs1, m.Wickets1)
		if n == 1 {
			opponent, forScore, againstScore = m.Team0, scoreline(m.Runs1, m.Wickets1), scoreline(m.Runs0, m.Wickets0)
		}
		result := "L"
		if m.Result == n {
			result = "W"
		}
		table.Append(m.StartDate.Format(model.DateFormat), opponent, m.Country, forScore, againstScore, result)
	}
	table.Render()
}

// PrintTeamSummaryTable prints per-team aggregates over the base dataset.
func PrintTeamSummaryTable(w io.Writer, summaries []model.TeamSummary) {
	table := newTable(w)
	table.Header("TEAM", "MATCHES", "WINS", "HOME WINS", "WIN%")
	for _, s := range summaries {
		table.Append(
			s.Team,
			strconv.Itoa(s.Matches),
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.HomeWins),
			fmt.Sprintf("%.1f%%", s.WinPct()),
		)
	}
	table.Render()
}

func scoreline(runs, wickets int) string {
	return fmt.Sprintf("%d/%d", runs, wickets)
}

func fmtStat(p *float64, prec int) string {
	if p == nil {
		return "—"
	}
	return strconv.FormatFloat(*p, 'f', prec, 64)
}
