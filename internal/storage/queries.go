package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pable/go-odi-features/internal/model"
)

// ReplaceMatches replaces the whole base dataset inside one transaction, so
// a rebuild is atomic and re-running on identical input yields an identical
// table.
func (db *DB) ReplaceMatches(matches []model.Match) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM matches"); err != nil {
		return fmt.Errorf("clear matches: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO matches(
			match_id, country, start_date, event, team_0, team_1,
			toss_winner, toss_decision,
			runs_0, wickets_0, deliveries_0,
			runs_1, wickets_1, deliveries_1,
			result
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range matches {
		_, err = stmt.Exec(
			m.MatchID, m.Country, m.StartDate.Format(model.DateFormat), m.Event,
			m.Team0, m.Team1, m.TossWinner, m.TossDecision,
			m.Runs0, m.Wickets0, m.Deliveries0,
			m.Runs1, m.Wickets1, m.Deliveries1,
			m.Result,
		)
		if err != nil {
			return fmt.Errorf("insert match %s: %w", m.MatchID, err)
		}
	}
	return tx.Commit()
}

const matchColumns = `match_id, country, start_date, event, team_0, team_1,
	toss_winner, toss_decision,
	runs_0, wickets_0, deliveries_0, runs_1, wickets_1, deliveries_1, result`

func scanMatch(scan func(dest ...any) error) (model.Match, error) {
	var m model.Match
	var dateStr string
	err := scan(
		&m.MatchID, &m.Country, &dateStr, &m.Event, &m.Team0, &m.Team1,
		&m.TossWinner, &m.TossDecision,
		&m.Runs0, &m.Wickets0, &m.Deliveries0,
		&m.Runs1, &m.Wickets1, &m.Deliveries1,
		&m.Result,
	)
	if err != nil {
		return m, err
	}
	m.StartDate, err = time.Parse(model.DateFormat, dateStr)
	return m, err
}

// ListMatches returns the base dataset in chronological order.
func (db *DB) ListMatches() ([]model.Match, error) {
	rows, err := db.conn.Query(
		"SELECT " + matchColumns + " FROM matches ORDER BY start_date, match_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Match
	for rows.Next() {
		m, err := scanMatch(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetMatch returns the base row for one match id, or nil if absent.
func (db *DB) GetMatch(matchID string) (*model.Match, error) {
	row := db.conn.QueryRow(
		"SELECT "+matchColumns+" FROM matches WHERE match_id = ?", matchID)
	m, err := scanMatch(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetTeamMatches returns all base rows a team appears in, chronologically.
func (db *DB) GetTeamMatches(team string) ([]model.Match, error) {
	rows, err := db.conn.Query(
		"SELECT "+matchColumns+" FROM matches WHERE team_0 = ? OR team_1 = ? ORDER BY start_date, match_id",
		team, team)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Match
	for rows.Next() {
		m, err := scanMatch(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ReplaceFeatures replaces the feature dataset inside one transaction.
func (db *DB) ReplaceFeatures(rows []model.FeatureRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM features"); err != nil {
		return fmt.Errorf("clear features: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO features(
			match_id, team_0, team_1,
			home_adv_0, home_adv_1, prior_matches_0, prior_matches_1,
			batting_avg_0, batting_sr_0, bowling_avg_0, economy_0, win_pct_0,
			batting_avg_1, batting_sr_1, bowling_avg_1, economy_1, win_pct_1
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err = stmt.Exec(
			r.MatchID, r.Team0, r.Team1,
			r.HomeAdv0, r.HomeAdv1, r.PriorMatches0, r.PriorMatches1,
			nullFloat(r.BattingAvg0), nullFloat(r.BattingSR0), nullFloat(r.BowlingAvg0),
			nullFloat(r.Economy0), nullFloat(r.WinPct0),
			nullFloat(r.BattingAvg1), nullFloat(r.BattingSR1), nullFloat(r.BowlingAvg1),
			nullFloat(r.Economy1), nullFloat(r.WinPct1),
		)
		if err != nil {
			return fmt.Errorf("insert features for %s: %w", r.MatchID, err)
		}
	}
	return tx.Commit()
}

const featureColumns = `match_id, team_0, team_1,
	home_adv_0, home_adv_1, prior_matches_0, prior_matches_1,
	batting_avg_0, batting_sr_0, bowling_avg_0, economy_0, win_pct_0,
	batting_avg_1, batting_sr_1, bowling_avg_1, economy_1, win_pct_1`

func scanFeatureRow(scan func(dest ...any) error) (model.FeatureRow, error) {
	var r model.FeatureRow
	var ba0, sr0, bw0, ec0, wp0 sql.NullFloat64
	var ba1, sr1, bw1, ec1, wp1 sql.NullFloat64
	err := scan(
		&r.MatchID, &r.Team0, &r.Team1,
		&r.HomeAdv0, &r.HomeAdv1, &r.PriorMatches0, &r.PriorMatches1,
		&ba0, &sr0, &bw0, &ec0, &wp0,
		&ba1, &sr1, &bw1, &ec1, &wp1,
	)
	if err != nil {
		return r, err
	}
	r.BattingAvg0, r.BattingSR0, r.BowlingAvg0 = floatPtr(ba0), floatPtr(sr0), floatPtr(bw0)
	r.Economy0, r.WinPct0 = floatPtr(ec0), floatPtr(wp0)
	r.BattingAvg1, r.BattingSR1, r.BowlingAvg1 = floatPtr(ba1), floatPtr(sr1), floatPtr(bw1)
	r.Economy1, r.WinPct1 = floatPtr(ec1), floatPtr(wp1)
	return r, nil
}

// ListFeatures returns the feature dataset in the base dataset's order.
// Columns are qualified because team_0/team_1 exist in both joined tables.
func (db *DB) ListFeatures() ([]model.FeatureRow, error) {
	rows, err := db.conn.Query(`
		SELECT f.match_id, f.team_0, f.team_1,
		       f.home_adv_0, f.home_adv_1, f.prior_matches_0, f.prior_matches_1,
		       f.batting_avg_0, f.batting_sr_0, f.bowling_avg_0, f.economy_0, f.win_pct_0,
		       f.batting_avg_1, f.batting_sr_1, f.bowling_avg_1, f.economy_1, f.win_pct_1
		FROM features f
		JOIN matches m ON m.match_id = f.match_id
		ORDER BY m.start_date, f.match_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.FeatureRow
	for rows.Next() {
		r, err := scanFeatureRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetFeatureRow returns the feature row for one match id, or nil if absent.
func (db *DB) GetFeatureRow(matchID string) (*model.FeatureRow, error) {
	row := db.conn.QueryRow(
		"SELECT "+featureColumns+" FROM features WHERE match_id = ?", matchID)
	r, err := scanFeatureRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// InsertBuildRun records the provenance of one assembler pass.
func (db *DB) InsertBuildRun(run model.BuildRun) error {
	_, err := db.conn.Exec(`
		INSERT INTO builds(id, built_at, source_dir, files_seen, rows_kept, skipped)
		VALUES (?,?,?,?,?,?)`,
		run.ID, run.BuiltAt, run.SourceDir, run.FilesSeen, run.RowsKept, run.Skipped)
	return err
}

// ListBuildRuns returns recorded assembler passes, most recent first.
func (db *DB) ListBuildRuns() ([]model.BuildRun, error) {
	rows, err := db.conn.Query(`
		SELECT id, built_at, source_dir, files_seen, rows_kept, skipped
		FROM builds ORDER BY built_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BuildRun
	for rows.Next() {
		var r model.BuildRun
		if err := rows.Scan(&r.ID, &r.BuiltAt, &r.SourceDir, &r.FilesSeen, &r.RowsKept, &r.Skipped); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetOverview returns high-level counts for the summary command.
func (db *DB) GetOverview() (*model.DatasetOverview, error) {
	var ov model.DatasetOverview
	var earliest, latest sql.NullString
	err := db.conn.QueryRow(`
		SELECT COUNT(*), MIN(start_date), MAX(start_date) FROM matches`).
		Scan(&ov.TotalMatches, &earliest, &latest)
	if err != nil {
		return nil, err
	}
	ov.EarliestMatch, ov.LatestMatch = earliest.String, latest.String

	err = db.conn.QueryRow(`
		SELECT COUNT(DISTINCT team) FROM (
			SELECT team_0 AS team FROM matches
			UNION SELECT team_1 FROM matches)`).Scan(&ov.UniqueTeams)
	if err != nil {
		return nil, err
	}
	if err := db.conn.QueryRow("SELECT COUNT(DISTINCT country) FROM matches").Scan(&ov.UniqueHosts); err != nil {
		return nil, err
	}
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM features").Scan(&ov.FeatureRows); err != nil {
		return nil, err
	}
	return &ov, nil
}

// GetTeamSummaries returns per-team match/win counts over the base dataset.
func (db *DB) GetTeamSummaries() ([]model.TeamSummary, error) {
	rows, err := db.conn.Query(`
		SELECT team, COUNT(*), SUM(win), SUM(home_win) FROM (
			SELECT team_0 AS team,
			       CASE WHEN result = 0 THEN 1 ELSE 0 END AS win,
			       CASE WHEN result = 0 AND team_0 = country THEN 1 ELSE 0 END AS home_win
			FROM matches
			UNION ALL
			SELECT team_1,
			       CASE WHEN result = 1 THEN 1 ELSE 0 END,
			       CASE WHEN result = 1 AND team_1 = country THEN 1 ELSE 0 END
			FROM matches)
		GROUP BY team ORDER BY team`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TeamSummary
	for rows.Next() {
		var s model.TeamSummary
		if err := rows.Scan(&s.Team, &s.Matches, &s.Wins, &s.HomeWins); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// QueryRaw runs an arbitrary query and returns stringified rows for display.
func (db *DB) QueryRaw(query string) (cols []string, out [][]string, err error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err = rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
