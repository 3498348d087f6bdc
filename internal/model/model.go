package model

import "time"

// DateFormat is the calendar-date layout used throughout the pipeline
// (cricsheet dates carry no time component).
const DateFormat = "2006-01-02"

// ---- Raw records read by the parser ----

// RawMatch mirrors the cricsheet per-match JSON schema. Only the fields the
// pipeline consumes are declared; everything else in the file is ignored.
type RawMatch struct {
	Info    RawInfo      `json:"info"`
	Innings []RawInnings `json:"innings"`
}

type RawInfo struct {
	City    string     `json:"city"`
	Dates   []string   `json:"dates"`
	Event   RawEvent   `json:"event"`
	Teams   []string   `json:"teams"`
	Toss    RawToss    `json:"toss"`
	Outcome RawOutcome `json:"outcome"`
	Venue   string     `json:"venue"`
}

type RawEvent struct {
	Name string `json:"name"`
}

type RawToss struct {
	Winner   string `json:"winner"`
	Decision string `json:"decision"` // "bat" or "field"
}

// RawOutcome carries either a winner or a non-result marker ("tie",
// "no result"), never both.
type RawOutcome struct {
	Winner string `json:"winner"`
	Result string `json:"result"`
}

type RawInnings struct {
	Team  string    `json:"team"`
	Overs []RawOver `json:"overs"`
}

type RawOver struct {
	Over       int           `json:"over"`
	Deliveries []RawDelivery `json:"deliveries"`
}

type RawDelivery struct {
	Batter  string         `json:"batter"`
	Bowler  string         `json:"bowler"`
	Runs    RawRuns        `json:"runs"`
	Extras  map[string]int `json:"extras"`
	Wickets []RawWicket    `json:"wickets"`
}

type RawRuns struct {
	Batter int `json:"batter"`
	Extras int `json:"extras"`
	Total  int `json:"total"`
}

type RawWicket struct {
	Kind      string `json:"kind"`
	PlayerOut string `json:"player_out"`
}

// ---- Base dataset ----

// Match is one row of the base dataset: the flat projection of a single
// eligible, decisive ODI. Teams are indexed 0/1 by lexicographic order of
// their names, and every binary encoding (toss winner, result) is relative
// to that ordering, never to batting order.
type Match struct {
	MatchID   string
	Country   string // host nation, mapped from the record's city
	StartDate time.Time
	Event     string
	Team0     string
	Team1     string

	TossWinner   int // 0 = Team0 won the toss
	TossDecision int // 0 = toss winner chose to bat

	Runs0       int
	Wickets0    int
	Deliveries0 int // legal balls faced by Team0
	Runs1       int
	Wickets1    int
	Deliveries1 int

	Result int // 0 = Team0 won
}

// Winner returns the name of the winning team.
func (m *Match) Winner() string {
	if m.Result == 0 {
		return m.Team0
	}
	return m.Team1
}

// TeamIndex returns 0 or 1 for a participating team name, -1 otherwise.
func (m *Match) TeamIndex(team string) int {
	switch team {
	case m.Team0:
		return 0
	case m.Team1:
		return 1
	}
	return -1
}

// ---- Feature dataset ----

// FeatureRow carries the historically-causal weighted statistics for one
// base-dataset row. Weighted fields are nil when the team has no qualifying
// prior match at that date: zero is a legitimate value (a winless team has a
// real 0% win rate), so missing history is never encoded as 0.
type FeatureRow struct {
	MatchID string
	Team0   string
	Team1   string

	HomeAdv0 int // +1 host, -1 opponent is host, 0 neutral
	HomeAdv1 int

	PriorMatches0 int
	PriorMatches1 int

	BattingAvg0 *float64
	BattingSR0  *float64
	BowlingAvg0 *float64
	Economy0    *float64
	WinPct0     *float64

	BattingAvg1 *float64
	BattingSR1  *float64
	BowlingAvg1 *float64
	Economy1    *float64
	WinPct1     *float64
}

// BuildRun records the provenance of one assembler pass over a raw directory.
type BuildRun struct {
	ID        string // uuid
	BuiltAt   string
	SourceDir string
	FilesSeen int
	RowsKept  int
	Skipped   int
}

// TeamSummary is a per-team aggregate for the summary command.
type TeamSummary struct {
	Team     string
	Matches  int
	Wins     int
	HomeWins int
}

// WinPct returns the unweighted historical win percentage.
func (s *TeamSummary) WinPct() float64 {
	if s.Matches == 0 {
		return 0
	}
	return 100 * float64(s.Wins) / float64(s.Matches)
}

// DatasetOverview is a lightweight record for the summary command.
type DatasetOverview struct {
	TotalMatches  int
	EarliestMatch string
	LatestMatch   string
	UniqueTeams   int
	UniqueHosts   int
	FeatureRows   int
}
