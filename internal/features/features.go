// Package features derives per-match weighted performance statistics from
// the base dataset. Every statistic for a match at date D is computed from
// matches strictly before D, so no row ever sees its own or a later result.
package features

import (
	"sort"
	"time"

	"github.com/pable/go-odi-features/internal/model"
)

// teamMatch is one prior appearance of a team, seen from that team's side.
type teamMatch struct {
	date             time.Time
	runsScored       int
	wicketsLost      int
	deliveriesFaced  int
	runsConceded     int
	wicketsTaken     int
	deliveriesBowled int
	won              bool
}

// Index holds each team's appearances in ascending date order. Building it
// once replaces a full-dataset rescan per row.
type Index map[string][]teamMatch

// BuildIndex constructs the per-team chronological index from the base
// dataset. The input does not need to be pre-sorted.
func BuildIndex(matches []model.Match) Index {
	ix := make(Index)
	for _, m := range matches {
		ix[m.Team0] = append(ix[m.Team0], teamMatch{
			date:             m.StartDate,
			runsScored:       m.Runs0,
			wicketsLost:      m.Wickets0,
			deliveriesFaced:  m.Deliveries0,
			runsConceded:     m.Runs1,
			wicketsTaken:     m.Wickets1,
			deliveriesBowled: m.Deliveries1,
			won:              m.Result == 0,
		})
		ix[m.Team1] = append(ix[m.Team1], teamMatch{
			date:             m.StartDate,
			runsScored:       m.Runs1,
			wicketsLost:      m.Wickets1,
			deliveriesFaced:  m.Deliveries1,
			runsConceded:     m.Runs0,
			wicketsTaken:     m.Wickets0,
			deliveriesBowled: m.Deliveries0,
			won:              m.Result == 1,
		})
	}
	for team := range ix {
		tms := ix[team]
		sort.Slice(tms, func(i, j int) bool { return tms[i].date.Before(tms[j].date) })
	}
	return ix
}

// Before returns the team's appearances strictly earlier than d.
func (ix Index) Before(team string, d time.Time) []teamMatch {
	tms := ix[team]
	n := sort.Search(len(tms), func(i int) bool { return !tms[i].date.Before(d) })
	return tms[:n]
}

// Deriver computes feature rows from the base dataset.
type Deriver struct {
	halfLifeDays float64
}

// NewDeriver returns a Deriver with the given recency half-life in days.
// Non-positive values fall back to DefaultHalfLifeDays.
func NewDeriver(halfLifeDays float64) *Deriver {
	if halfLifeDays <= 0 {
		halfLifeDays = DefaultHalfLifeDays
	}
	return &Deriver{halfLifeDays: halfLifeDays}
}

// Derive computes one feature row per base-dataset row.
func (d *Deriver) Derive(matches []model.Match) []model.FeatureRow {
	ix := BuildIndex(matches)
	rows := make([]model.FeatureRow, 0, len(matches))
	for _, m := range matches {
		s0 := d.teamStats(ix.Before(m.Team0, m.StartDate), m.StartDate)
		s1 := d.teamStats(ix.Before(m.Team1, m.StartDate), m.StartDate)
		rows = append(rows, model.FeatureRow{
			MatchID:       m.MatchID,
			Team0:         m.Team0,
			Team1:         m.Team1,
			HomeAdv0:      homeAdvantage(m.Team0, m.Team1, m.Country),
			HomeAdv1:      homeAdvantage(m.Team1, m.Team0, m.Country),
			PriorMatches0: s0.priorMatches,
			PriorMatches1: s1.priorMatches,
			BattingAvg0:   s0.battingAvg,
			BattingSR0:    s0.battingSR,
			BowlingAvg0:   s0.bowlingAvg,
			Economy0:      s0.economy,
			WinPct0:       s0.winPct,
			BattingAvg1:   s1.battingAvg,
			BattingSR1:    s1.battingSR,
			BowlingAvg1:   s1.bowlingAvg,
			Economy1:      s1.economy,
			WinPct1:       s1.winPct,
		})
	}
	return rows
}

// homeAdvantage is +1 when the team is the host nation, -1 when its opponent
// is, and 0 for a neutral venue.
func homeAdvantage(team, opponent, country string) int {
	switch country {
	case team:
		return 1
	case opponent:
		return -1
	}
	return 0
}

type teamStats struct {
	priorMatches int
	battingAvg   *float64
	battingSR    *float64
	bowlingAvg   *float64
	economy      *float64
	winPct       *float64
}

// teamStats aggregates a team's prior matches into weighted statistics.
// Prior matches that would put a zero in a denominator (no wickets taken, no
// deliveries bowled or faced) are excluded from that statistic only, with
// the weights renormalized over the rest. A team with no qualifying prior
// match gets nil for every weighted field.
func (d *Deriver) teamStats(prior []teamMatch, asOf time.Time) teamStats {
	st := teamStats{priorMatches: len(prior)}
	if len(prior) == 0 {
		return st
	}

	var (
		runsV, runsW []float64
		srV, srW     []float64
		bowlV, bowlW []float64
		econV, econW []float64
		winV, winW   []float64
	)
	for _, tm := range prior {
		w := decayWeight(tm.date, asOf, d.halfLifeDays)

		runsV = append(runsV, float64(tm.runsScored))
		runsW = append(runsW, w)

		if tm.deliveriesFaced > 0 {
			srV = append(srV, 100*float64(tm.runsScored)/float64(tm.deliveriesFaced))
			srW = append(srW, w)
		}
		if tm.wicketsTaken > 0 {
			bowlV = append(bowlV, float64(tm.runsConceded)/float64(tm.wicketsTaken))
			bowlW = append(bowlW, w)
		}
		if tm.deliveriesBowled > 0 {
			econV = append(econV, 6*float64(tm.runsConceded)/float64(tm.deliveriesBowled))
			econW = append(econW, w)
		}

		win := 0.0
		if tm.won {
			win = 100.0
		}
		winV = append(winV, win)
		winW = append(winW, w)
	}

	st.battingAvg = weightedMean(runsV, runsW)
	st.battingSR = weightedMean(srV, srW)
	st.bowlingAvg = weightedMean(bowlV, bowlW)
	st.economy = weightedMean(econV, econW)
	st.winPct = weightedMean(winV, winW)
	return st
}
