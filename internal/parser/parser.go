// Package parser converts raw cricsheet match JSON into base-dataset rows.
package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pable/go-odi-features/internal/model"
)

// Skip categories. Ineligible matches are expected and skipped silently;
// malformed records are skipped with a warning. Both leave the batch running.
var (
	ErrIneligible = errors.New("ineligible match")
	ErrMalformed  = errors.New("malformed record")
)

// Rules is the eligibility configuration applied at the parser boundary.
type Rules struct {
	EligibleTeams map[string]bool
	Cutoff        time.Time         // matches starting before this date are excluded
	CityCountry   map[string]string // host city -> host nation
}

// ParseFile reads one raw match JSON file and returns its base-dataset row.
// The match id is the file name without the .json suffix.
func ParseFile(path string, rules Rules) (*model.Match, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrMalformed, path, err)
	}
	var raw model.RawMatch
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrMalformed, filepath.Base(path), err)
	}
	matchID := strings.TrimSuffix(filepath.Base(path), ".json")
	return Build(&raw, matchID, rules)
}

// Build converts a decoded raw record into a base-dataset row, or reports
// why it yields none.
func Build(raw *model.RawMatch, matchID string, rules Rules) (*model.Match, error) {
	info := raw.Info

	if len(info.Teams) != 2 {
		return nil, fmt.Errorf("%w: %s: want 2 teams, got %d", ErrMalformed, matchID, len(info.Teams))
	}
	teams := []string{info.Teams[0], info.Teams[1]}
	sort.Strings(teams)

	for _, t := range teams {
		if !rules.EligibleTeams[t] {
			return nil, fmt.Errorf("%w: %s: team %q outside eligible set", ErrIneligible, matchID, t)
		}
	}

	if len(info.Dates) == 0 {
		return nil, fmt.Errorf("%w: %s: no dates", ErrMalformed, matchID)
	}
	startDate, err := time.Parse(model.DateFormat, info.Dates[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: bad start date %q", ErrMalformed, matchID, info.Dates[0])
	}
	if startDate.Before(rules.Cutoff) {
		return nil, fmt.Errorf("%w: %s: started %s, before cutoff", ErrIneligible, matchID, info.Dates[0])
	}

	// Ties and no-results carry no winner and produce no row.
	if info.Outcome.Winner == "" {
		return nil, fmt.Errorf("%w: %s: no decisive result (%s)", ErrIneligible, matchID, info.Outcome.Result)
	}
	result := teamIndex(teams, info.Outcome.Winner)
	if result < 0 {
		return nil, fmt.Errorf("%w: %s: winner %q is not a participant", ErrMalformed, matchID, info.Outcome.Winner)
	}

	tossWinner := teamIndex(teams, info.Toss.Winner)
	if tossWinner < 0 {
		return nil, fmt.Errorf("%w: %s: toss winner %q is not a participant", ErrMalformed, matchID, info.Toss.Winner)
	}
	var tossDecision int
	switch info.Toss.Decision {
	case "bat":
		tossDecision = 0
	case "field":
		tossDecision = 1
	default:
		return nil, fmt.Errorf("%w: %s: toss decision %q", ErrMalformed, matchID, info.Toss.Decision)
	}

	country, ok := rules.CityCountry[info.City]
	if !ok {
		return nil, fmt.Errorf("%w: %s: city %q not in city-to-country mapping", ErrMalformed, matchID, info.City)
	}

	totals, err := tallyInnings(raw, teams, matchID)
	if err != nil {
		return nil, err
	}

	return &model.Match{
		MatchID:      matchID,
		Country:      country,
		StartDate:    startDate,
		Event:        info.Event.Name,
		Team0:        teams[0],
		Team1:        teams[1],
		TossWinner:   tossWinner,
		TossDecision: tossDecision,
		Runs0:        totals[0].runs,
		Wickets0:     totals[0].wickets,
		Deliveries0:  totals[0].deliveries,
		Runs1:        totals[1].runs,
		Wickets1:     totals[1].wickets,
		Deliveries1:  totals[1].deliveries,
		Result:       result,
	}, nil
}

type inningsTotals struct {
	runs       int
	wickets    int
	deliveries int
}

// tallyInnings sums runs scored, wickets lost and legal deliveries faced per
// team across every innings belonging to that team. A team can bat more than
// once; all its innings are accumulated.
func tallyInnings(raw *model.RawMatch, teams []string, matchID string) ([2]inningsTotals, error) {
	var totals [2]inningsTotals
	var seen [2]bool

	if len(raw.Innings) == 0 {
		return totals, fmt.Errorf("%w: %s: no innings data", ErrMalformed, matchID)
	}
	for _, inn := range raw.Innings {
		n := teamIndex(teams, inn.Team)
		if n < 0 {
			return totals, fmt.Errorf("%w: %s: innings team %q is not a participant", ErrMalformed, matchID, inn.Team)
		}
		seen[n] = true
		for _, over := range inn.Overs {
			for _, ball := range over.Deliveries {
				totals[n].runs += ball.Runs.Total
				totals[n].wickets += len(ball.Wickets)
				if isLegalDelivery(ball) {
					totals[n].deliveries++
				}
			}
		}
	}
	if !seen[0] || !seen[1] {
		return totals, fmt.Errorf("%w: %s: innings present for only one side", ErrMalformed, matchID)
	}
	return totals, nil
}

// isLegalDelivery reports whether the ball counts toward deliveries faced.
// Wides and no-balls must be re-bowled and are excluded.
func isLegalDelivery(ball model.RawDelivery) bool {
	if _, wide := ball.Extras["wides"]; wide {
		return false
	}
	if _, noBall := ball.Extras["noballs"]; noBall {
		return false
	}
	return true
}

func teamIndex(teams []string, name string) int {
	switch name {
	case teams[0]:
		return 0
	case teams[1]:
		return 1
	}
	return -1
}
