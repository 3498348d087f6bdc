package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-odi-features/internal/model"
)

func testRules() Rules {
	return Rules{
		EligibleTeams: map[string]bool{
			"Australia": true,
			"England":   true,
			"India":     true,
		},
		Cutoff: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		CityCountry: map[string]string{
			"London": "England",
			"Mumbai": "India",
		},
	}
}

// rawFixture is an England v India match with India listed first, India
// batting first, and England winning.
func rawFixture() *model.RawMatch {
	return &model.RawMatch{
		Info: model.RawInfo{
			City:    "Mumbai",
			Dates:   []string{"2024-03-10"},
			Event:   model.RawEvent{Name: "Test Series"},
			Teams:   []string{"India", "England"},
			Toss:    model.RawToss{Winner: "India", Decision: "field"},
			Outcome: model.RawOutcome{Winner: "England"},
		},
		Innings: []model.RawInnings{
			{
				Team: "India",
				Overs: []model.RawOver{{Over: 0, Deliveries: []model.RawDelivery{
					{Runs: model.RawRuns{Total: 4}},
					{Runs: model.RawRuns{Total: 1}, Extras: map[string]int{"wides": 1}},
					{Runs: model.RawRuns{Total: 1}, Wickets: []model.RawWicket{{Kind: "bowled"}}},
				}}},
			},
			{
				Team: "England",
				Overs: []model.RawOver{{Over: 0, Deliveries: []model.RawDelivery{
					{Runs: model.RawRuns{Total: 2}},
					{Runs: model.RawRuns{Total: 1}, Extras: map[string]int{"noballs": 1}},
					{Runs: model.RawRuns{Total: 0}},
					{Runs: model.RawRuns{Total: 6}, Wickets: []model.RawWicket{{Kind: "caught"}}},
				}}},
			},
		},
	}
}

func TestBuild_AlphabeticalOrderingAndEncodings(t *testing.T) {
	m, err := Build(rawFixture(), "m1", testRules())
	require.NoError(t, err)

	// Teams sorted lexicographically regardless of listing or batting order.
	assert.Equal(t, "England", m.Team0)
	assert.Equal(t, "India", m.Team1)

	// India (team_1) won the toss and chose to field.
	assert.Equal(t, 1, m.TossWinner)
	assert.Equal(t, 1, m.TossDecision)

	// England (team_0) won the match.
	assert.Equal(t, 0, m.Result)
	assert.Equal(t, "England", m.Winner())

	assert.Equal(t, "India", m.Country)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), m.StartDate)
}

func TestBuild_InningsTotals(t *testing.T) {
	m, err := Build(rawFixture(), "m1", testRules())
	require.NoError(t, err)

	// India: 4+1+1 runs, 1 wicket, wide excluded from deliveries.
	assert.Equal(t, 6, m.Runs1)
	assert.Equal(t, 1, m.Wickets1)
	assert.Equal(t, 2, m.Deliveries1)

	// England: 2+1+0+6 runs, 1 wicket, no-ball excluded from deliveries.
	assert.Equal(t, 9, m.Runs0)
	assert.Equal(t, 1, m.Wickets0)
	assert.Equal(t, 3, m.Deliveries0)
}

func TestBuild_MultipleInningsSummed(t *testing.T) {
	raw := rawFixture()
	raw.Innings = append(raw.Innings, model.RawInnings{
		Team: "India",
		Overs: []model.RawOver{{Over: 0, Deliveries: []model.RawDelivery{
			{Runs: model.RawRuns{Total: 3}},
		}}},
	})

	m, err := Build(raw, "m1", testRules())
	require.NoError(t, err)
	assert.Equal(t, 9, m.Runs1, "second India innings should be added to the first")
	assert.Equal(t, 3, m.Deliveries1)
}

func TestBuild_TieProducesNoRow(t *testing.T) {
	raw := rawFixture()
	raw.Info.Outcome = model.RawOutcome{Result: "tie"}

	_, err := Build(raw, "m1", testRules())
	require.ErrorIs(t, err, ErrIneligible)
}

func TestBuild_NoResultProducesNoRow(t *testing.T) {
	raw := rawFixture()
	raw.Info.Outcome = model.RawOutcome{Result: "no result"}

	_, err := Build(raw, "m1", testRules())
	require.ErrorIs(t, err, ErrIneligible)
}

func TestBuild_IneligibleTeam(t *testing.T) {
	raw := rawFixture()
	raw.Info.Teams = []string{"India", "Zimbabwe"}
	raw.Info.Outcome.Winner = "India"

	_, err := Build(raw, "m1", testRules())
	require.ErrorIs(t, err, ErrIneligible)
}

func TestBuild_BeforeCutoff(t *testing.T) {
	raw := rawFixture()
	raw.Info.Dates = []string{"2021-12-31"}

	_, err := Build(raw, "m1", testRules())
	require.ErrorIs(t, err, ErrIneligible)
}

func TestBuild_MissingDateIsMalformed(t *testing.T) {
	raw := rawFixture()
	raw.Info.Dates = nil

	_, err := Build(raw, "m1", testRules())
	require.ErrorIs(t, err, ErrMalformed)
}

func TestBuild_UnknownCityIsMalformed(t *testing.T) {
	raw := rawFixture()
	raw.Info.City = "Atlantis"

	_, err := Build(raw, "m1", testRules())
	require.ErrorIs(t, err, ErrMalformed)
}

func TestBuild_BadTossDecisionIsMalformed(t *testing.T) {
	raw := rawFixture()
	raw.Info.Toss.Decision = "forfeit"

	_, err := Build(raw, "m1", testRules())
	require.ErrorIs(t, err, ErrMalformed)
}

func TestParseFile(t *testing.T) {
	m, err := ParseFile("testdata/1490443.json", testRules())
	require.NoError(t, err)

	assert.Equal(t, "1490443", m.MatchID)
	assert.Equal(t, "England", m.Team0)
	assert.Equal(t, "India", m.Team1)
}

func TestParseFile_MissingFileIsMalformed(t *testing.T) {
	_, err := ParseFile("testdata/does-not-exist.json", testRules())
	require.ErrorIs(t, err, ErrMalformed)
}
