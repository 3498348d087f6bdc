package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-odi-features/internal/parser"
)

func testRules() parser.Rules {
	return parser.Rules{
		EligibleTeams: map[string]bool{"Australia": true, "England": true, "India": true},
		Cutoff:        time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		CityCountry:   map[string]string{"Sydney": "Australia", "London": "England"},
	}
}

func matchJSON(day, teamA, teamB, winner string) string {
	return fmt.Sprintf(`{
		"info": {
			"city": "Sydney",
			"dates": ["%s"],
			"event": {"name": "Test Series"},
			"teams": ["%s", "%s"],
			"toss": {"winner": "%s", "decision": "bat"},
			"outcome": {"winner": "%s"}
		},
		"innings": [
			{"team": "%s", "overs": [{"over": 0, "deliveries": [{"runs": {"total": 4}}]}]},
			{"team": "%s", "overs": [{"over": 0, "deliveries": [{"runs": {"total": 2}}]}]}
		]
	}`, day, teamA, teamB, teamA, winner, teamA, teamB)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestBuildDir_SortsChronologically(t *testing.T) {
	dir := t.TempDir()
	// File names deliberately out of date order.
	writeFile(t, dir, "aaa.json", matchJSON("2024-05-01", "Australia", "England", "England"))
	writeFile(t, dir, "bbb.json", matchJSON("2024-01-01", "Australia", "India", "Australia"))

	res, err := New(testRules()).BuildDir(dir)
	require.NoError(t, err)
	require.Len(t, res.Matches, 2)

	assert.Equal(t, "bbb", res.Matches[0].MatchID)
	assert.Equal(t, "aaa", res.Matches[1].MatchID)
	assert.Equal(t, 2, res.FilesSeen)
	assert.Equal(t, 0, res.Skipped)
	assert.Empty(t, res.Warnings)
}

func TestBuildDir_SkipsIneligibleSilently(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.json", matchJSON("2024-05-01", "Australia", "England", "England"))
	writeFile(t, dir, "wrong-team.json", matchJSON("2024-05-01", "Australia", "Zimbabwe", "Australia"))
	writeFile(t, dir, "too-early.json", matchJSON("2021-05-01", "Australia", "England", "England"))

	res, err := New(testRules()).BuildDir(dir)
	require.NoError(t, err)
	assert.Len(t, res.Matches, 1)
	assert.Equal(t, 2, res.Skipped)
	assert.Empty(t, res.Warnings, "ineligible matches are expected, not warnings")
}

func TestBuildDir_WarnsOnMalformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.json", matchJSON("2024-05-01", "Australia", "England", "England"))
	writeFile(t, dir, "broken.json", "{not json")

	res, err := New(testRules()).BuildDir(dir)
	require.NoError(t, err, "a malformed record must not abort the batch")
	assert.Len(t, res.Matches, 1)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "broken.json")
}

func TestBuildDir_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", matchJSON("2024-05-01", "Australia", "England", "England"))
	writeFile(t, dir, "b.json", matchJSON("2024-01-01", "Australia", "India", "Australia"))
	writeFile(t, dir, "c.json", "{not json")

	asm := New(testRules())
	first, err := asm.BuildDir(dir)
	require.NoError(t, err)
	second, err := asm.BuildDir(dir)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildDir_MissingDirectory(t *testing.T) {
	_, err := New(testRules()).BuildDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
