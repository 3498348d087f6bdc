// Package dataset assembles base-dataset rows from a directory of raw match
// records.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pable/go-odi-features/internal/model"
	"github.com/pable/go-odi-features/internal/parser"
)

// Result is the outcome of one assembler pass.
type Result struct {
	Matches   []model.Match // sorted by (start_date, match_id)
	FilesSeen int
	Skipped   int
	Warnings  []string
}

// Assembler turns a directory of raw match JSON files into the base dataset.
type Assembler struct {
	rules parser.Rules
}

func New(rules parser.Rules) *Assembler {
	return &Assembler{rules: rules}
}

// BuildDir parses every *.json file under dir and returns the deduplicated,
// chronologically sorted base dataset. Files are visited in sorted name order
// so repeated runs over the same input produce identical output. Problems
// with individual records never abort the batch.
func (a *Assembler) BuildDir(dir string) (*Result, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(files) == 0 {
		if _, statErr := os.Stat(dir); statErr != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, statErr)
		}
	}
	sort.Strings(files)

	res := &Result{FilesSeen: len(files)}
	seen := make(map[string]bool)

	for _, f := range files {
		m, err := parser.ParseFile(f, a.rules)
		if err != nil {
			res.Skipped++
			// Ineligible matches are expected; only malformed records warrant
			// a warning.
			if !errors.Is(err, parser.ErrIneligible) {
				res.Warnings = append(res.Warnings, err.Error())
			}
			continue
		}
		if seen[m.MatchID] {
			// First-write wins; deterministic because files are sorted.
			res.Skipped++
			res.Warnings = append(res.Warnings, fmt.Sprintf("duplicate match id %s: keeping first occurrence", m.MatchID))
			continue
		}
		seen[m.MatchID] = true
		res.Matches = append(res.Matches, *m)
	}

	sort.Slice(res.Matches, func(i, j int) bool {
		a, b := res.Matches[i], res.Matches[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		return a.MatchID < b.MatchID
	})
	return res, nil
}
