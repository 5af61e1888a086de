package training

import (
	"errors"

	"github.com/tetraminz/character_tuning/internal/transcript"
)

// Result is the outcome of one dataset preparation run.
type Result struct {
	Examples []Example
	Skips    []Skip
	Set      PromptSet
}

// Prepare runs the full select/build/assemble pipeline over loaded rows.
// Configuration problems (empty character, empty transcript) abort before
// any row is touched; per-row problems surface as Skips.
func Prepare(character string, rows []transcript.Row, minWords int, column string) (Result, error) {
	selector, err := NewSelector(character, minWords)
	if err != nil {
		return Result{}, err
	}
	if len(rows) == 0 {
		return Result{}, errors.New("transcript has no rows")
	}

	targets := selector.SelectTargets(rows)
	examples, skips := BuildExamples(character, rows, targets)

	return Result{
		Examples: examples,
		Skips:    skips,
		Set:      NewPromptSet(column, examples),
	}, nil
}
