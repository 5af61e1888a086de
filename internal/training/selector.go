package training

import (
	"errors"

	"github.com/tetraminz/character_tuning/internal/transcript"
)

// DefaultMinWords is the minimum word count for a line to qualify as a
// substantive response.
const DefaultMinWords = 5

// Selector decides which transcript rows are valid training targets for a
// character.
type Selector struct {
	Character string
	MinWords  int
}

// NewSelector validates the character name up front so a bad configuration
// fails before any row is processed.
func NewSelector(character string, minWords int) (Selector, error) {
	if character == "" {
		return Selector{}, errors.New("character name is required")
	}
	if minWords <= 0 {
		minWords = DefaultMinWords
	}
	return Selector{Character: character, MinWords: minWords}, nil
}

// Qualifies reports whether a row is a training target: the character spoke
// it, it has more than MinWords words once stage directions are stripped,
// and it has a predecessor line.
func (s Selector) Qualifies(row transcript.Row) bool {
	if row.Speaker != s.Character {
		return false
	}
	if transcript.WordCount(transcript.CleanDialogue(row.Dialogue)) <= s.MinWords {
		return false
	}
	return row.RowIndex > 0
}

// SelectTargets returns the qualifying row indexes in transcript order.
func (s Selector) SelectTargets(rows []transcript.Row) []int {
	targets := make([]int, 0, len(rows))
	for _, row := range rows {
		if s.Qualifies(row) {
			targets = append(targets, row.RowIndex)
		}
	}
	return targets
}
