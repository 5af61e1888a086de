package training

import (
	"fmt"

	"github.com/tetraminz/character_tuning/internal/transcript"
)

// Preamble is the fixed persona header prepended to every training example
// for a character. The surrounding newlines are part of the prompt format.
func Preamble(character string) string {
	return fmt.Sprintf(
		"\nYou are %s from the Friends TV Show. Your responses should reflect %s's personality and speech patterns.\n",
		character, character,
	)
}

// Example is one (context, response) pair serialized into a single prompt.
type Example struct {
	RowIndex int
	Context  string
	Response string
	Prompt   string
}

// Skip records a flagged row that could not become an example.
type Skip struct {
	RowIndex int
	Reason   string
}

// BuildExamples pairs each target row with its preceding row. A target whose
// predecessor index falls outside the transcript is skipped, not fatal; the
// skip is returned so the caller can log it. Examples come out in ascending
// row order.
func BuildExamples(character string, rows []transcript.Row, targets []int) ([]Example, []Skip) {
	preamble := Preamble(character)
	examples := make([]Example, 0, len(targets))
	var skips []Skip

	for _, target := range targets {
		prev := target - 1
		if prev < 0 || prev >= len(rows) {
			skips = append(skips, Skip{
				RowIndex: target,
				Reason:   fmt.Sprintf("predecessor index %d is out of bounds", prev),
			})
			continue
		}

		context := transcript.CleanDialogue(rows[prev].Dialogue)
		response := transcript.CleanDialogue(rows[target].Dialogue)
		examples = append(examples, Example{
			RowIndex: target,
			Context:  context,
			Response: response,
			Prompt:   preamble + context + "\n" + response,
		})
	}

	return examples, skips
}
