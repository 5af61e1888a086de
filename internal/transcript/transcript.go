package transcript

import (
	"regexp"
	"strings"
)

// Row is one attributed dialogue line from the source transcript.
// RowIndex is dense (0..N-1) and assigned after empty rows are dropped,
// so adjacent indexes are adjacent lines in the conversation.
type Row struct {
	RowIndex int    `json:"row_index"`
	Speaker  string `json:"speaker"`
	Dialogue string `json:"dialogue"`
}

var stageDirectionRegex = regexp.MustCompile(`\(.*?\)`)

// CleanDialogue removes parenthetical stage directions like "(laughs)".
// Matching is non-greedy so multiple groups on one line are removed
// independently. Text outside parentheses is preserved verbatim; an
// unmatched "(" is left untouched.
func CleanDialogue(text string) string {
	return stageDirectionRegex.ReplaceAllString(text, "")
}

// WordCount counts whitespace-delimited tokens. Empty and whitespace-only
// strings count as zero words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
