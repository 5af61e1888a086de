package training

import (
	"strings"
	"testing"

	"github.com/tetraminz/character_tuning/internal/transcript"
)

func TestBuildExamplesPairsWithPreviousLine(t *testing.T) {
	t.Parallel()

	rows := []transcript.Row{
		{RowIndex: 0, Speaker: "Ross", Dialogue: "(stands up) Hi there Rachel how are you"},
		{RowIndex: 1, Speaker: "Rachel", Dialogue: "(laughs) I am doing great today thanks"},
	}

	examples, skips := BuildExamples("Rachel", rows, []int{1})
	if len(skips) != 0 {
		t.Fatalf("unexpected skips: %v", skips)
	}
	if got, want := len(examples), 1; got != want {
		t.Fatalf("example count: got %d want %d", got, want)
	}

	example := examples[0]
	wantPrompt := Preamble("Rachel") + " Hi there Rachel how are you" + "\n" + " I am doing great today thanks"
	if example.Prompt != wantPrompt {
		t.Fatalf("prompt mismatch:\ngot  %q\nwant %q", example.Prompt, wantPrompt)
	}
	if !strings.HasPrefix(example.Prompt, Preamble("Rachel")) {
		t.Fatalf("prompt must begin with the persona preamble")
	}
	if !strings.HasSuffix(example.Prompt, example.Response) {
		t.Fatalf("prompt must end with the response line")
	}
	if !strings.Contains(example.Prompt, example.Context+"\n"+example.Response) {
		t.Fatalf("context and response must be separated by exactly one newline")
	}
}

func TestBuildExamplesSkipsMissingPredecessor(t *testing.T) {
	t.Parallel()

	rows := []transcript.Row{
		{RowIndex: 0, Speaker: "Rachel", Dialogue: "I am doing great today thanks a lot"},
	}

	// Index 0 can never qualify through the selector; force it to exercise
	// the builder's own bounds guard.
	examples, skips := BuildExamples("Rachel", rows, []int{0})
	if got, want := len(examples), 0; got != want {
		t.Fatalf("example count: got %d want %d", got, want)
	}
	if got, want := len(skips), 1; got != want {
		t.Fatalf("skip count: got %d want %d", got, want)
	}
	if got, want := skips[0].RowIndex, 0; got != want {
		t.Fatalf("skip row index: got %d want %d", got, want)
	}
	if !strings.Contains(skips[0].Reason, "out of bounds") {
		t.Fatalf("skip reason should mention bounds, got %q", skips[0].Reason)
	}
}

func TestBuildExamplesKeepsAscendingOrder(t *testing.T) {
	t.Parallel()

	rows := []transcript.Row{
		{RowIndex: 0, Speaker: "Ross", Dialogue: "line zero"},
		{RowIndex: 1, Speaker: "Rachel", Dialogue: "line one answer with enough words here"},
		{RowIndex: 2, Speaker: "Ross", Dialogue: "line two"},
		{RowIndex: 3, Speaker: "Rachel", Dialogue: "line three answer with enough words here"},
	}

	examples, skips := BuildExamples("Rachel", rows, []int{1, 3})
	if len(skips) != 0 {
		t.Fatalf("unexpected skips: %v", skips)
	}
	if got, want := len(examples), 2; got != want {
		t.Fatalf("example count: got %d want %d", got, want)
	}
	if examples[0].RowIndex != 1 || examples[1].RowIndex != 3 {
		t.Fatalf("examples out of order: %d, %d", examples[0].RowIndex, examples[1].RowIndex)
	}
}
