package training

import (
	"reflect"
	"testing"

	"github.com/tetraminz/character_tuning/internal/transcript"
)

func TestNewSelectorRequiresCharacter(t *testing.T) {
	t.Parallel()

	if _, err := NewSelector("", 5); err == nil {
		t.Fatalf("expected error for empty character name")
	}

	selector, err := NewSelector("Rachel", 0)
	if err != nil {
		t.Fatalf("NewSelector error: %v", err)
	}
	if got, want := selector.MinWords, DefaultMinWords; got != want {
		t.Fatalf("default min words: got %d want %d", got, want)
	}
}

func TestSelectorQualifies(t *testing.T) {
	t.Parallel()

	selector, err := NewSelector("Rachel", 5)
	if err != nil {
		t.Fatalf("NewSelector error: %v", err)
	}

	cases := []struct {
		name string
		row  transcript.Row
		want bool
	}{
		{
			name: "qualifying row",
			row:  transcript.Row{RowIndex: 3, Speaker: "Rachel", Dialogue: "I am doing great today thanks a lot"},
			want: true,
		},
		{
			name: "wrong speaker",
			row:  transcript.Row{RowIndex: 3, Speaker: "Ross", Dialogue: "I am doing great today thanks a lot"},
			want: false,
		},
		{
			name: "too few words",
			row:  transcript.Row{RowIndex: 3, Speaker: "Rachel", Dialogue: "just five short words here"},
			want: false,
		},
		{
			name: "exactly threshold words",
			row:  transcript.Row{RowIndex: 3, Speaker: "Rachel", Dialogue: "one two three four five"},
			want: false,
		},
		{
			name: "first row has no predecessor",
			row:  transcript.Row{RowIndex: 0, Speaker: "Rachel", Dialogue: "I am doing great today thanks a lot"},
			want: false,
		},
		{
			name: "empty dialogue",
			row:  transcript.Row{RowIndex: 3, Speaker: "Rachel", Dialogue: "   "},
			want: false,
		},
		{
			name: "stage directions do not count as words",
			row:  transcript.Row{RowIndex: 3, Speaker: "Rachel", Dialogue: "(puts down the tray and sighs loudly) oh fine"},
			want: false,
		},
	}

	for _, tc := range cases {
		if got := selector.Qualifies(tc.row); got != tc.want {
			t.Fatalf("%s: Qualifies=%v want %v", tc.name, got, tc.want)
		}
	}
}

func TestSelectTargetsKeepsTranscriptOrder(t *testing.T) {
	t.Parallel()

	selector, err := NewSelector("Rachel", 5)
	if err != nil {
		t.Fatalf("NewSelector error: %v", err)
	}

	rows := []transcript.Row{
		{RowIndex: 0, Speaker: "Rachel", Dialogue: "this never counts because it opens the transcript"},
		{RowIndex: 1, Speaker: "Ross", Dialogue: "so I was thinking about dinosaurs again today"},
		{RowIndex: 2, Speaker: "Rachel", Dialogue: "that is honestly the least surprising thing ever"},
		{RowIndex: 3, Speaker: "Rachel", Dialogue: "short one"},
		{RowIndex: 4, Speaker: "Rachel", Dialogue: "okay fine tell me all about the dinosaurs"},
	}

	got := selector.SelectTargets(rows)
	if want := []int{2, 4}; !reflect.DeepEqual(got, want) {
		t.Fatalf("SelectTargets=%v want %v", got, want)
	}
}
