package training

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewPromptSetDefaultsColumn(t *testing.T) {
	t.Parallel()

	set := NewPromptSet("", []Example{{Prompt: "p1"}, {Prompt: "p2"}})
	if got, want := set.Column, DefaultColumn; got != want {
		t.Fatalf("column: got %q want %q", got, want)
	}
	if got, want := len(set.Prompts), 2; got != want {
		t.Fatalf("prompt count: got %d want %d", got, want)
	}
}

func TestPromptSetWriteCSV(t *testing.T) {
	t.Parallel()

	set := NewPromptSet("prompt", []Example{
		{Prompt: "first prompt"},
		{Prompt: "second prompt\nwith a newline"},
	})

	var buf bytes.Buffer
	if err := set.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back csv: %v", err)
	}
	if got, want := len(records), 3; got != want {
		t.Fatalf("record count: got %d want %d", got, want)
	}
	if got, want := records[0][0], "prompt"; got != want {
		t.Fatalf("header: got %q want %q", got, want)
	}
	if got, want := records[2][0], "second prompt\nwith a newline"; got != want {
		t.Fatalf("second row: got %q want %q", got, want)
	}
}

func TestPromptSetWriteJSONL(t *testing.T) {
	t.Parallel()

	set := NewPromptSet("prompt", []Example{{Prompt: "a"}, {Prompt: "b"}})

	var buf bytes.Buffer
	if err := set.WriteJSONL(&buf); err != nil {
		t.Fatalf("WriteJSONL error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if got, want := len(lines), 2; got != want {
		t.Fatalf("line count: got %d want %d", got, want)
	}
	var record map[string]string
	if err := json.Unmarshal([]byte(lines[1]), &record); err != nil {
		t.Fatalf("unmarshal line: %v", err)
	}
	if got, want := record["prompt"], "b"; got != want {
		t.Fatalf("second line prompt: got %q want %q", got, want)
	}
}

func TestPromptSetEmptyIsWritable(t *testing.T) {
	t.Parallel()

	set := NewPromptSet("prompt", nil)

	var buf bytes.Buffer
	if err := set.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}
	if got, want := strings.TrimSpace(buf.String()), "prompt"; got != want {
		t.Fatalf("empty dataset csv: got %q want %q", got, want)
	}

	buf.Reset()
	if err := set.WriteJSONL(&buf); err != nil {
		t.Fatalf("WriteJSONL error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("empty dataset jsonl should have no lines, got %q", buf.String())
	}
}
