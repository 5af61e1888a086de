package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tetraminz/character_tuning/internal/report"
	"github.com/tetraminz/character_tuning/internal/training"
)

func writeTranscriptFixture(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "transcripts.csv")
	content := "" +
		"Speaker,Dialogue\n" +
		"Ross,(stands up) Hi there Rachel how are you\n" +
		"Rachel,(laughs) I am doing great today thanks\n" +
		"Ross,cool\n" +
		"Rachel,so what have you been up to this whole week\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestPrepareDataset(t *testing.T) {
	dataPath := writeTranscriptFixture(t, t.TempDir())

	rows, result, err := prepareDataset(dataPath, "Rachel", training.DefaultMinWords, "")
	if err != nil {
		t.Fatalf("prepareDataset error: %v", err)
	}
	if got, want := len(rows), 4; got != want {
		t.Fatalf("row count: got %d want %d", got, want)
	}
	if got, want := len(result.Examples), 2; got != want {
		t.Fatalf("example count: got %d want %d", got, want)
	}
	if got, want := len(result.Skips), 0; got != want {
		t.Fatalf("skip count: got %d want %d", got, want)
	}

	wantFirst := training.Preamble("Rachel") + " Hi there Rachel how are you" + "\n" + " I am doing great today thanks"
	if got := result.Set.Prompts[0]; got != wantFirst {
		t.Fatalf("first prompt mismatch:\ngot  %q\nwant %q", got, wantFirst)
	}

	if _, _, err := prepareDataset(dataPath, "", training.DefaultMinWords, ""); err == nil {
		t.Fatalf("expected error for empty character")
	}
	if _, _, err := prepareDataset("", "Rachel", training.DefaultMinWords, ""); err == nil {
		t.Fatalf("expected error for empty data path")
	}
}

func TestRunPrepareCmdWritesArtifacts(t *testing.T) {
	tempDir := t.TempDir()
	dataPath := writeTranscriptFixture(t, tempDir)
	outCSV := filepath.Join(tempDir, "out", "prompts.csv")
	outJSONL := filepath.Join(tempDir, "out", "prompts.jsonl")
	dbPath := filepath.Join(tempDir, "out", "tuning.db")

	err := runPrepareCmd([]string{
		"--data", dataPath,
		"--character", "Rachel",
		"--out_csv", outCSV,
		"--out_jsonl", outJSONL,
		"--db", dbPath,
	})
	if err != nil {
		t.Fatalf("runPrepareCmd error: %v", err)
	}

	csvFile, err := os.Open(outCSV)
	if err != nil {
		t.Fatalf("open out csv: %v", err)
	}
	defer csvFile.Close()
	records, err := csv.NewReader(csvFile).ReadAll()
	if err != nil {
		t.Fatalf("read out csv: %v", err)
	}
	if got, want := len(records), 3; got != want {
		t.Fatalf("csv record count: got %d want %d", got, want)
	}
	if got, want := records[0][0], training.DefaultColumn; got != want {
		t.Fatalf("csv header: got %q want %q", got, want)
	}

	jsonl, err := os.ReadFile(outJSONL)
	if err != nil {
		t.Fatalf("read out jsonl: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(jsonl)), "\n")
	if got, want := len(lines), 2; got != want {
		t.Fatalf("jsonl line count: got %d want %d", got, want)
	}

	metrics, err := report.Build(dbPath)
	if err != nil {
		t.Fatalf("report build: %v", err)
	}
	if got, want := metrics.TotalRuns, 1; got != want {
		t.Fatalf("stored runs: got %d want %d", got, want)
	}
	if got, want := metrics.TotalPrompts, 2; got != want {
		t.Fatalf("stored prompts: got %d want %d", got, want)
	}
}
