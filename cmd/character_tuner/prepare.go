package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tetraminz/character_tuning/internal/store"
	"github.com/tetraminz/character_tuning/internal/training"
	"github.com/tetraminz/character_tuning/internal/transcript"
)

func runPrepareCmd(args []string) error {
	fs := flag.NewFlagSet("prepare", flag.ContinueOnError)
	dataPath := fs.String("data", "", "Path to transcript CSV (Speaker, Dialogue columns)")
	character := fs.String("character", "", "Target character name")
	minWords := fs.Int("min_words", training.DefaultMinWords, "Minimum word count for a response line")
	column := fs.String("column", training.DefaultColumn, "Dataset column name the trainer reads")
	outCSV := fs.String("out_csv", defaultOutCSV, "Output dataset CSV path")
	outJSONL := fs.String("out_jsonl", "", "Optional output dataset JSONL path")
	dbPath := fs.String("db", defaultSQLitePath, "Path to SQLite DB file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rows, result, err := prepareDataset(*dataPath, *character, *minWords, *column)
	if err != nil {
		return err
	}

	if err := writePromptSet(result.Set, *outCSV, *outJSONL); err != nil {
		return err
	}
	if err := persistRun(*dbPath, *dataPath, *character, *minWords, rows, result); err != nil {
		return err
	}

	fmt.Printf(
		"prepare_done character=%s rows=%d prompts=%d skips=%d out_csv=%s db=%s\n",
		*character, len(rows), len(result.Examples), len(result.Skips), *outCSV, *dbPath,
	)
	return nil
}

// prepareDataset runs load -> clean -> select -> build and logs skip
// notices. Configuration and schema problems abort before any output.
func prepareDataset(dataPath, character string, minWords int, column string) ([]transcript.Row, training.Result, error) {
	if strings.TrimSpace(dataPath) == "" {
		return nil, training.Result{}, errors.New("--data is required")
	}
	if strings.TrimSpace(character) == "" {
		return nil, training.Result{}, errors.New("--character is required")
	}

	rows, err := transcript.LoadTranscript(dataPath)
	if err != nil {
		return nil, training.Result{}, err
	}

	result, err := training.Prepare(character, rows, minWords, column)
	if err != nil {
		return nil, training.Result{}, err
	}

	for _, skip := range result.Skips {
		log.Printf("skip row_index=%d reason=%s", skip.RowIndex, skip.Reason)
	}
	log.Printf("prepared character=%s rows=%d prompts=%d skips=%d", character, len(rows), len(result.Examples), len(result.Skips))
	return rows, result, nil
}

func writePromptSet(set training.PromptSet, outCSV, outJSONL string) error {
	if err := ensureParentDir(outCSV); err != nil {
		return err
	}
	csvFile, err := os.Create(outCSV)
	if err != nil {
		return fmt.Errorf("create %q: %w", outCSV, err)
	}
	defer csvFile.Close()
	if err := set.WriteCSV(csvFile); err != nil {
		return fmt.Errorf("write %q: %w", outCSV, err)
	}

	if strings.TrimSpace(outJSONL) == "" {
		return nil
	}
	if err := ensureParentDir(outJSONL); err != nil {
		return err
	}
	jsonlFile, err := os.Create(outJSONL)
	if err != nil {
		return fmt.Errorf("create %q: %w", outJSONL, err)
	}
	defer jsonlFile.Close()
	if err := set.WriteJSONL(jsonlFile); err != nil {
		return fmt.Errorf("write %q: %w", outJSONL, err)
	}
	return nil
}

func persistRun(dbPath, dataPath, character string, minWords int, rows []transcript.Row, result training.Result) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	runID := uuid.NewString()
	run := store.Run{
		ID:           runID,
		Character:    character,
		SourceFile:   filepath.ToSlash(dataPath),
		RowCount:     len(rows),
		PromptCount:  len(result.Examples),
		SkipCount:    len(result.Skips),
		MinWords:     minWords,
		PromptColumn: result.Set.Column,
		CreatedAtUTC: time.Now().UTC().Format(time.RFC3339),
	}

	promptRows := make([]store.PromptRow, 0, len(result.Examples))
	for _, example := range result.Examples {
		promptRows = append(promptRows, store.PromptRow{
			RunID:             runID,
			RowIndex:          example.RowIndex,
			ContextText:       example.Context,
			ResponseText:      example.Response,
			PromptText:        example.Prompt,
			ResponseWordCount: transcript.WordCount(example.Response),
		})
	}

	skipRows := make([]store.SkipRow, 0, len(result.Skips))
	for _, skip := range result.Skips {
		skipRows = append(skipRows, store.SkipRow{
			RunID:    runID,
			RowIndex: skip.RowIndex,
			Reason:   skip.Reason,
		})
	}

	if err := st.InsertRun(run, promptRows, skipRows); err != nil {
		return err
	}
	log.Printf("run_saved run_id=%s db=%s", runID, dbPath)
	return nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %q: %w", dir, err)
	}
	return nil
}
