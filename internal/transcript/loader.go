package transcript

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadTranscript parses a transcript CSV file. The file must carry at least
// the Speaker and Dialogue columns; rows where either is empty are dropped
// before indexing, so RowIndex values come out dense.
func LoadTranscript(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer file.Close()

	rows, err := ReadTranscript(file)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return rows, nil
}

// ReadTranscript parses transcript CSV content from r.
func ReadTranscript(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty csv")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := headerIndexes(header)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, 256)
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row: %w", err)
		}

		speaker := strings.TrimSpace(valueAt(record, idx.speaker))
		dialogue := valueAt(record, idx.dialogue)
		if speaker == "" || strings.TrimSpace(dialogue) == "" {
			continue
		}

		rows = append(rows, Row{
			RowIndex: len(rows),
			Speaker:  speaker,
			Dialogue: dialogue,
		})
	}

	if len(rows) == 0 {
		return nil, errors.New("no usable rows")
	}
	return rows, nil
}

func valueAt(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return record[index]
}

type requiredIndexes struct {
	speaker  int
	dialogue int
}

func headerIndexes(header []string) (requiredIndexes, error) {
	idx := requiredIndexes{speaker: -1, dialogue: -1}

	for i, col := range header {
		switch normalizeHeader(col) {
		case "speaker":
			idx.speaker = i
		case "dialogue":
			idx.dialogue = i
		}
	}

	if idx.speaker == -1 || idx.dialogue == -1 {
		return requiredIndexes{}, fmt.Errorf("missing required columns in header %v", header)
	}
	return idx, nil
}

func normalizeHeader(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	return s
}
