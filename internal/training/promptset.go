package training

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// DefaultColumn is the dataset field the downstream trainer reads text from.
const DefaultColumn = "prompt"

// PromptSet is the single-column training dataset handed to the trainer.
type PromptSet struct {
	Column  string
	Prompts []string
}

// NewPromptSet wraps examples into a dataset under the given column name.
// An empty example list yields an empty, still-writable dataset.
func NewPromptSet(column string, examples []Example) PromptSet {
	if column == "" {
		column = DefaultColumn
	}
	prompts := make([]string, 0, len(examples))
	for _, example := range examples {
		prompts = append(prompts, example.Prompt)
	}
	return PromptSet{Column: column, Prompts: prompts}
}

// WriteCSV writes the dataset as a one-column CSV with a header row.
func (p PromptSet) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{p.Column}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, prompt := range p.Prompts {
		if err := writer.Write([]string{prompt}); err != nil {
			return fmt.Errorf("write prompt %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteJSONL writes the dataset as one JSON object per line.
func (p PromptSet) WriteJSONL(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	for i, prompt := range p.Prompts {
		if err := encoder.Encode(map[string]string{p.Column: prompt}); err != nil {
			return fmt.Errorf("encode prompt %d: %w", i, err)
		}
	}
	return nil
}
