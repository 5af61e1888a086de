package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tetraminz/character_tuning/internal/store"
)

// Metrics summarizes the persisted preparation runs.
type Metrics struct {
	TotalRuns    int
	TotalPrompts int
	TotalSkips   int

	Characters []CharacterStats
}

// CharacterStats aggregates prompt quality per character.
type CharacterStats struct {
	Character    string
	RunCount     int
	PromptCount  int
	SkipCount    int
	WordCountAvg float64
	WordCountMin int
	WordCountMax int
	LastRunUTC   string
}

// Build reads the store and computes the dataset report.
func Build(dbPath string) (Metrics, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return Metrics{}, err
	}
	defer st.Close()

	rows, err := st.DB().Query(`
		SELECT
			r.character,
			r.run_id,
			r.prompt_count,
			r.skip_count,
			r.created_at_utc,
			COALESCE(SUM(p.response_word_count), 0),
			COALESCE(MIN(p.response_word_count), 0),
			COALESCE(MAX(p.response_word_count), 0)
		FROM runs r
		LEFT JOIN prompts p ON p.run_id = r.run_id
		GROUP BY r.run_id
	`)
	if err != nil {
		return Metrics{}, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	perCharacter := map[string]*CharacterStats{}
	wordTotals := map[string]int{}
	hasPrompts := map[string]bool{}

	metrics := Metrics{}
	for rows.Next() {
		var character string
		var runID string
		var promptCount int
		var skipCount int
		var createdAt string
		var wordSum int
		var wordMin int
		var wordMax int
		if err := rows.Scan(
			&character,
			&runID,
			&promptCount,
			&skipCount,
			&createdAt,
			&wordSum,
			&wordMin,
			&wordMax,
		); err != nil {
			return Metrics{}, fmt.Errorf("scan run row: %w", err)
		}

		metrics.TotalRuns++
		metrics.TotalPrompts += promptCount
		metrics.TotalSkips += skipCount

		stats := perCharacter[character]
		if stats == nil {
			stats = &CharacterStats{Character: character}
			perCharacter[character] = stats
		}
		stats.RunCount++
		stats.PromptCount += promptCount
		stats.SkipCount += skipCount
		wordTotals[character] += wordSum
		if promptCount > 0 {
			if !hasPrompts[character] || wordMin < stats.WordCountMin {
				stats.WordCountMin = wordMin
			}
			if wordMax > stats.WordCountMax {
				stats.WordCountMax = wordMax
			}
			hasPrompts[character] = true
		}
		if createdAt > stats.LastRunUTC {
			stats.LastRunUTC = createdAt
		}
	}
	if err := rows.Err(); err != nil {
		return Metrics{}, fmt.Errorf("iterate run rows: %w", err)
	}

	for character, stats := range perCharacter {
		if stats.PromptCount > 0 {
			stats.WordCountAvg = float64(wordTotals[character]) / float64(stats.PromptCount)
		}
		metrics.Characters = append(metrics.Characters, *stats)
	}
	sort.Slice(metrics.Characters, func(i, j int) bool {
		return metrics.Characters[i].Character < metrics.Characters[j].Character
	})

	return metrics, nil
}

// Format renders the report as stable key=value lines.
func Format(m Metrics) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("total_runs=%d\n", m.TotalRuns))
	b.WriteString(fmt.Sprintf("total_prompts=%d\n", m.TotalPrompts))
	b.WriteString(fmt.Sprintf("total_skips=%d\n", m.TotalSkips))
	for _, stats := range m.Characters {
		b.WriteString(fmt.Sprintf(
			"character=%s runs=%d prompts=%d skips=%d word_count_avg=%.2f word_count_min=%d word_count_max=%d last_run=%s\n",
			stats.Character,
			stats.RunCount,
			stats.PromptCount,
			stats.SkipCount,
			stats.WordCountAvg,
			stats.WordCountMin,
			stats.WordCountMax,
			stats.LastRunUTC,
		))
	}
	return b.String()
}
