package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"
)

const createRunsTableSQL = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	character TEXT NOT NULL,
	source_file TEXT NOT NULL,
	row_count INTEGER NOT NULL,
	prompt_count INTEGER NOT NULL,
	skip_count INTEGER NOT NULL,
	min_words INTEGER NOT NULL,
	prompt_column TEXT NOT NULL,
	created_at_utc TEXT NOT NULL
)`

const createPromptsTableSQL = `
CREATE TABLE IF NOT EXISTS prompts (
	run_id TEXT NOT NULL,
	row_index INTEGER NOT NULL,
	context_text TEXT NOT NULL,
	response_text TEXT NOT NULL,
	prompt_text TEXT NOT NULL,
	response_word_count INTEGER NOT NULL,
	PRIMARY KEY (run_id, row_index)
)`

const createSkipsTableSQL = `
CREATE TABLE IF NOT EXISTS skips (
	run_id TEXT NOT NULL,
	row_index INTEGER NOT NULL,
	reason TEXT NOT NULL,
	PRIMARY KEY (run_id, row_index)
)`

var createIndexesSQL = []string{
	`CREATE INDEX IF NOT EXISTS idx_runs_character ON runs(character)`,
	`CREATE INDEX IF NOT EXISTS idx_prompts_run_id ON prompts(run_id)`,
	`CREATE INDEX IF NOT EXISTS idx_skips_run_id ON skips(run_id)`,
}

var dropTablesSQL = []string{
	`DROP TABLE IF EXISTS prompts`,
	`DROP TABLE IF EXISTS skips`,
	`DROP TABLE IF EXISTS runs`,
}

const insertRunSQL = `
INSERT INTO runs (
	run_id,
	character,
	source_file,
	row_count,
	prompt_count,
	skip_count,
	min_words,
	prompt_column,
	created_at_utc
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

const insertPromptSQL = `
INSERT INTO prompts (
	run_id,
	row_index,
	context_text,
	response_text,
	prompt_text,
	response_word_count
) VALUES (?, ?, ?, ?, ?, ?)`

const insertSkipSQL = `
INSERT INTO skips (run_id, row_index, reason) VALUES (?, ?, ?)`

// Run is one persisted dataset preparation run.
type Run struct {
	ID           string
	Character    string
	SourceFile   string
	RowCount     int
	PromptCount  int
	SkipCount    int
	MinWords     int
	PromptColumn string
	CreatedAtUTC string
}

// PromptRow is one persisted training prompt.
type PromptRow struct {
	RunID             string
	RowIndex          int
	ContextText       string
	ResponseText      string
	PromptText        string
	ResponseWordCount int
}

// SkipRow is one persisted per-row skip notice.
type SkipRow struct {
	RunID    string
	RowIndex int
	Reason   string
}

// Store persists preparation runs in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store and verifies the schema.
func Open(dbPath string) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Setup drops and recreates all tables.
func Setup(dbPath string) error {
	store, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, stmt := range dropTablesSQL {
		if _, err := store.db.Exec(stmt); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return store.ensureSchema()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the handle for read-side consumers such as reporting.
func (s *Store) DB() *sql.DB {
	return s.db
}

// InsertRun records a completed preparation run with its prompts and skips
// in one transaction.
func (s *Store) InsertRun(run Run, prompts []PromptRow, skips []SkipRow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		insertRunSQL,
		run.ID,
		run.Character,
		run.SourceFile,
		run.RowCount,
		run.PromptCount,
		run.SkipCount,
		run.MinWords,
		run.PromptColumn,
		run.CreatedAtUTC,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, prompt := range prompts {
		if _, err := tx.Exec(
			insertPromptSQL,
			prompt.RunID,
			prompt.RowIndex,
			prompt.ContextText,
			prompt.ResponseText,
			prompt.PromptText,
			prompt.ResponseWordCount,
		); err != nil {
			return fmt.Errorf("insert prompt row_index=%d: %w", prompt.RowIndex, err)
		}
	}

	for _, skip := range skips {
		if _, err := tx.Exec(insertSkipSQL, skip.RunID, skip.RowIndex, skip.Reason); err != nil {
			return fmt.Errorf("insert skip row_index=%d: %w", skip.RowIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

func (s *Store) ensureSchema() error {
	creates := map[string]string{
		"runs":    createRunsTableSQL,
		"prompts": createPromptsTableSQL,
		"skips":   createSkipsTableSQL,
	}
	required := map[string][]string{
		"runs":    {"run_id", "character", "source_file", "row_count", "prompt_count", "skip_count", "min_words", "prompt_column", "created_at_utc"},
		"prompts": {"run_id", "row_index", "context_text", "response_text", "prompt_text", "response_word_count"},
		"skips":   {"run_id", "row_index", "reason"},
	}

	for _, table := range []string{"runs", "prompts", "skips"} {
		if _, err := s.db.Exec(creates[table]); err != nil {
			return fmt.Errorf("create %s table: %w", table, err)
		}
		missing, err := s.missingColumns(table, required[table])
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return fmt.Errorf(
				"incompatible %s schema, missing columns: %s; run `character_tuner setup --db <path>`",
				table, strings.Join(missing, ", "),
			)
		}
	}

	for _, stmt := range createIndexesSQL {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

func (s *Store) missingColumns(table string, required []string) ([]string, error) {
	rows, err := s.db.Query(fmt.Sprintf(`PRAGMA table_info(%s)`, table))
	if err != nil {
		return nil, fmt.Errorf("inspect %s schema: %w", table, err)
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var cid int
		var name string
		var colType string
		var notNull int
		var defaultValue sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultValue, &pk); err != nil {
			return nil, fmt.Errorf("scan %s schema: %w", table, err)
		}
		existing[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s schema: %w", table, err)
	}

	var missing []string
	for _, col := range required {
		if _, ok := existing[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing, nil
}
