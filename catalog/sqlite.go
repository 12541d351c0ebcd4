package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite (pure Go).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the catalog database at path, creating the file if it
// does not exist yet.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	// WAL keeps readers unblocked while definitions are written.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Init creates the schema tables.
func (s *SQLiteStore) Init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS definitions (
		id          TEXT NOT NULL,
		name        TEXT PRIMARY KEY,
		source      TEXT NOT NULL DEFAULT '',
		agent_count INTEGER NOT NULL DEFAULT 0,
		agents      TEXT NOT NULL DEFAULT '[]',
		workflows   TEXT NOT NULL DEFAULT '[]',
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_definitions_created ON definitions(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Put inserts a definition, replacing any existing one with the same name.
func (s *SQLiteStore) Put(def Definition) error {
	agents, err := json.Marshal(def.Agents)
	if err != nil {
		return err
	}
	workflows, err := json.Marshal(def.Workflows)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO definitions (id, name, source, agent_count, agents, workflows, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			id = excluded.id,
			source = excluded.source,
			agent_count = excluded.agent_count,
			agents = excluded.agents,
			workflows = excluded.workflows,
			created_at = excluded.created_at`,
		def.ID, def.Name, def.Source, def.AgentCount,
		string(agents), string(workflows), def.CreatedAt.Format(time.RFC3339))
	return err
}

// Get returns the definition stored under name.
func (s *SQLiteStore) Get(name string) (Definition, error) {
	row := s.db.QueryRow(`
		SELECT id, name, source, agent_count, agents, workflows, created_at
		FROM definitions WHERE name = ?`, name)
	return scanDefinition(row)
}

// List returns all definitions, newest first.
func (s *SQLiteStore) List() ([]Definition, error) {
	rows, err := s.db.Query(`
		SELECT id, name, source, agent_count, agents, workflows, created_at
		FROM definitions ORDER BY created_at DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []Definition
	for rows.Next() {
		def, err := scanDefinition(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

// Delete removes the definition stored under name.
func (s *SQLiteStore) Delete(name string) error {
	res, err := s.db.Exec(`DELETE FROM definitions WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDefinition(row scanner) (Definition, error) {
	var def Definition
	var agents, workflows, created string
	err := row.Scan(&def.ID, &def.Name, &def.Source, &def.AgentCount,
		&agents, &workflows, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Definition{}, ErrNotFound
	}
	if err != nil {
		return Definition{}, err
	}
	if err := json.Unmarshal([]byte(agents), &def.Agents); err != nil {
		return Definition{}, err
	}
	if err := json.Unmarshal([]byte(workflows), &def.Workflows); err != nil {
		return Definition{}, err
	}
	if t, err := time.Parse(time.RFC3339, created); err == nil {
		def.CreatedAt = t
	}
	return def, nil
}
