// Package journal provides the write-only record of a simulation run: a
// SQLite store for events and census rows, and a compressed per-tick trace.
package journal

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/mini-colony/internal/engine"
)

// Store wraps a SQLite connection for run journaling.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		started_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS census (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		species TEXT NOT NULL,
		count INTEGER NOT NULL,
		mean_hp REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_run_tick ON events(run_id, tick);
	CREATE INDEX IF NOT EXISTS idx_census_run_tick ON census(run_id, tick);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Run is one row of the runs table.
type Run struct {
	ID        string `db:"id"`
	Seed      int64  `db:"seed"`
	StartedAt string `db:"started_at"`
}

// BeginRun registers a new run.
func (s *Store) BeginRun(runID string, seed int64) error {
	_, err := s.conn.Exec(
		"INSERT INTO runs (id, seed, started_at) VALUES (?, ?, ?)",
		runID, seed, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("begin run %s: %w", runID, err)
	}
	slog.Info("journal run started", "run", runID, "seed", seed)
	return nil
}

// GetRun looks up a run by ID.
func (s *Store) GetRun(runID string) (Run, error) {
	var r Run
	err := s.conn.Get(&r, "SELECT id, seed, started_at FROM runs WHERE id = ?", runID)
	return r, err
}

// RecordEvents appends events for a run.
func (s *Store) RecordEvents(runID string, events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex("INSERT INTO events (run_id, tick, category, description) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.Exec(runID, e.Tick, e.Category, e.Description); err != nil {
			return fmt.Errorf("insert event at tick %d: %w", e.Tick, err)
		}
	}

	return tx.Commit()
}

// RecordCensus writes one row per species for a census snapshot.
func (s *Store) RecordCensus(runID string, c engine.Census) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, sc := range c.Species {
		_, err := tx.Exec(
			"INSERT INTO census (run_id, tick, species, count, mean_hp) VALUES (?, ?, ?, ?, ?)",
			runID, c.Tick, sc.Species, sc.Count, sc.MeanHP,
		)
		if err != nil {
			return fmt.Errorf("insert census %s: %w", sc.Species, err)
		}
	}

	return tx.Commit()
}

// RecentEvents returns the most recent N events of a run, newest first.
func (s *Store) RecentEvents(runID string, limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := s.conn.Select(&events,
		"SELECT tick, category, description FROM events WHERE run_id = ? ORDER BY id DESC LIMIT ?",
		runID, limit,
	)
	return events, err
}

// CensusHistory returns every census row of one species in tick order.
func (s *Store) CensusHistory(runID, species string) ([]engine.SpeciesCensus, error) {
	var rows []engine.SpeciesCensus
	err := s.conn.Select(&rows,
		"SELECT species, count, mean_hp FROM census WHERE run_id = ? AND species = ? ORDER BY tick",
		runID, species,
	)
	return rows, err
}
