// Package storage provides SQLite-based persistence for replay recordings.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/replay"
)

// ErrNotFound is returned when a recording does not exist.
var ErrNotFound = errors.New("storage: recording not found")

// Store manages the SQLite database connection for recordings.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS recordings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			final_score INTEGER NOT NULL DEFAULT 0,
			high_score INTEGER NOT NULL DEFAULT 0,
			final_hash INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS recording_events (
			recording_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			action TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (recording_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRecording stores a recording and its events in one transaction.
// Returns the ID of the inserted recording.
func (s *Store) SaveRecording(rec replay.Recording) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, fmt.Errorf("storage: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.Exec(
		`INSERT INTO recordings (seed, width, height, final_score, high_score, final_hash, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Seed, rec.Width, rec.Height, rec.FinalScore, rec.HighScore,
		int64(rec.FinalHash), //#nosec G115 -- stored bit for bit
		rec.TotalTicks(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save recording: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO recording_events (recording_id, seq, action, ticks) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare event insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range rec.Events {
		if _, err := stmt.Exec(id, i, e.Action.String(), e.Ticks); err != nil {
			return 0, fmt.Errorf("storage: cannot save event %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit recording: %w", err)
	}
	return id, nil
}

// Recording loads a recording with all of its events.
func (s *Store) Recording(id int64) (replay.Recording, error) {
	rec, err := scanRecording(s.db.QueryRow(
		`SELECT id, seed, width, height, final_score, high_score, final_hash, created_at
		 FROM recordings
		 WHERE id = ?`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return replay.Recording{}, ErrNotFound
	}
	if err != nil {
		return replay.Recording{}, fmt.Errorf("storage: cannot query recording: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT action, ticks FROM recording_events WHERE recording_id = ? ORDER BY seq`,
		id,
	)
	if err != nil {
		return replay.Recording{}, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var e replay.Event
		if err := rows.Scan(&name, &e.Ticks); err != nil {
			return replay.Recording{}, fmt.Errorf("storage: cannot scan event: %w", err)
		}
		action, ok := core.ParseAction(name)
		if !ok {
			return replay.Recording{}, fmt.Errorf("storage: recording %d: unknown action %q", id, name)
		}
		e.Action = action
		rec.Events = append(rec.Events, e)
	}

	if err := rows.Err(); err != nil {
		return replay.Recording{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rec, nil
}

// RecordingInfo is a recording summary without its events.
type RecordingInfo struct {
	replay.Recording
	Ticks int
}

// ListRecordings returns the most recent recordings, newest first.
func (s *Store) ListRecordings(limit int) ([]RecordingInfo, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, seed, width, height, final_score, high_score, final_hash, created_at, ticks
		 FROM recordings
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var out []RecordingInfo
	for rows.Next() {
		var info RecordingInfo
		rec, err := scanRecording(rows, &info.Ticks)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.Recording = rec
		out = append(out, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

// DeleteRecording removes a recording and its events.
func (s *Store) DeleteRecording(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.Exec("DELETE FROM recordings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete recording: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec("DELETE FROM recording_events WHERE recording_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete events: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRecording reads the common recording columns, followed by any extra
// destinations the caller selected after them.
func scanRecording(row scanner, extra ...any) (replay.Recording, error) {
	var rec replay.Recording
	var hash int64
	var createdAt any

	dest := append([]any{
		&rec.ID, &rec.Seed, &rec.Width, &rec.Height,
		&rec.FinalScore, &rec.HighScore, &hash, &createdAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return replay.Recording{}, err
	}

	rec.FinalHash = uint64(hash) //#nosec G115 -- stored bit for bit
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
