package eventsource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists event streams in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) a SQLite-backed store at path.
// Use ":memory:" for an ephemeral store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps :memory: databases alive across calls and
	// serializes writers, which SQLite wants anyway.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			stream    TEXT    NOT NULL,
			version   INTEGER NOT NULL,
			id        TEXT    NOT NULL,
			type      TEXT    NOT NULL,
			data      BLOB,
			timestamp TEXT    NOT NULL,
			PRIMARY KEY (stream, version)
		)`)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Append implements Store.
func (s *SQLiteStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	var head int
	row := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), -1) FROM events WHERE stream = ?`, stream)
	if err := row.Scan(&head); err != nil {
		return 0, fmt.Errorf("read stream head: %w", err)
	}
	if head != expectedVersion {
		return 0, fmt.Errorf("%w: stream %q is at version %d, expected %d", ErrVersionConflict, stream, head, expectedVersion)
	}

	for i, event := range events {
		version := head + 1 + i
		_, err := tx.ExecContext(ctx,
			`INSERT INTO events (stream, version, id, type, data, timestamp) VALUES (?, ?, ?, ?, ?, ?)`,
			stream, version, event.ID, event.Type, []byte(event.Data), event.Timestamp.Format(time.RFC3339Nano))
		if err != nil {
			return 0, fmt.Errorf("insert event %d: %w", version, err)
		}
		event.Stream = stream
		event.Version = version
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit append: %w", err)
	}
	return head + len(events), nil
}

// Read implements Store.
func (s *SQLiteStore) Read(ctx context.Context, stream string, from int) ([]*Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT version, id, type, data, timestamp FROM events WHERE stream = ? AND version >= ? ORDER BY version`,
		stream, from)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{Stream: stream}
		var data []byte
		var ts string
		if err := rows.Scan(&e.Version, &e.ID, &e.Type, &data, &ts); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if len(data) > 0 {
			e.Data = data
		}
		e.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse event timestamp: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Streams returns the distinct stream names present in the store.
func (s *SQLiteStore) Streams(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT stream FROM events ORDER BY stream`)
	if err != nil {
		return nil, fmt.Errorf("query streams: %w", err)
	}
	defer rows.Close()

	var streams []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		streams = append(streams, name)
	}
	return streams, rows.Err()
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}

var _ Store = (*SQLiteStore)(nil)
