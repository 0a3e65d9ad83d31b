package storage

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sync"

	ng "github.com/sharnoff/neurograph"

	_ "modernc.org/sqlite"
)

const (
	kindTopology = "topology"
	kindFFNN     = "ffnn"
)

// SQLiteStore implements Store on a single SQLite file.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore returns a store backed by the SQLite database at path. Init must be called
// before anything else.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveNetwork(ctx context.Context, name string, net *ng.Network) error {
	return s.save(ctx, name, kindTopology, net)
}

func (s *SQLiteStore) GetNetwork(ctx context.Context, name string) (*ng.Network, bool, error) {
	payload, ok, err := s.get(ctx, name, kindTopology)
	if err != nil || !ok {
		return nil, false, err
	}

	net, err := ng.ParseNetwork(bytes.NewReader(payload))
	if err != nil {
		return nil, false, fmt.Errorf("decode network %s: %w", name, err)
	}
	return net, true, nil
}

func (s *SQLiteStore) SaveFeedForward(ctx context.Context, name string, ff *ng.FeedForward) error {
	return s.save(ctx, name, kindFFNN, ff)
}

func (s *SQLiteStore) GetFeedForward(ctx context.Context, name string) (*ng.FeedForward, bool, error) {
	payload, ok, err := s.get(ctx, name, kindFFNN)
	if err != nil || !ok {
		return nil, false, err
	}

	ff, err := ng.ParseFeedForward(bytes.NewReader(payload))
	if err != nil {
		return nil, false, fmt.Errorf("decode feed-forward %s: %w", name, err)
	}
	return ff, true, nil
}

func (s *SQLiteStore) ListNetworks(ctx context.Context) ([]string, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT name FROM networks ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLiteStore) DeleteNetwork(ctx context.Context, name string) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `DELETE FROM networks WHERE name = ?`, name)
	return err
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) save(ctx context.Context, name, kind string, src io.WriterTo) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if _, err := src.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode %s %s: %w", kind, name, err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO networks (name, kind, payload)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			kind = excluded.kind,
			payload = excluded.payload
	`, name, kind, buf.Bytes())
	return err
}

func (s *SQLiteStore) get(ctx context.Context, name, kind string) ([]byte, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	var (
		gotKind string
		payload []byte
	)
	err = db.QueryRowContext(ctx, `SELECT kind, payload FROM networks WHERE name = ?`, name).
		Scan(&gotKind, &payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	if gotKind != kind {
		return nil, false, fmt.Errorf("%s is a %s, not a %s", name, gotKind, kind)
	}
	return payload, true, nil
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS networks (
			name TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			payload BLOB NOT NULL
		);
	`)
	return err
}
