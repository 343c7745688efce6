package markerdata

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Register driver

	"geoglobe/globe/markers"
)

// Store is a SQLite table of marker records.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the database at path and ensures the schema exists.
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS markers (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		value REAL NOT NULL DEFAULT 0
	)`)
	return err
}

func (s *Store) Close() error { return s.db.Close() }

// Load returns every record in insertion order, validated.
func (s *Store) Load(ctx context.Context) ([]markers.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, lat, lon, value FROM markers ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query markers: %w", err)
	}
	defer rows.Close()

	var recs []markers.Record
	for rows.Next() {
		var r markers.Record
		if err := rows.Scan(&r.Name, &r.Lat, &r.Lon, &r.Value); err != nil {
			return nil, fmt.Errorf("failed to scan marker: %w", err)
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := markers.ValidateRecords(recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Replace validates recs and swaps the table contents for them in one transaction.
func (s *Store) Replace(ctx context.Context, recs []markers.Record) error {
	if err := markers.ValidateRecords(recs); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM markers`); err != nil {
		return fmt.Errorf("failed to clear markers: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO markers (name, lat, lon, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range recs {
		if _, err := stmt.ExecContext(ctx, r.Name, r.Lat, r.Lon, r.Value); err != nil {
			return fmt.Errorf("failed to insert %q: %w", r.Name, err)
		}
	}
	return tx.Commit()
}

// Count reports the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM markers`).Scan(&n)
	return n, err
}
