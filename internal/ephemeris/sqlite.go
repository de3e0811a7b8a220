package ephemeris

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"astrochart/internal/errors"
	"astrochart/internal/models"
)

// SnapshotStore is a Source backed by a SQLite database of precomputed
// positions. An upstream provider populates it with SaveSnapshot; the
// engine only ever reads. Positions are keyed by (body, unix second).
type SnapshotStore struct {
	db      *sql.DB
	version string
}

// NewSnapshotStore opens (or creates) the snapshot database at dbPath.
func NewSnapshotStore(dbPath, version string) (*SnapshotStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open ephemeris database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SnapshotStore{
		db:      db,
		version: version,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize ephemeris schema: %w", err)
	}

	return store, nil
}

func (s *SnapshotStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS positions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		version TEXT NOT NULL,
		body TEXT NOT NULL,
		instant INTEGER NOT NULL,
		longitude REAL NOT NULL,
		latitude REAL NOT NULL,
		distance REAL NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(version, body, instant)
	);

	CREATE INDEX IF NOT EXISTS idx_positions_lookup
		ON positions(version, instant);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveSnapshot stores positions for all bodies at an instant. Existing
// rows for the same (version, body, instant) are replaced.
func (s *SnapshotStore) SaveSnapshot(instant time.Time, positions map[models.Body]RawPosition) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO positions (version, body, instant, longitude, latitude, distance)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	ts := canonicalInstant(instant).Unix()
	for body, pos := range positions {
		if _, err := stmt.Exec(s.version, string(body), ts, pos.Longitude, pos.Latitude, pos.Distance); err != nil {
			return fmt.Errorf("failed to insert position for %s: %w", body, err)
		}
	}

	return tx.Commit()
}

// Resolve implements Source.
func (s *SnapshotStore) Resolve(instant time.Time) (map[models.Body]RawPosition, error) {
	key := canonicalInstant(instant)

	rows, err := s.db.Query(`
		SELECT body, longitude, latitude, distance
		FROM positions
		WHERE version = ? AND instant = ?
		ORDER BY body
	`, s.version, key.Unix())
	if err != nil {
		return nil, errors.NewEphemerisUnavailableError(key, s.version, err)
	}
	defer rows.Close()

	positions := make(map[models.Body]RawPosition)
	for rows.Next() {
		var body string
		var pos RawPosition
		if err := rows.Scan(&body, &pos.Longitude, &pos.Latitude, &pos.Distance); err != nil {
			return nil, errors.NewEphemerisUnavailableError(key, s.version, err)
		}
		positions[models.Body(body)] = pos
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewEphemerisUnavailableError(key, s.version, err)
	}

	if len(positions) == 0 {
		return nil, errors.NewEphemerisUnavailableError(key, s.version, nil)
	}

	return positions, nil
}

// Version implements Source.
func (s *SnapshotStore) Version() string {
	return s.version
}

// Close closes the underlying database.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
