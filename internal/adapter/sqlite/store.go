// Package sqlite persists resolved locations per session.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/powerplant/plant-advisor/internal/domain"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a session has no saved location.
var ErrNotFound = domain.ErrNoSavedLocation

const defaultRecentLimit = 25

// Store wraps the SQLite database connection and schema lifecycle.
type Store struct {
	db    *sql.DB
	clock clockwork.Clock
}

// Open initializes the database connection, creating directories as needed.
func Open(path string) (*Store, error) {
	return open(path, clockwork.NewRealClock())
}

func open(path string, clk clockwork.Clock) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(ON)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &Store{db: db, clock: clk}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping checks the database handle.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// InitSchema ensures the saved_locations table exists.
func (s *Store) InitSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS saved_locations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			lat REAL NOT NULL,
			lng REAL NOT NULL,
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			zip_code TEXT NOT NULL DEFAULT '',
			hardiness_zone TEXT NOT NULL,
			formatted_address TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			saved_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_saved_locations_session ON saved_locations(session_id, id);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// SaveLocation appends loc to the session's history.
func (s *Store) SaveLocation(ctx context.Context, sessionID string, loc domain.Location) error {
	if sessionID == "" {
		return fmt.Errorf("save location: empty session id")
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO saved_locations (session_id, lat, lng, city, state, zip_code, hardiness_zone, formatted_address, source, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		sessionID,
		loc.Lat,
		loc.Lon,
		loc.City,
		loc.State,
		loc.ZipCode,
		loc.HardinessZone,
		loc.FormattedAddress,
		loc.Source,
		s.clock.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert saved location: %w", err)
	}
	return nil
}

// LatestLocation returns the most recently saved location for sessionID.
func (s *Store) LatestLocation(ctx context.Context, sessionID string) (domain.SavedLocation, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT session_id, lat, lng, city, state, zip_code, hardiness_zone, formatted_address, source, saved_at
		FROM saved_locations WHERE session_id = ? ORDER BY id DESC LIMIT 1;`,
		sessionID,
	)

	saved, err := scanSaved(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SavedLocation{}, fmt.Errorf("session %q: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return domain.SavedLocation{}, err
	}
	return saved, nil
}

// RecentLocations returns the newest saved locations across all sessions.
func (s *Store) RecentLocations(ctx context.Context, limit int) ([]domain.SavedLocation, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT session_id, lat, lng, city, state, zip_code, hardiness_zone, formatted_address, source, saved_at
		FROM saved_locations ORDER BY id DESC LIMIT ?;`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent locations: %w", err)
	}
	defer rows.Close()

	out := make([]domain.SavedLocation, 0, limit)
	for rows.Next() {
		saved, err := scanSaved(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, saved)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved locations: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSaved(sc scanner) (domain.SavedLocation, error) {
	var (
		saved   domain.SavedLocation
		savedAt string
	)
	loc := &saved.Location
	err := sc.Scan(
		&saved.SessionID,
		&loc.Lat,
		&loc.Lon,
		&loc.City,
		&loc.State,
		&loc.ZipCode,
		&loc.HardinessZone,
		&loc.FormattedAddress,
		&loc.Source,
		&savedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SavedLocation{}, err
	}
	if err != nil {
		return domain.SavedLocation{}, fmt.Errorf("scan saved location: %w", err)
	}

	saved.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return domain.SavedLocation{}, fmt.Errorf("parse saved_at %q: %w", savedAt, err)
	}
	return saved, nil
}
