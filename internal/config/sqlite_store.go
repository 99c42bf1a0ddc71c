package config

import (
	"database/sql"
	"fmt"
	"math"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/micro-nova/amplipi-prefs/internal/models"
	"github.com/micro-nova/amplipi-prefs/internal/prefs"
)

const preferencesSchema = `
CREATE TABLE IF NOT EXISTS object_preferences (
	controller     TEXT    NOT NULL,
	collection     TEXT    NOT NULL,
	object_id      INTEGER NOT NULL,
	favorite       INTEGER,
	last_used_date TEXT,
	use_count      INTEGER,
	PRIMARY KEY (controller, collection, object_id)
);`

// SQLiteStore keeps preferences in a SQLite database, one row per entity.
// A NULL column is an unset value. Writes are immediate.
type SQLiteStore struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// OpenSQLiteStore opens or creates the database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	connStr := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(preferencesSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating object_preferences table: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file.
func (s *SQLiteStore) Path() string { return s.path }

// Load reads every row stored for controllerID.
func (s *SQLiteStore) Load(controllerID string) (*ControllerPreferences, error) {
	if err := checkControllerID(controllerID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT collection, object_id, favorite, last_used_date, use_count
		 FROM object_preferences WHERE controller = ?`, controllerID)
	if err != nil {
		return nil, fmt.Errorf("querying preferences: %w", err)
	}
	defer rows.Close()

	p := NewControllerPreferences()
	for rows.Next() {
		var (
			collection string
			id         int
			favorite   sql.NullBool
			lastUsed   sql.NullString
			useCount   sql.NullInt64
		)
		if err := rows.Scan(&collection, &id, &favorite, &lastUsed, &useCount); err != nil {
			return nil, fmt.Errorf("scanning preferences: %w", err)
		}

		var f prefs.Fields
		if favorite.Valid {
			f.Favorite = &favorite.Bool
		}
		if lastUsed.Valid {
			t, err := time.Parse(time.RFC3339Nano, lastUsed.String)
			if err != nil {
				return nil, fmt.Errorf("parsing last_used_date of %s %d: %w", collection, id, err)
			}
			f.LastUsedDate = &t
		}
		if useCount.Valid {
			if useCount.Int64 < 0 {
				return nil, models.InvalidArgument(fmt.Sprintf("negative use_count for %s %d", collection, id))
			}
			n := uint64(useCount.Int64)
			f.UseCount = &n
		}
		rec, err := prefs.FromFields(f)
		if err != nil {
			return nil, err
		}

		switch collection {
		case GroupsKey:
			p.Groups.SetRecord(id, rec)
		case ZonesKey:
			p.Zones.SetRecord(id, rec)
		default:
			return nil, models.InvalidArgument(fmt.Sprintf("unknown collection %q", collection))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}
	return p, nil
}

// Save replaces the controller's rows in a single transaction.
func (s *SQLiteStore) Save(controllerID string, p *ControllerPreferences) error {
	if err := checkSave(controllerID, p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM object_preferences WHERE controller = ?`, controllerID); err != nil {
		return fmt.Errorf("clearing preferences: %w", err)
	}
	stmt, err := tx.Prepare(
		`INSERT INTO object_preferences
		 (controller, collection, object_id, favorite, last_used_date, use_count)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range []struct {
		key   string
		table *prefs.Table
	}{{GroupsKey, p.Groups}, {ZonesKey, p.Zones}} {
		if c.table == nil {
			continue
		}
		for _, id := range c.table.Identifiers() {
			rec, err := c.table.Record(id)
			if err != nil {
				return err
			}
			f := rec.Fields()

			var favorite sql.NullBool
			if f.Favorite != nil {
				favorite = sql.NullBool{Bool: *f.Favorite, Valid: true}
			}
			var lastUsed sql.NullString
			if f.LastUsedDate != nil {
				lastUsed = sql.NullString{String: f.LastUsedDate.UTC().Format(time.RFC3339Nano), Valid: true}
			}
			var useCount sql.NullInt64
			if f.UseCount != nil {
				if *f.UseCount > math.MaxInt64 {
					return models.InvalidArgument(fmt.Sprintf("use_count of %s %d out of range", c.key, id))
				}
				useCount = sql.NullInt64{Int64: int64(*f.UseCount), Valid: true}
			}

			if _, err := stmt.Exec(controllerID, c.key, id, favorite, lastUsed, useCount); err != nil {
				return fmt.Errorf("inserting %s %d: %w", c.key, id, err)
			}
		}
	}
	return tx.Commit()
}

// Flush is a no-op; every Save commits.
func (s *SQLiteStore) Flush() error { return nil }

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

var _ Store = (*SQLiteStore)(nil)
