// Package storage persists conversations, the exercise library and the user
// profile in a local SQLite database under the data directory.
package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store owns the application database. All entity operations hang off it.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at <dataDir>/trainai.db and
// ensures the schema exists. Writes are serialized through a single
// connection; SQLite handles locking beyond that.
func Open(dataDir string) (*Store, error) {
	dbPath := filepath.Join(dataDir, "trainai.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS conversations (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		timestamp DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id);
	CREATE TABLE IF NOT EXISTS exercises (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		muscle_groups TEXT NOT NULL DEFAULT '',
		equipment TEXT NOT NULL DEFAULT '',
		instructions TEXT NOT NULL DEFAULT '',
		difficulty TEXT NOT NULL DEFAULT '',
		exercise_type TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		is_custom INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL
	);
	CREATE TABLE IF NOT EXISTS profile (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		name TEXT NOT NULL DEFAULT '',
		nickname TEXT NOT NULL DEFAULT '',
		birth_year INTEGER,
		gender TEXT,
		height_cm REAL,
		start_weight_kg REAL,
		current_weight_kg REAL,
		goal_weight_kg REAL,
		body_fat_percent REAL,
		primary_goal TEXT,
		goal_deadline DATETIME,
		motivation_note TEXT,
		experience_level TEXT,
		medical_conditions TEXT,
		current_injuries TEXT,
		medications TEXT,
		activity_level TEXT,
		sleep_hours_per_night REAL,
		stress_level INTEGER,
		dietary_preferences TEXT,
		food_allergies TEXT,
		training_location TEXT,
		preferred_days_per_week INTEGER,
		preferred_session_minutes INTEGER,
		preferred_time_of_day TEXT
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
