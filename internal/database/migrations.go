package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a versioned schema change
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations are applied in order at startup; versions already recorded in
// the migrations table are skipped
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_venues",
		SQL: `
			CREATE TABLE IF NOT EXISTS venues (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				category TEXT NOT NULL DEFAULT 'OTHER',
				latitude REAL,
				longitude REAL
			)
		`,
	},
	{
		Version: 2,
		Name:    "create_check_ins",
		SQL: `
			CREATE TABLE IF NOT EXISTS check_ins (
				id TEXT PRIMARY KEY,
				venue_id TEXT NOT NULL REFERENCES venues(id),
				user_id TEXT NOT NULL,
				created_at INTEGER NOT NULL,
				mood INTEGER NOT NULL,
				intent TEXT NOT NULL,
				relationship_status TEXT,
				ons_intent TEXT,
				gender TEXT,
				age_band TEXT
			)
		`,
	},
	{
		Version: 3,
		Name:    "index_check_ins_venue_time",
		SQL: `
			CREATE INDEX IF NOT EXISTS idx_check_ins_venue_time
				ON check_ins(venue_id, created_at);
			CREATE INDEX IF NOT EXISTS idx_check_ins_time
				ON check_ins(created_at)
		`,
	},
	{
		Version: 4,
		Name:    "create_smart_checkin_state",
		SQL: `
			CREATE TABLE IF NOT EXISTS smart_checkin_state (
				user_id TEXT PRIMARY KEY,
				last_checkin_venue_id TEXT,
				last_checkin_at INTEGER
			)
		`,
	},
}

// Migrate applies all pending migrations
func Migrate(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		// Schema change and its version record land together or not at all
		err := Transaction(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.SQL); err != nil {
				return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
			}
			if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		log.Printf("Applied migration %d: %s", m.Version, m.Name)
	}

	return nil
}

func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}
