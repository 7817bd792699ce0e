package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

// Initialize opens the SQLite database at path, creating its directory,
// and runs migrations. The handle is kept in DB.
func Initialize(path string) error {
	db, err := Open(path)
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// Open opens a migrated SQLite database with foreign keys enabled
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// RunMigrations creates all necessary tables
func RunMigrations(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		semester INTEGER NOT NULL,
		skills TEXT NOT NULL DEFAULT '[]',
		preferred_roles TEXT NOT NULL DEFAULT '[]',
		target_companies TEXT NOT NULL DEFAULT '[]',
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		CHECK(semester BETWEEN 1 AND 8)
	);

	CREATE TABLE IF NOT EXISTS listings (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		company TEXT NOT NULL,
		company_domain TEXT,
		platform TEXT,
		location TEXT,
		duration TEXT,
		stipend TEXT,
		required_skills TEXT NOT NULL DEFAULT '[]',
		preferred_skills TEXT NOT NULL DEFAULT '[]',
		responsibilities TEXT NOT NULL DEFAULT '[]',
		application_deadline DATETIME,
		start_date DATETIME,
		source_url TEXT UNIQUE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS verification_results (
		listing_id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		trust_score INTEGER NOT NULL,
		signals TEXT NOT NULL,
		red_flags TEXT NOT NULL DEFAULT '[]',
		notes TEXT,
		verified_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (listing_id) REFERENCES listings(id) ON DELETE CASCADE,
		CHECK(status IN ('Verified', 'Use Caution', 'Potential Scam', 'Pending')),
		CHECK(trust_score BETWEEN 0 AND 100)
	);

	CREATE TABLE IF NOT EXISTS skill_matches (
		profile_id TEXT NOT NULL,
		listing_id TEXT NOT NULL,
		match_percentage INTEGER NOT NULL,
		result TEXT NOT NULL,
		computed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (profile_id, listing_id),
		FOREIGN KEY (profile_id) REFERENCES profiles(id) ON DELETE CASCADE,
		FOREIGN KEY (listing_id) REFERENCES listings(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_listings_company ON listings(company);
	CREATE INDEX IF NOT EXISTS idx_verification_status ON verification_results(status);
	CREATE INDEX IF NOT EXISTS idx_skill_matches_listing ON skill_matches(listing_id);
	`

	_, err := db.Exec(schema)
	return err
}
