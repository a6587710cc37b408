package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database. The backend is chosen
// by DB_TYPE: "sqlite" (default, file under data/) or "postgres"
// (connection string from DATABASE_URL).
func Connect() error {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	var db *sqlx.DB
	var err error

	switch dbType {
	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		db, err = sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
	case "sqlite":
		// Create data directory if it doesn't exist
		dataDir := "data"
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %v", err)
		}

		dbPath := filepath.Join(dataDir, "vocabbot.db")
		db, err = sqlx.Connect("sqlite3", dbPath)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}

		// Enable foreign keys
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %v", err)
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	default:
		return fmt.Errorf("unsupported DB_TYPE: %s", dbType)
	}

	DB = db

	// Initialize schema
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	for _, stmt := range schemaStatements(DB.DriverName()) {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %v", err)
		}
	}
	return nil
}

// schemaStatements returns the DDL for the given driver. SQLite and
// Postgres disagree on how auto-increment primary keys are spelled, so
// the key column is substituted per dialect; everything else is shared.
func schemaStatements(driver string) []string {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if driver == "postgres" {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	return []string{
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS users (
			id %s,
			telegram_id INTEGER UNIQUE NOT NULL,
			username TEXT,
			first_name TEXT,
			last_name TEXT,
			words_per_day INTEGER DEFAULT 10,
			notification_hour INTEGER DEFAULT 9,
			notification_enabled BOOLEAN DEFAULT true,
			is_admin BOOLEAN DEFAULT false,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, serial),

		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS topics (
			id %s,
			name TEXT NOT NULL UNIQUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, serial),

		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS words (
			id %s,
			word TEXT NOT NULL,
			translation TEXT NOT NULL,
			description TEXT,
			examples TEXT,
			topic_id INTEGER NOT NULL,
			pronunciation TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (topic_id) REFERENCES topics(id),
			UNIQUE(word, topic_id)
		)`, serial),

		// Cards hold the FSRS scheduling state, one row per user/word.
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS cards (
			id %s,
			user_id INTEGER NOT NULL,
			word_id INTEGER NOT NULL,
			state TEXT NOT NULL DEFAULT 'new',
			difficulty REAL DEFAULT 0,
			stability REAL DEFAULT 0,
			due TIMESTAMP NOT NULL,
			last_review TIMESTAMP,
			reps INTEGER DEFAULT 0,
			lapses INTEGER DEFAULT 0,
			elapsed_days REAL DEFAULT 0,
			scheduled_days REAL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (word_id) REFERENCES words(id),
			UNIQUE(user_id, word_id)
		)`, serial),

		// Legacy user_progress table from the SM-2 era. Created only so the
		// one-shot migration can read it on installations that still have one;
		// new installations get an empty table that is never written to.
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS user_progress (
			id %s,
			user_id INTEGER NOT NULL,
			word_id INTEGER NOT NULL,
			easiness_factor REAL DEFAULT 2.5,
			interval INTEGER DEFAULT 1,
			repetitions INTEGER DEFAULT 0,
			lapses INTEGER DEFAULT 0,
			migrated BOOLEAN DEFAULT false,
			last_review_date TIMESTAMP,
			next_review_date TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, serial),
	}
}
