package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

func InitDB() error {
	var dbPath string
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		// Production deployments mount a volume and point DATA_DIR at it
		dbPath = filepath.Join(dir, "ledger.db")
	} else if os.Getenv("TEST_DB") == "1" {
		// We're running tests, use in-memory database
		dbPath = ":memory:"
	} else {
		// Local development
		dbPath = "./ledger.db"
	}

	var err error
	// Add connection parameters to better handle concurrency
	dsn := dbPath + "?_journal=WAL&_timeout=10000&_busy_timeout=10000&_foreign_keys=on"
	DB, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}

	// Configure database connection
	if dbPath == ":memory:" {
		// Every pooled connection gets its own in-memory database, so the
		// pool must stay at a single connection
		DB.SetMaxOpenConns(1)
	} else {
		DB.SetMaxOpenConns(5)
		DB.SetMaxIdleConns(5)
		DB.SetConnMaxLifetime(time.Minute * 5)
	}

	// Execute PRAGMA statements for better concurrency handling
	_, err = DB.Exec("PRAGMA journal_mode=WAL;")
	if err != nil {
		return err
	}

	_, err = DB.Exec("PRAGMA busy_timeout=5000;")
	if err != nil {
		return err
	}

	// Referenced rows must exist; accounts/categories/members with
	// transactions pointing at them cannot be removed.
	_, err = DB.Exec("PRAGMA foreign_keys=ON;")
	if err != nil {
		return err
	}

	// Test the connection
	err = DB.Ping()
	if err != nil {
		return err
	}

	return CreateSchema(DB)
}

// CreateSchema creates every base table. All statements are idempotent so
// the schema can be applied to both fresh and existing databases.
func CreateSchema(db *sql.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS books (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id TEXT PRIMARY KEY,
			book_id TEXT NOT NULL REFERENCES books(id),
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			balance DECIMAL NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			icon TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT 'expense',
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS members (
			id TEXT PRIMARY KEY,
			book_id TEXT NOT NULL REFERENCES books(id),
			name TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			book_id TEXT NOT NULL REFERENCES books(id),
			amount DECIMAL NOT NULL,
			type TEXT NOT NULL,
			category_id TEXT NOT NULL REFERENCES categories(id),
			account_id TEXT NOT NULL REFERENCES accounts(id),
			member_id TEXT NOT NULL REFERENCES members(id),
			date DATE NOT NULL,
			description TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS transfer_transactions (
			id TEXT PRIMARY KEY,
			book_id TEXT NOT NULL REFERENCES books(id),
			amount DECIMAL NOT NULL,
			from_account_id TEXT NOT NULL REFERENCES accounts(id),
			to_account_id TEXT NOT NULL REFERENCES accounts(id),
			member_id TEXT NOT NULL REFERENCES members(id),
			date DATE NOT NULL,
			description TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			user_id TEXT PRIMARY KEY,
			current_book_id TEXT REFERENCES books(id)
		);`,
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL
		);`,
	}

	for _, stmt := range tables {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
