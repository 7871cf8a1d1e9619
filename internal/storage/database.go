package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
-- Current session: flat tab strip
CREATE TABLE IF NOT EXISTS session_tabs (
    id TEXT PRIMARY KEY,
    url TEXT NOT NULL,
    title TEXT NOT NULL,
    group_id TEXT,
    pinned INTEGER NOT NULL DEFAULT 0,
    position INTEGER NOT NULL
);

-- Current session: groups
CREATE TABLE IF NOT EXISTS session_groups (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    collapsed INTEGER NOT NULL DEFAULT 1,
    position INTEGER NOT NULL
);

-- Current session: ordered group membership
CREATE TABLE IF NOT EXISTS session_group_tabs (
    group_id TEXT NOT NULL,
    tab_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (group_id, tab_id),
    FOREIGN KEY (group_id) REFERENCES session_groups(id) ON DELETE CASCADE
);

-- Current session: custom split percentages, one row per panel
CREATE TABLE IF NOT EXISTS session_split_ratios (
    group_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    ratio REAL NOT NULL,
    PRIMARY KEY (group_id, position),
    FOREIGN KEY (group_id) REFERENCES session_groups(id) ON DELETE CASCADE
);

-- Current session: scalar values such as the active tab
CREATE TABLE IF NOT EXISTS session_meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

-- Named sessions saved by the user
CREATE TABLE IF NOT EXISTS saved_sessions (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    snapshot TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

-- Bookmark folders
CREATE TABLE IF NOT EXISTS bookmark_folders (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    parent_id TEXT,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (parent_id) REFERENCES bookmark_folders(id) ON DELETE CASCADE
);

-- Bookmarks
CREATE TABLE IF NOT EXISTS bookmarks (
    id TEXT PRIMARY KEY,
    url TEXT NOT NULL,
    title TEXT NOT NULL,
    folder_id TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (folder_id) REFERENCES bookmark_folders(id) ON DELETE CASCADE
);

-- Browsing history, one row per url
CREATE TABLE IF NOT EXISTS history (
    id TEXT PRIMARY KEY,
    url TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    visited_at INTEGER NOT NULL,
    visit_count INTEGER NOT NULL DEFAULT 1
);

-- Indices for faster queries
CREATE INDEX IF NOT EXISTS idx_session_tabs_position ON session_tabs(position);
CREATE INDEX IF NOT EXISTS idx_session_groups_position ON session_groups(position);
CREATE INDEX IF NOT EXISTS idx_bookmarks_folder ON bookmarks(folder_id);
CREATE INDEX IF NOT EXISTS idx_bookmark_folders_parent ON bookmark_folders(parent_id);
CREATE INDEX IF NOT EXISTS idx_history_visited ON history(visited_at);
`

// Database wraps a SQL database connection
type Database struct {
	db *sql.DB
}

// NewDatabase creates a new database connection and initializes the schema
func NewDatabase(path string) (*Database, error) {
	// Open database with WAL mode for better concurrent access
	db, err := sql.Open("sqlite", path+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// PRAGMA foreign_keys and :memory: databases are both per connection
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Enable foreign keys (required for CASCADE to work)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Database{db: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

// DB returns the underlying database connection
func (d *Database) DB() *sql.DB {
	return d.db
}

// BeginTx starts a new transaction
func (d *Database) BeginTx() (*sql.Tx, error) {
	return d.db.Begin()
}

// WithTx runs fn inside a transaction, committing on success and rolling
// back when fn returns an error
func (d *Database) WithTx(fn func(tx *sql.Tx) error) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
