package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	// Cascade deletes rely on this.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT UNIQUE,
		email TEXT UNIQUE,
		password_hash TEXT,
		is_active INTEGER NOT NULL DEFAULT 1,
		is_admin INTEGER NOT NULL DEFAULT 0,
		full_name TEXT,
		phone TEXT,
		department TEXT,
		avatar_url TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS interns (
		id TEXT NOT NULL PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		phone TEXT,
		department TEXT NOT NULL,
		position TEXT,
		university TEXT,
		-- Ordered skill list stored as JSON text
		skills_json TEXT,
		status TEXT NOT NULL DEFAULT 'active',
		join_date DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT NOT NULL PRIMARY KEY,
		intern_id TEXT NOT NULL REFERENCES interns(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT,
		deadline DATETIME,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME,
		updated_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS notifications (
		id TEXT NOT NULL PRIMARY KEY,
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		is_read INTEGER NOT NULL DEFAULT 0,
		priority TEXT NOT NULL DEFAULT 'medium',
		created_at DATETIME
	);

	CREATE INDEX IF NOT EXISTS idx_interns_department ON interns(department);
	CREATE INDEX IF NOT EXISTS idx_tasks_intern_id ON tasks(intern_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
	CREATE INDEX IF NOT EXISTS idx_notifications_is_read ON notifications(is_read);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
