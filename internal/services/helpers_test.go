package services_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/internhq/internhub-be/internal/database"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a migrated sqlite database in a temp directory.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

// insertIntern writes an intern row directly, with full control over
// timestamps for the aggregation tests.
func insertIntern(t *testing.T, db *sql.DB, fullName, email, department, status string, createdAt, updatedAt time.Time) string {
	t.Helper()
	id := uuid.New().String()
	_, err := db.Exec(`INSERT INTO interns (id, full_name, email, phone, department, skills_json, status, join_date, created_at, updated_at)
		VALUES (?, ?, ?, '', ?, '[]', ?, ?, ?, ?)`,
		id, fullName, email, department, status, createdAt, createdAt, updatedAt)
	require.NoError(t, err)
	return id
}

// insertTask writes a task row directly.
func insertTask(t *testing.T, db *sql.DB, internID, status string, createdAt, updatedAt time.Time) string {
	t.Helper()
	id := uuid.New().String()
	_, err := db.Exec(`INSERT INTO tasks (id, intern_id, title, description, deadline, status, created_at, updated_at)
		VALUES (?, ?, 'task', '', ?, ?, ?, ?)`,
		id, internID, createdAt.AddDate(0, 0, 7), status, createdAt, updatedAt)
	require.NoError(t, err)
	return id
}
