package services

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"devsync-backend/internal/database"
)

// newTestDB opens a fresh in-memory database with the full schema.
// The pool is pinned to one connection so every query sees the same
// in-memory file.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New("file::memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { db.Close() })
	return db
}

// seedUser inserts an account directly, bypassing registration.
func seedUser(t *testing.T, db *sql.DB, name, email string) string {
	t.Helper()

	id := uuid.New().String()
	_, err := db.Exec(
		"INSERT INTO users(id, name, email, password_hash) VALUES(?, ?, ?, ?)",
		id, name, email, "x",
	)
	require.NoError(t, err)
	return id
}
