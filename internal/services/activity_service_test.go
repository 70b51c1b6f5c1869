package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivity_RecordAndGetRecent(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db)

	alice := seedUser(t, db, "Alice", "alice@x.com")

	svc.Record("user.register", "Alice joined", &alice)
	svc.Record("post.create", "Alice published a post", &alice)

	entries, err := svc.GetRecent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		require.NotNil(t, e.UserID)
		assert.Equal(t, alice, *e.UserID)
	}
}

func TestActivity_Prune(t *testing.T) {
	db := newTestDB(t)
	svc := NewActivityService(db)

	_, err := db.Exec(
		"INSERT INTO activity(id, type, message, created_at) VALUES('old', 'user.register', 'stale', '2020-01-01 00:00:00')")
	require.NoError(t, err)
	svc.Record("post.create", "fresh", nil)

	removed, err := svc.Prune(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	entries, err := svc.GetRecent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "fresh", entries[0].Message)
}
