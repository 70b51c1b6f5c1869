package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"devsync-backend/internal/models"
)

// ActivityServiceProvider defines the interface for the activity log.
type ActivityServiceProvider interface {
	Record(activityType, message string, userID *string)
	GetRecent(limit int) ([]models.Activity, error)
	Prune(olderThan time.Duration) (int64, error)
}

// ActivityService keeps a best-effort log of user-visible actions.
type ActivityService struct {
	db *sql.DB
}

// NewActivityService creates a new ActivityService.
func NewActivityService(db *sql.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Record writes an activity entry. Failures are logged and swallowed;
// the log must never fail the request that produced it.
func (s *ActivityService) Record(activityType, message string, userID *string) {
	_, err := s.db.Exec(
		"INSERT INTO activity (id, type, message, user_id) VALUES (?, ?, ?, ?)",
		uuid.New().String(), activityType, message, userID,
	)
	if err != nil {
		log.Error().Err(err).Str("type", activityType).Msg("Failed to record activity")
	}
}

// GetRecent retrieves the most recent activity entries.
func (s *ActivityService) GetRecent(limit int) ([]models.Activity, error) {
	rows, err := s.db.Query(
		"SELECT id, type, message, user_id, created_at FROM activity ORDER BY created_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.Activity{}
	for rows.Next() {
		var entry models.Activity
		if err := rows.Scan(&entry.ID, &entry.Type, &entry.Message, &entry.UserID, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Prune deletes entries older than the retention window and returns
// how many were removed.
func (s *ActivityService) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).UTC().Format("2006-01-02 15:04:05")
	res, err := s.db.Exec("DELETE FROM activity WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
