package services

import (
	"database/sql"
	"fmt"

	"devsync-backend/internal/models"
)

// GraphServiceProvider defines the interface for connection-graph services.
type GraphServiceProvider interface {
	Connect(actingID, targetID string) ([]string, error)
	Disconnect(actingID, targetID string) ([]string, error)
}

// GraphService enforces the symmetric connect/disconnect semantics over
// account edges. An edge is a mirrored pair of rows; both rows are
// written and removed inside one transaction so no one-sided edge can
// survive a crash.
type GraphService struct {
	db       *sql.DB
	activity ActivityServiceProvider
}

// NewGraphService creates a new GraphService.
func NewGraphService(db *sql.DB, activity ActivityServiceProvider) *GraphService {
	return &GraphService{db: db, activity: activity}
}

// Connect adds a symmetric edge between the acting and target accounts.
// Only the acting side's set is checked for an existing edge; the
// transactional write keeps this equivalent to a two-sided check unless
// the table was corrupted outside this service.
func (s *GraphService) Connect(actingID, targetID string) ([]string, error) {
	if actingID == targetID {
		return nil, fmt.Errorf("connect: %w", ErrSelfConnection)
	}

	var target models.User
	err := s.db.QueryRow("SELECT id, name FROM users WHERE id = ?", targetID).Scan(&target.ID, &target.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("connect target %s: %w", targetID, ErrNotFound)
		}
		return nil, err
	}

	var exists int
	err = s.db.QueryRow("SELECT COUNT(1) FROM connections WHERE user_id = ? AND peer_id = ?", actingID, targetID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists > 0 {
		return nil, fmt.Errorf("connect %s -> %s: %w", actingID, targetID, ErrAlreadyConnected)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("INSERT INTO connections(user_id, peer_id) VALUES(?, ?)", actingID, targetID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec("INSERT INTO connections(user_id, peer_id) VALUES(?, ?)", targetID, actingID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if s.activity != nil {
		s.activity.Record("user.connect", "connected with "+target.Name, &actingID)
	}

	return s.connectionIDs(actingID)
}

// Disconnect removes the edge in both directions. Removal is idempotent
// on either side; only an unknown target is an error.
func (s *GraphService) Disconnect(actingID, targetID string) ([]string, error) {
	var exists int
	err := s.db.QueryRow("SELECT COUNT(1) FROM users WHERE id = ?", targetID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("disconnect target %s: %w", targetID, ErrNotFound)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM connections WHERE user_id = ? AND peer_id = ?", actingID, targetID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec("DELETE FROM connections WHERE user_id = ? AND peer_id = ?", targetID, actingID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.connectionIDs(actingID)
}

// connectionIDs returns the ids in a user's connection set.
func (s *GraphService) connectionIDs(userID string) ([]string, error) {
	rows, err := s.db.Query("SELECT peer_id FROM connections WHERE user_id = ? ORDER BY created_at", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
