package services

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"devsync-backend/internal/models"
)

const defaultProfilePhoto = "https://via.placeholder.com/150"

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(name, email, password string) (models.User, error)
	Authenticate(email, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
	ListOthers(exceptID string) ([]models.User, error)
	UpdateProfile(id string, update models.ProfileUpdate) (models.User, error)
}

// UserService provides business logic for account management.
type UserService struct {
	db       *sql.DB
	activity ActivityServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, activity ActivityServiceProvider) *UserService {
	return &UserService{db: db, activity: activity}
}

// Register creates a new account, hashing the password.
func (s *UserService) Register(name, email, password string) (models.User, error) {
	var exists int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM users WHERE email = ?", email).Scan(&exists); err != nil {
		return models.User{}, err
	}
	if exists > 0 {
		return models.User{}, fmt.Errorf("register %s: %w", email, ErrDuplicateEmail)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		ProfilePhoto: defaultProfilePhoto,
		Skills:       []string{},
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, name, email, password_hash) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(user.ID, user.Name, user.Email, user.PasswordHash); err != nil {
		return models.User{}, err
	}

	if s.activity != nil {
		s.activity.Record("user.register", user.Name+" joined", &user.ID)
	}

	// Re-read so schema defaults (photo, empty skills) are filled in,
	// without the password hash.
	return s.GetUserByID(user.ID)
}

// Authenticate verifies a user's credentials.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	var user models.User
	var skillsJSON string
	row := s.db.QueryRow(
		"SELECT id, name, email, password_hash, profile_photo, bio, skills_json, github, linkedin, created_at FROM users WHERE email = ?",
		email,
	)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.ProfilePhoto, &user.Bio, &skillsJSON, &user.GitHub, &user.LinkedIn, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("authenticate %s: %w", email, ErrInvalidCredentials)
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("authenticate %s: %w", email, ErrInvalidCredentials)
	}

	if err := json.Unmarshal([]byte(skillsJSON), &user.Skills); err != nil {
		return models.User{}, err
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user with their connection summaries joined.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	var skillsJSON string
	row := s.db.QueryRow(
		"SELECT id, name, email, profile_photo, bio, skills_json, github, linkedin, created_at FROM users WHERE id = ?",
		id,
	)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.ProfilePhoto,
		&user.Bio, &skillsJSON, &user.GitHub, &user.LinkedIn, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return models.User{}, err
	}

	if err := json.Unmarshal([]byte(skillsJSON), &user.Skills); err != nil {
		return models.User{}, err
	}

	user.Connections, err = s.connectionSummaries(id)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ListOthers returns every account except the given one, without connection joins.
func (s *UserService) ListOthers(exceptID string) ([]models.User, error) {
	rows, err := s.db.Query(
		"SELECT id, name, email, profile_photo, bio, skills_json, github, linkedin, created_at FROM users WHERE id != ? ORDER BY created_at DESC",
		exceptID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		var skillsJSON string
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.ProfilePhoto,
			&user.Bio, &skillsJSON, &user.GitHub, &user.LinkedIn, &user.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(skillsJSON), &user.Skills); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateProfile applies a partial profile update. Nil fields stay
// untouched; non-nil fields overwrite, including with empty values.
func (s *UserService) UpdateProfile(id string, update models.ProfileUpdate) (models.User, error) {
	current, err := s.GetUserByID(id)
	if err != nil {
		return models.User{}, err
	}

	if update.Name != nil {
		current.Name = *update.Name
	}
	if update.Bio != nil {
		current.Bio = *update.Bio
	}
	if update.Skills != nil {
		current.Skills = *update.Skills
	}
	if update.GitHub != nil {
		current.GitHub = *update.GitHub
	}
	if update.LinkedIn != nil {
		current.LinkedIn = *update.LinkedIn
	}
	if update.ProfilePhoto != nil {
		current.ProfilePhoto = *update.ProfilePhoto
	}

	skillsJSON, err := json.Marshal(current.Skills)
	if err != nil {
		return models.User{}, err
	}

	_, err = s.db.Exec(
		"UPDATE users SET name = ?, bio = ?, skills_json = ?, github = ?, linkedin = ?, profile_photo = ? WHERE id = ?",
		current.Name, current.Bio, string(skillsJSON), current.GitHub, current.LinkedIn, current.ProfilePhoto, id,
	)
	if err != nil {
		return models.User{}, err
	}
	return s.GetUserByID(id)
}

// connectionSummaries loads the joined summaries of a user's connections.
func (s *UserService) connectionSummaries(id string) ([]models.UserSummary, error) {
	rows, err := s.db.Query(
		`SELECT u.id, u.name, u.email, u.profile_photo
		 FROM connections c JOIN users u ON u.id = c.peer_id
		 WHERE c.user_id = ?
		 ORDER BY c.created_at`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []models.UserSummary{}
	for rows.Next() {
		var sum models.UserSummary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Email, &sum.ProfilePhoto); err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}
