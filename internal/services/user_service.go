package services

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/internhq/internhub-be/internal/auth"
	"github.com/internhq/internhub-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(username, email, password string) (models.User, error)
	Authenticate(identifier, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
	GetAllUsers() ([]models.User, error)
	DeleteUser(id string) error
	UpdateProfile(id string, update models.ProfileUpdate) (models.User, error)
	SaveAvatar(id, filename string, data io.Reader) (models.User, error)
	ResolveSubject(userID string) (models.User, error)
}

// UserService provides business logic for user accounts and credentials.
type UserService struct {
	db         *sql.DB
	uploadDir  string
	bcryptCost int
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, uploadDir string, bcryptCost int) *UserService {
	return &UserService{db: db, uploadDir: uploadDir, bcryptCost: bcryptCost}
}

const userColumns = `id, username, email, password_hash, is_active, is_admin,
	full_name, phone, department, avatar_url, created_at, updated_at`

func scanUser(scanner interface{ Scan(...interface{}) error }) (models.User, error) {
	var user models.User
	var fullName, phone, department, avatarURL sql.NullString
	err := scanner.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.IsActive, &user.IsAdmin,
		&fullName, &phone, &department, &avatarURL,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, err
	}
	user.FullName = fullName.String
	user.Phone = phone.String
	user.Department = department.String
	user.AvatarURL = avatarURL.String
	return user, nil
}

// Register creates a new user account with a hashed password.
func (s *UserService) Register(username, email, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if len(username) < 3 {
		return models.User{}, fmt.Errorf("%w: username must be at least 3 characters", models.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return models.User{}, fmt.Errorf("%w: invalid email address", models.ErrValidation)
	}
	if len(password) < 6 {
		return models.User{}, fmt.Errorf("%w: password must be at least 6 characters", models.ErrValidation)
	}

	var taken string
	err := s.db.QueryRow("SELECT username FROM users WHERE username = ? OR email = ?", username, email).Scan(&taken)
	if err == nil {
		return models.User{}, fmt.Errorf("%w: username or email already taken", models.ErrConflict)
	}
	if err != sql.ErrNoRows {
		return models.User{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	stmt, err := s.db.Prepare(`INSERT INTO users(id, username, email, password_hash, is_active, is_admin, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Username, user.Email, user.PasswordHash, user.IsActive, user.IsAdmin, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return models.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Authenticate verifies a user's credentials. The identifier may be a
// username or an email address.
func (s *UserService) Authenticate(identifier, password string) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE username = ? OR email = ?", identifier, identifier)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("%w: incorrect username or password", models.ErrUnauthenticated)
		}
		return models.User{}, err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return models.User{}, fmt.Errorf("%w: incorrect username or password", models.ErrUnauthenticated)
	}

	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("%w: user %s", models.ErrNotFound, id)
		}
		return models.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

// ResolveSubject resolves a token subject to its user record. Used by the
// auth middleware; missing users fail the session.
func (s *UserService) ResolveSubject(userID string) (models.User, error) {
	return s.GetUserByID(userID)
}

// GetAllUsers retrieves every user account.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	rows, err := s.db.Query("SELECT " + userColumns + " FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = ""
		users = append(users, user)
	}
	return users, rows.Err()
}

// DeleteUser removes a user account.
func (s *UserService) DeleteUser(id string) error {
	res, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: user %s", models.ErrNotFound, id)
	}
	return nil
}

// UpdateProfile applies a partial update to a user's profile. Only the
// allow-listed fields carried by ProfileUpdate can change.
func (s *UserService) UpdateProfile(id string, update models.ProfileUpdate) (models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return models.User{}, err
	}

	if update.Username != nil {
		user.Username = strings.TrimSpace(*update.Username)
	}
	if update.Email != nil {
		user.Email = strings.TrimSpace(*update.Email)
	}
	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.Department != nil {
		user.Department = *update.Department
	}

	// A new username or email must not collide with a different user.
	if update.Username != nil || update.Email != nil {
		var other string
		err := s.db.QueryRow("SELECT id FROM users WHERE (username = ? OR email = ?) AND id != ?",
			user.Username, user.Email, id).Scan(&other)
		if err == nil {
			return models.User{}, fmt.Errorf("%w: username or email already taken", models.ErrConflict)
		}
		if err != sql.ErrNoRows {
			return models.User{}, err
		}
	}

	user.UpdatedAt = time.Now().UTC()
	_, err = s.db.Exec(`UPDATE users SET username = ?, email = ?, full_name = ?, phone = ?, department = ?, updated_at = ?
		WHERE id = ?`,
		user.Username, user.Email, user.FullName, user.Phone, user.Department, user.UpdatedAt, id)
	if err != nil {
		return models.User{}, err
	}
	return s.GetUserByID(id)
}

// SaveAvatar stores an uploaded avatar under the upload directory with a
// random name and records its URL on the user. Earlier avatar files are not
// removed.
func (s *UserService) SaveAvatar(id, filename string, data io.Reader) (models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return models.User{}, err
	}

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return models.User{}, err
	}

	name := uuid.New().String() + filepath.Ext(filename)
	dst, err := os.Create(filepath.Join(s.uploadDir, name))
	if err != nil {
		return models.User{}, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, data); err != nil {
		return models.User{}, err
	}

	user.AvatarURL = "/uploads/" + name
	user.UpdatedAt = time.Now().UTC()
	_, err = s.db.Exec("UPDATE users SET avatar_url = ?, updated_at = ? WHERE id = ?", user.AvatarURL, user.UpdatedAt, id)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}
