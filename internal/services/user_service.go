package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/postbox-app/postbox-be/internal/auth"
	"github.com/postbox-app/postbox-be/internal/models"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByEmail(email string) (models.User, error)
	CreateUser(email, password string) (models.User, error)
	Authenticate(email, password string) (models.User, error)
}

// UserService provides business logic for account management.
type UserService struct {
	db         *sql.DB
	bcryptCost int
}

// NewUserService creates a new UserService. bcryptCost controls how expensive
// password hashing is.
func NewUserService(db *sql.DB, bcryptCost int) *UserService {
	return &UserService{db: db, bcryptCost: bcryptCost}
}

// GetUserByEmail retrieves a single user by their email, including the
// password hash. Email comparison is exact (case-sensitive). A missing
// account yields ErrUserNotFound; any other error is a datastore fault.
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, email, password_hash, created_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user with email %s: %w", email, ErrUserNotFound)
		}
		return models.User{}, err
	}
	return user, nil
}

// CreateUser registers a new account, hashing the password. Returns
// ErrEmailTaken if the email is already registered. The pre-check read gives
// the common case a clean error; the UNIQUE constraint on users.email closes
// the race between concurrent signups.
func (s *UserService) CreateUser(email, password string) (models.User, error) {
	if _, err := s.GetUserByEmail(email); err == nil {
		return models.User{}, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	row := s.db.QueryRow(
		"INSERT INTO users(email, password_hash) VALUES(?, ?) RETURNING id, email, created_at",
		email, hash,
	)
	var user models.User
	if err := row.Scan(&user.ID, &user.Email, &user.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}
	return user, nil
}

// Authenticate verifies a user's credentials. Unknown email and wrong
// password both yield ErrInvalidCredentials; datastore faults propagate
// unchanged so callers can report them as server errors.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't carry the password hash past this point
	user.PasswordHash = ""
	return user, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return false
}
