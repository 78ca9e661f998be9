package services

import (
	"database/sql"

	"github.com/postbox-app/postbox-be/internal/models"
)

// AuthEventServiceProvider defines the interface for the auth audit trail.
type AuthEventServiceProvider interface {
	RecordEvent(kind, email string) error
	RecentEvents(limit int) ([]models.AuthEvent, error)
}

// AuthEventService records authentication events (signups, logins, failed
// logins) for auditing.
type AuthEventService struct {
	db *sql.DB
}

// NewAuthEventService creates a new AuthEventService.
func NewAuthEventService(db *sql.DB) *AuthEventService {
	return &AuthEventService{db: db}
}

// RecordEvent logs a new auth event to the database.
func (s *AuthEventService) RecordEvent(kind, email string) error {
	stmt, err := s.db.Prepare("INSERT INTO auth_events (kind, email) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(kind, email)
	return err
}

// RecentEvents retrieves the most recent auth events from the database.
func (s *AuthEventService) RecentEvents(limit int) ([]models.AuthEvent, error) {
	rows, err := s.db.Query("SELECT id, kind, email, created_at FROM auth_events ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.AuthEvent
	for rows.Next() {
		var event models.AuthEvent
		if err := rows.Scan(&event.ID, &event.Kind, &event.Email, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
