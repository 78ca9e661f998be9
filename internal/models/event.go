package models

import "time"

// Kinds of recorded authentication events.
const (
	EventSignup      = "signup"
	EventLogin       = "login"
	EventLoginFailed = "login_failed"
)

// AuthEvent is one row of the authentication audit trail.
type AuthEvent struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
