package services

import "errors"

var (
	// ErrEmailTaken is returned when a signup email is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUserNotFound is returned when an email resolves to no account.
	// Datastore faults are never mapped to it.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials covers both unknown email and wrong password, so
	// a caller cannot enumerate registered accounts.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrPostNotFound covers both a nonexistent post and a post owned by
	// someone else, so post ids cannot be probed across accounts.
	ErrPostNotFound = errors.New("post not found")
)
