package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/postbox-app/postbox-be/internal/auth"
	"github.com/postbox-app/postbox-be/internal/models"
	"github.com/postbox-app/postbox-be/internal/services"
)

// AuthHandler handles signup and login requests.
type AuthHandler struct {
	users  services.UserServiceProvider
	events services.AuthEventServiceProvider
	tokens *auth.TokenService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, events services.AuthEventServiceProvider, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{users: users, events: events, tokens: tokens}
}

// CredentialsPayload defines the structure for signup and login requests.
type CredentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the body returned by signup and login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Signup handles new user registration. A successful signup logs the user in
// and returns a bearer token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Email == "" || payload.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.users.CreateUser(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			http.Error(w, "Email already registered", http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	h.recordEvent(models.EventSignup, user.Email)

	token, err := h.tokens.Issue(user.Email)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to issue token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.users.Authenticate(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
			h.recordEvent(models.EventLoginFailed, payload.Email)
			// Same response for unknown email and wrong password
			http.Error(w, "Incorrect email or password", http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("email", payload.Email).Msg("Authentication lookup failed")
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	token, err := h.tokens.Issue(user.Email)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to issue token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	h.recordEvent(models.EventLogin, user.Email)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// recordEvent writes to the audit trail. Audit failures are logged, never
// surfaced to the client.
func (h *AuthHandler) recordEvent(kind, email string) {
	if err := h.events.RecordEvent(kind, email); err != nil {
		log.Error().Err(err).Str("kind", kind).Msg("Failed to record auth event")
	}
}
