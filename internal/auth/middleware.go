package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/postbox-app/postbox-be/internal/models"
)

// UserResolver looks up the account a verified token subject refers to.
type UserResolver interface {
	GetUserByEmail(email string) (models.User, error)
}

type contextKey string

const userContextKey = contextKey("currentUser")

// Presented to the client for every authentication failure, regardless of
// which check failed.
const unauthenticatedMsg = "Could not validate credentials"

// RequireUser creates a middleware that authenticates requests via the
// Authorization header. On success the resolved user is placed in the request
// context; every failure variant returns the same 401 response.
func RequireUser(tokens *TokenService, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				log.Warn().Str("path", r.URL.Path).Msg("Missing bearer token")
				http.Error(w, unauthenticatedMsg, http.StatusUnauthorized)
				return
			}

			subject, err := tokens.Verify(tokenStr)
			if err != nil {
				log.Warn().Err(err).Str("path", r.URL.Path).Msg("Token verification failed")
				http.Error(w, unauthenticatedMsg, http.StatusUnauthorized)
				return
			}

			user, err := users.GetUserByEmail(subject)
			if err != nil {
				// Token subject no longer resolves to an account.
				log.Warn().Err(err).Str("path", r.URL.Path).Msg("Token subject not found")
				http.Error(w, unauthenticatedMsg, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the authenticated user stored by RequireUser.
func CurrentUser(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey).(models.User)
	return user, ok
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
