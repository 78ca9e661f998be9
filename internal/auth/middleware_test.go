package auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/postbox-app/postbox-be/internal/models"
)

type stubUserResolver struct {
	users map[string]models.User
}

func (s *stubUserResolver) GetUserByEmail(email string) (models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return models.User{}, fmt.Errorf("user with email %s not found", email)
	}
	return user, nil
}

func newProtectedHandler(t *testing.T, ts *TokenService, users UserResolver) (http.Handler, *models.User) {
	t.Helper()
	var seen models.User
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := CurrentUser(r.Context())
		if !ok {
			t.Fatal("expected user in request context")
		}
		seen = user
		w.WriteHeader(http.StatusOK)
	})
	return RequireUser(ts, users)(inner), &seen
}

func TestRequireUserResolvesSubject(t *testing.T) {
	ts := NewTokenService(testKey, 30*time.Minute)
	resolver := &stubUserResolver{users: map[string]models.User{
		"a@x.com": {ID: 7, Email: "a@x.com"},
	}}
	handler, seen := newProtectedHandler(t, ts, resolver)

	token, err := ts.Issue("a@x.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/getPosts/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen.ID != 7 || seen.Email != "a@x.com" {
		t.Fatalf("unexpected resolved user: %+v", seen)
	}
}

func TestRequireUserUniform401(t *testing.T) {
	ts := NewTokenService(testKey, 30*time.Minute)
	resolver := &stubUserResolver{users: map[string]models.User{}}
	handler, _ := newProtectedHandler(t, ts, resolver)

	validForMissingUser, err := ts.Issue("gone@x.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	expired, err := NewTokenService(testKey, -time.Minute).Issue("a@x.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	cases := map[string]string{
		"missing header":   "",
		"not bearer":       "Basic abc",
		"malformed token":  "Bearer garbage",
		"expired token":    "Bearer " + expired,
		"vanished subject": "Bearer " + validForMissingUser,
	}

	var bodies []string
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/getPosts/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
		bodies = append(bodies, rec.Body.String())
	}

	// No failure variant may be distinguishable from the outside
	for _, body := range bodies[1:] {
		if body != bodies[0] {
			t.Fatalf("401 bodies differ between failure variants: %q vs %q", bodies[0], body)
		}
	}
}
