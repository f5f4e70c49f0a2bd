package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"

	"github.com/entrepeneur4lyf/sqlpilot/internal/api"
	"github.com/entrepeneur4lyf/sqlpilot/internal/events"
)

// refreshLeeway is how close to expiry a token may get before Initialize
// refreshes it proactively.
const refreshLeeway = 5 * time.Minute

// AuthStore owns the client session: the bearer token and the cached user
// profile. The HTTP client reads the token through the TokenSource
// interface; nothing else mutates the session.
type AuthStore struct {
	mu    sync.RWMutex
	user  *api.User
	token string

	auth   *api.AuthAPI
	bus    *events.Bus
	logger *log.Logger
}

// NewAuthStore creates an auth store backed by the given endpoint group
func NewAuthStore(auth *api.AuthAPI, bus *events.Bus, logger *log.Logger) *AuthStore {
	if logger == nil {
		logger = log.Default()
	}
	return &AuthStore{
		auth:   auth,
		bus:    bus,
		logger: logger,
	}
}

// Token implements api.TokenSource
func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the cached user profile, or nil when none is held
func (s *AuthStore) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether a full session is held. Partial
// credential states (token without profile or vice versa) count as
// unauthenticated.
func (s *AuthStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// SetToken replaces the held token
func (s *AuthStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// SetUser replaces the cached user profile
func (s *AuthStore) SetUser(user *api.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// Login posts credentials and, on success, stores the token and fetches
// the user profile. Any returned error means the caller should treat the
// session as unauthenticated.
func (s *AuthStore) Login(ctx context.Context, username, password string) error {
	resp, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return loginError(err, "Login failed")
	}

	s.SetToken(resp.AccessToken)

	if err := s.FetchUserProfile(ctx); err != nil {
		return err
	}

	if s.IsAuthenticated() && s.bus != nil {
		s.bus.Session.Publish(events.SessionLoggedIn, events.SessionPayload{Username: username})
	}
	return nil
}

// Register creates an account and then logs in with the same credentials
func (s *AuthStore) Register(ctx context.Context, email, username, password string) error {
	user, err := s.auth.Register(ctx, email, username, password)
	if err != nil {
		return loginError(err, "Registration failed")
	}
	if user != nil && user.Username != "" {
		s.SetUser(user)
	}

	// Auto-login after registration. The backend authenticates by email.
	return s.Login(ctx, email, password)
}

// FetchUserProfile loads the profile for the held token. A missing token
// is a no-op. A failing response self-heals into a clean logged-out state
// rather than surfacing a separate error.
func (s *AuthStore) FetchUserProfile(ctx context.Context) error {
	if s.Token() == "" {
		return nil
	}

	user, err := s.auth.GetProfile(ctx)
	if err != nil {
		s.logger.Warn("fetching user profile failed", "error", err)
		s.Logout()
		return nil
	}

	s.SetUser(user)
	return nil
}

// RefreshToken exchanges the held token for a fresh one. A missing token
// is a no-op; a failing refresh forces logout.
func (s *AuthStore) RefreshToken(ctx context.Context) error {
	if s.Token() == "" {
		return nil
	}

	resp, err := s.auth.Refresh(ctx)
	if err != nil {
		s.logger.Warn("token refresh failed", "error", err)
		s.Logout()
		return nil
	}

	s.SetToken(resp.AccessToken)
	return nil
}

// Logout clears both user and token. Idempotent.
func (s *AuthStore) Logout() {
	s.mu.Lock()
	wasAuthenticated := s.token != "" || s.user != nil
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if wasAuthenticated && s.bus != nil {
		s.bus.Session.Publish(events.SessionLoggedOut, events.SessionPayload{})
	}
}

// Initialize restores the session on application start: refreshes a
// near-expiry token and fetches the profile when a token is held without
// a cached user. No token means no network call.
func (s *AuthStore) Initialize(ctx context.Context) error {
	token := s.Token()
	if token == "" {
		return nil
	}

	if expiry, ok := tokenExpiry(token); ok && time.Until(expiry) < refreshLeeway {
		if err := s.RefreshToken(ctx); err != nil {
			return err
		}
		if s.Token() == "" {
			return nil
		}
	}

	if s.User() == nil {
		return s.FetchUserProfile(ctx)
	}
	return nil
}

// snapshot is the persisted shape of the auth store
type snapshot struct {
	User  *api.User `json:"user"`
	Token string    `json:"token"`
}

// Snapshot returns the persistable session state
func (s *AuthStore) Snapshot() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{User: s.user, Token: s.token}
}

// Restore replaces the session state from a persisted snapshot
func (s *AuthStore) Restore(data []byte) error {
	var snap snapshot
	if err := unmarshalSnapshot(data, &snap); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = snap.User
	s.token = snap.Token
	return nil
}

// tokenExpiry decodes the token's exp claim without verifying the
// signature. Verification belongs to the backend; the client only needs a
// hint for proactive refresh.
func tokenExpiry(raw string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// loginError substitutes a generic message when the backend's error
// payload carried none.
func loginError(err error, fallback string) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message == "" {
		apiErr.Message = fallback
		return apiErr
	}
	return err
}
