package session

import (
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/anonto42/threads-go-client/internal/models"
)

// Session holds the bearer credential and resolved identity for one visit.
// It is constructed once and handed to the API client and dispatcher, so no
// component reads the credential from ambient storage on its own.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *models.User
}

// New creates an anonymous Session
func New() *Session {
	return &Session{}
}

// Token returns the current bearer token, or "" for an anonymous viewer.
// Satisfies api.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a user is logged in
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// CurrentUser returns the logged-in user, or nil for an anonymous viewer
func (s *Session) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetToken installs a bearer token before its owner is known. The identity
// is filled in by SetUser once /auth/me resolves.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// SetUser records the identity the server resolved for the current token
func (s *Session) SetUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// Clear drops the credential and identity, returning to anonymous
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

// Expired reports whether the given token carries an exp claim in the past.
// The signature is not verified; the server remains the authority and will
// reject a forged token regardless of what this returns.
func Expired(token string) bool {
	if strings.TrimSpace(token) == "" {
		return true
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	return claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now())
}
