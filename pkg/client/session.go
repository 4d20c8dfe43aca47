package client

import (
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session holds the bearer credential for the current user. The zero value is
// an anonymous session. Holding no credential is a valid state, not an error.
//
// The mutex exists because bubbletea commands run on their own goroutines: a
// 401 classified during a background load clears the session while the UI
// goroutine may be reading it.
type Session struct {
	mu       sync.Mutex
	token    string
	onExpire func()
}

// NewSession returns a session holding the given token. An empty token means
// anonymous.
func NewSession(token string) *Session {
	return &Session{token: strings.TrimSpace(token)}
}

// Authenticated reports whether a non-empty credential is held.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Token returns the held credential, or "" when anonymous.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetToken replaces any existing credential.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(token)
}

// Clear removes the credential. Idempotent.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// OnExpire registers fn to run whenever a 401 response invalidates the
// session. The app uses it to route back to the login view.
func (s *Session) OnExpire(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpire = fn
}

// expire clears the credential and fires the expiry hook. Called by the
// response normalizer on every 401, including when already anonymous.
func (s *Session) expire() {
	s.mu.Lock()
	s.token = ""
	fn := s.onExpire
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// ExpiresAt reads the exp claim from the held token without verifying the
// signature. Display-only; the credential stays opaque to request logic.
// Returns false when anonymous or when the token is not a parseable JWT.
func (s *Session) ExpiresAt() (time.Time, bool) {
	tok := s.Token()
	if tok == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
