package auth

import (
	"errors"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"github.com/golang-jwt/jwt/v5"
)

// TokenKey is the preferences key the bearer token is stored under
const TokenKey = "token"

// TokenStore reads and writes the persisted bearer token
type TokenStore interface {
	Token() (string, bool)
	SetToken(token string)
	ClearToken()
}

// PreferencesTokenStore keeps the token in Fyne preferences, which map to
// device-local key-value storage on every target.
type PreferencesTokenStore struct {
	prefs fyne.Preferences
}

// NewPreferencesTokenStore creates a token store over prefs
func NewPreferencesTokenStore(prefs fyne.Preferences) *PreferencesTokenStore {
	return &PreferencesTokenStore{prefs: prefs}
}

// Token returns the stored token
func (s *PreferencesTokenStore) Token() (string, bool) {
	token := strings.TrimSpace(s.prefs.String(TokenKey))
	return token, token != ""
}

// SetToken stores token
func (s *PreferencesTokenStore) SetToken(token string) {
	s.prefs.SetString(TokenKey, strings.TrimSpace(token))
}

// ClearToken removes the stored token
func (s *PreferencesTokenStore) ClearToken() {
	s.prefs.RemoveValue(TokenKey)
}

// MemoryTokenStore is a TokenStore for headless use and tests
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokenStore creates a store holding token
func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

// Token returns the stored token
func (s *MemoryTokenStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SetToken stores token
func (s *MemoryTokenStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(token)
}

// ClearToken removes the stored token
func (s *MemoryTokenStore) ClearToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// TokenExpired reports whether token is a JWT whose exp claim is not after now.
// The signature is not checked. Tokens that are not JWTs, or carry no exp,
// are never reported as expired.
func TokenExpired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}

// ErrNoToken is returned by RequireToken when no usable token is stored
var ErrNoToken = errors.New("no auth token")

// RequireToken returns the stored token, or ErrNoToken when it is missing or expired
func RequireToken(store TokenStore, now time.Time) (string, error) {
	if store == nil {
		return "", ErrNoToken
	}
	token, ok := store.Token()
	if !ok || TokenExpired(token, now) {
		return "", ErrNoToken
	}
	return token, nil
}
