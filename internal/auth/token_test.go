package auth

import (
	"errors"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp *time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "child-42"}
	if exp != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*exp)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestPreferencesTokenStore(t *testing.T) {
	app := test.NewApp()
	store := NewPreferencesTokenStore(app.Preferences())

	if _, ok := store.Token(); ok {
		t.Fatal("expected no token initially")
	}

	store.SetToken(" abc.def.ghi ")
	token, ok := store.Token()
	if !ok || token != "abc.def.ghi" {
		t.Fatalf("expected stored token, got %q (ok=%v)", token, ok)
	}
	if got := app.Preferences().String(TokenKey); got != "abc.def.ghi" {
		t.Errorf("token should be persisted under %q, got %q", TokenKey, got)
	}

	store.ClearToken()
	if _, ok := store.Token(); ok {
		t.Error("expected token to be cleared")
	}
}

func TestMemoryTokenStore(t *testing.T) {
	store := NewMemoryTokenStore("")
	if _, ok := store.Token(); ok {
		t.Fatal("expected empty store")
	}
	store.SetToken("opaque")
	if token, ok := store.Token(); !ok || token != "opaque" {
		t.Fatalf("unexpected token %q", token)
	}
	store.ClearToken()
	if _, ok := store.Token(); ok {
		t.Fatal("expected cleared store")
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		token    string
		expected bool
	}{
		{"expired jwt", signedToken(t, &past), true},
		{"valid jwt", signedToken(t, &future), false},
		{"jwt without exp", signedToken(t, nil), false},
		{"opaque token", "not-a-jwt", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenExpired(tt.token, now); got != tt.expected {
				t.Errorf("TokenExpired() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestRequireToken(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)

	if _, err := RequireToken(nil, now); !errors.Is(err, ErrNoToken) {
		t.Errorf("nil store: expected ErrNoToken, got %v", err)
	}
	if _, err := RequireToken(NewMemoryTokenStore(""), now); !errors.Is(err, ErrNoToken) {
		t.Errorf("empty store: expected ErrNoToken, got %v", err)
	}
	if _, err := RequireToken(NewMemoryTokenStore(signedToken(t, &past)), now); !errors.Is(err, ErrNoToken) {
		t.Errorf("expired token: expected ErrNoToken, got %v", err)
	}

	token, err := RequireToken(NewMemoryTokenStore("opaque"), now)
	if err != nil || token != "opaque" {
		t.Errorf("expected opaque token, got %q, %v", token, err)
	}
}
