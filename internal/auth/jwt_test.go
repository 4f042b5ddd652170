package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"church/internal/entity"
)

func TestNewManagerAndTokenLifecycle(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Minute*30)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}

	user := &entity.DbUser{ID: 42, Email: "user@example.com", Role: entity.UserRoleLeader}
	token, expiresAt, err := mgr.GenerateToken(user)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if expiresAt.Before(time.Now()) {
		t.Fatal("expected future expiry time")
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error parsing token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id %d, got %d", user.ID, claims.UserID)
	}
	if claims.Subject != "42" {
		t.Fatalf("expected subject 42, got %s", claims.Subject)
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager("   ", "", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestNewManagerDefaults(t *testing.T) {
	mgr, err := NewManager("secret", "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mgr.Expiry() != 24*time.Hour {
		t.Fatalf("expected default expiry of 24h, got %s", mgr.Expiry())
	}
	if mgr.issuer != "church" {
		t.Fatalf("expected default issuer church, got %s", mgr.issuer)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}
	mgr.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := mgr.GenerateToken(&entity.DbUser{ID: 7})
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	// Still inside the window from the issuing clock's point of view.
	if _, err := mgr.ParseToken(token); err != nil {
		t.Fatalf("expected token to be valid at issue time, got %v", err)
	}

	mgr.now = time.Now
	if _, err := mgr.ParseToken(token); !errors.Is(err, ErrTokenRejected) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestParseTokenRejections(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}
	other, err := NewManager("other-secret", "issuer", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}
	otherIssuer, err := NewManager("test-secret", "someone-else", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}

	foreign, _, err := other.GenerateToken(&entity.DbUser{ID: 1})
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	wrongIssuer, _, err := otherIssuer.GenerateToken(&entity.DbUser{ID: 1})
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	valid, _, err := mgr.GenerateToken(&entity.DbUser{ID: 1})
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	tampered := valid[:strings.LastIndex(valid, ".")+1] + "AAAA"

	tests := map[string]string{
		"missing":       "",
		"malformed":     "not.a.jwt",
		"bad-signature": foreign,
		"wrong-issuer":  wrongIssuer,
		"tampered":      tampered,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := mgr.ParseToken(token); !errors.Is(err, ErrTokenRejected) {
				t.Fatalf("expected ErrTokenRejected, got %v", err)
			}
		})
	}
}

func TestGenerateTokenRequiresUser(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}
	if _, _, err := mgr.GenerateToken(nil); err == nil {
		t.Fatal("expected error for nil user")
	}
	if _, _, err := mgr.GenerateToken(&entity.DbUser{}); err == nil {
		t.Fatal("expected error for user without id")
	}
}
