package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/pitchside/scoutd/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       1,
		Email:    "scout@example.com",
		Username: "scout",
		Role:     domain.RoleAdmin,
		IsActive: true,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", 30*time.Minute)

	signed, err := m.Issue(testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "scout" {
		t.Errorf("expected subject scout, got %s", claims.Subject)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("expected admin role, got %s", claims.Role)
	}
}

func TestTokenVerify_WrongSecret(t *testing.T) {
	m := NewTokenManager("test-secret", 30*time.Minute)
	other := NewTokenManager("other-secret", 30*time.Minute)

	signed, err := m.Issue(testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := other.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenVerify_Expired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	signed, err := m.Issue(testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenVerify_Garbage(t *testing.T) {
	m := NewTokenManager("test-secret", 30*time.Minute)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Verify(tok); !errors.Is(err, domain.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken for %q, got %v", tok, err)
		}
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "secret-password" {
		t.Error("hash must differ from the plaintext")
	}
	if !CheckPassword("secret-password", hash) {
		t.Error("correct password must verify")
	}
	if CheckPassword("wrong", hash) {
		t.Error("wrong password must not verify")
	}
}
