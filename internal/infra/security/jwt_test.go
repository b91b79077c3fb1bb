package security

import (
	"errors"
	"testing"
	"time"

	"github.com/velora/storefront/internal/core/domain"
	"github.com/velora/storefront/internal/infra/config"
)

func testTokenManager(t *testing.T, ttl time.Duration) *TokenManager {
	t.Helper()
	manager, err := NewTokenManager(config.JWTSettings{
		Secret:   "test-secret-key-32-bytes-long!!!",
		Issuer:   "storefront-test",
		TokenTTL: ttl,
	})
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	return manager
}

func TestTokenManager_RequiresSecret(t *testing.T) {
	_, err := NewTokenManager(config.JWTSettings{TokenTTL: time.Hour})
	if !errors.Is(err, ErrSecretMissing) {
		t.Fatalf("expected ErrSecretMissing, got %v", err)
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := testTokenManager(t, time.Hour)

	user := domain.User{ID: "user-1", Email: "ada@example.com", Role: domain.UserRoleAdmin}
	token, expiresAt, err := manager.Issue(user)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Fatal("expected future expiry")
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("expected user-1, got %s", claims.UserID)
	}
	if claims.Email != "ada@example.com" {
		t.Fatalf("unexpected email %s", claims.Email)
	}
	if claims.Role != "admin" {
		t.Fatalf("unexpected role %s", claims.Role)
	}
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	manager := testTokenManager(t, -time.Minute)

	token, _, err := manager.Issue(domain.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := manager.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	manager := testTokenManager(t, time.Hour)

	if _, err := manager.Parse("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
