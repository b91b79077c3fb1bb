package usecase

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/velora/storefront/internal/core/domain"
)

func newAuthService(users *userRepoStub, publisher *publisherStub) *AuthService {
	return NewAuthService(users, hasherStub{}, tokenIssuerStub{}, publisher, zap.NewNop())
}

func TestAuthService_Register_NewAccountsAreCustomers(t *testing.T) {
	users := newUserRepoStub()
	publisher := &publisherStub{}
	svc := newAuthService(users, publisher)

	result, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ada",
		Email:    "  Ada@Example.COM ",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if result.User.Role != domain.UserRoleCustomer {
		t.Fatalf("expected customer role, got %s", result.User.Role)
	}
	if result.User.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %s", result.User.Email)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
	if len(publisher.registered) != 1 {
		t.Fatalf("expected 1 registered event, got %d", len(publisher.registered))
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	users := newUserRepoStub()
	users.add(domain.User{ID: "user-1", Email: "ada@example.com"})
	svc := newAuthService(users, &publisherStub{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthService(newUserRepoStub(), &publisherStub{})

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := newUserRepoStub()
	users.add(domain.User{ID: "user-1", Email: "ada@example.com", PasswordHash: "hashed:correct"})
	svc := newAuthService(users, &publisherStub{})

	_, err := svc.Login(context.Background(), "ada@example.com", "incorrect")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	users := newUserRepoStub()
	users.add(domain.User{ID: "user-1", Email: "ada@example.com", PasswordHash: "hashed:correct"})
	svc := newAuthService(users, &publisherStub{})

	result, err := svc.Login(context.Background(), "Ada@Example.com", "correct")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Token != "token-user-1" {
		t.Fatalf("unexpected token %s", result.Token)
	}
}

func TestAuthService_Profile_NotFound(t *testing.T) {
	svc := newAuthService(newUserRepoStub(), &publisherStub{})

	_, err := svc.Profile(context.Background(), "user-404")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
