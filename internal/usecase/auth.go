package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/velora/storefront/internal/core/domain"
	"github.com/velora/storefront/internal/core/port"
	"github.com/velora/storefront/internal/repository"
)

var (
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when the account no longer exists.
	ErrUserNotFound = errors.New("user not found")
)

// PasswordHasher hashes and verifies login secrets.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// TokenIssuer mints access tokens for authenticated users.
type TokenIssuer interface {
	Issue(user domain.User) (string, time.Time, error)
}

// RegisterInput captures the signup payload.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    *string
	Password string
}

// AuthResult pairs an account with its freshly issued token.
type AuthResult struct {
	User      domain.User
	Token     string
	ExpiresAt time.Time
}

// AuthService handles registration, login and profile lookups.
type AuthService struct {
	users     port.UserRepository
	hasher    PasswordHasher
	tokens    TokenIssuer
	publisher port.EventPublisher
	logger    *zap.Logger
}

func NewAuthService(users port.UserRepository, hasher PasswordHasher, tokens TokenIssuer, publisher port.EventPublisher, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, publisher: publisher, logger: logger}
}

// Register creates a customer account and signs the caller in. New accounts
// always start as customers; admin accounts are provisioned out of band.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        normalizeEmail(input.Email),
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         domain.UserRoleCustomer,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	event := domain.UserRegisteredEvent{
		EventID:      uuid.NewString(),
		UserID:       user.ID,
		Name:         user.Name,
		Email:        user.Email,
		RegisteredAt: user.CreatedAt,
	}
	if err := s.publisher.PublishUserRegistered(ctx, event); err != nil {
		s.logger.Warn("publish user registered event failed",
			zap.String("user_id", user.ID),
			zap.Error(err))
	}

	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Login verifies credentials and issues a token. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(*user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{User: *user, Token: token, ExpiresAt: expiresAt}, nil
}

// Profile returns the account behind an authenticated request.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
