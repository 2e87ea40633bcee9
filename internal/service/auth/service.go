package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Anduamlakalehegne/Project-Manager/internal/domain"
	"github.com/Anduamlakalehegne/Project-Manager/internal/repository"
	"github.com/Anduamlakalehegne/Project-Manager/pkg/config"
	"github.com/Anduamlakalehegne/Project-Manager/pkg/crypto"
	jwtpkg "github.com/Anduamlakalehegne/Project-Manager/pkg/jwt"
)

const (
	maxFieldLength = 60
	// bcrypt only reads the first 72 bytes of input; longer passwords
	// must be rejected up front rather than surfacing a hashing error.
	maxPasswordLength = 72
)

var (
	// ErrEmailTaken is returned when signup hits an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound is returned when no account matches the email, or
	// when a valid token references a user that no longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned for malformed, expired or badly signed
	// tokens.
	ErrInvalidToken = errors.New("invalid token")

	errMissingName     = domain.ValidationError("name is required")
	errMissingEmail    = domain.ValidationError("email is required")
	errMissingPassword = domain.ValidationError("password is required")
	errNameTooLong     = domain.ValidationError("name cannot be more than 60 characters")
	errEmailTooLong    = domain.ValidationError("email cannot be more than 60 characters")
	errPasswordTooLong = domain.ValidationError("password cannot be more than 72 characters")
)

// Service handles signup, login and session verification.
type Service struct {
	users  repository.UserRepository
	logger *slog.Logger
	cfg    config.APIConfig
}

// New constructs a Service.
func New(users repository.UserRepository, logger *slog.Logger, cfg config.APIConfig) Service {
	return Service{users: users, logger: logger, cfg: cfg}
}

// Signup registers a new account and immediately issues a session token.
// Uniqueness of the email is enforced by the store's insert, not by a
// lookup beforehand, so concurrent signups cannot both succeed.
func (s Service) Signup(ctx context.Context, name, email, password string) (string, domain.Profile, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	switch {
	case name == "":
		return "", domain.Profile{}, errMissingName
	case len(name) > maxFieldLength:
		return "", domain.Profile{}, errNameTooLong
	case email == "":
		return "", domain.Profile{}, errMissingEmail
	case len(email) > maxFieldLength:
		return "", domain.Profile{}, errEmailTooLong
	case password == "":
		return "", domain.Profile{}, errMissingPassword
	case len(password) > maxPasswordLength:
		return "", domain.Profile{}, errPasswordTooLong
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return "", domain.Profile{}, err
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return "", domain.Profile{}, ErrEmailTaken
		}
		return "", domain.Profile{}, err
	}
	token, err := jwtpkg.GenerateToken(user.ID, s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		return "", domain.Profile{}, err
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return token, user.Profile(), nil
}

// Login verifies credentials and issues a session token.
func (s Service) Login(ctx context.Context, email, password string) (string, domain.Profile, error) {
	if len(password) > maxPasswordLength {
		// No stored hash can match input past the bcrypt limit.
		return "", domain.Profile{}, ErrInvalidCredentials
	}
	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", domain.Profile{}, ErrUserNotFound
		}
		return "", domain.Profile{}, err
	}
	if err := crypto.ComparePassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", domain.Profile{}, ErrInvalidCredentials
		}
		return "", domain.Profile{}, err
	}
	token, err := jwtpkg.GenerateToken(user.ID, s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		return "", domain.Profile{}, err
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return token, user.Profile(), nil
}

// Verify validates a session token and resolves its user. Expiry is the
// only invalidation mechanism; there is no revocation list.
func (s Service) Verify(ctx context.Context, token string) (domain.Profile, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return domain.Profile{}, ErrInvalidToken
	}
	claims, err := jwtpkg.Parse(trimmed, s.cfg.JWTSecret)
	if err != nil {
		return domain.Profile{}, ErrInvalidToken
	}
	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Profile{}, ErrUserNotFound
		}
		return domain.Profile{}, err
	}
	return user.Profile(), nil
}
