package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Anduamlakalehegne/Project-Manager/internal/domain"
	"github.com/Anduamlakalehegne/Project-Manager/internal/repository"
	"github.com/Anduamlakalehegne/Project-Manager/pkg/config"
)

type userRepoStub struct {
	createFunc     func(ctx context.Context, user *domain.User) error
	getByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	getByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
}

func (s *userRepoStub) CreateUser(ctx context.Context, user *domain.User) error {
	if s.createFunc != nil {
		return s.createFunc(ctx, user)
	}
	return nil
}

func (s *userRepoStub) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.getByEmailFunc != nil {
		return s.getByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (s *userRepoStub) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if s.getByIDFunc != nil {
		return s.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() config.APIConfig {
	return config.APIConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}
}

func TestSignupIssuesTokenAndStripsHash(t *testing.T) {
	var stored *domain.User
	repo := &userRepoStub{
		createFunc: func(_ context.Context, user *domain.User) error {
			stored = user
			return nil
		},
	}
	svc := New(repo, newLogger(), testConfig())

	token, profile, err := svc.Signup(context.Background(), "Ann", "ann@x.com", "pw1")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if stored == nil || len(stored.PasswordHash) == 0 {
		t.Fatal("expected hashed password to be persisted")
	}
	if string(stored.PasswordHash) == "pw1" {
		t.Fatal("password stored in plaintext")
	}
	if profile.ID != stored.ID || profile.Name != "Ann" || profile.Email != "ann@x.com" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := &userRepoStub{
		createFunc: func(_ context.Context, _ *domain.User) error {
			return repository.ErrConflict
		},
	}
	svc := New(repo, newLogger(), testConfig())

	if _, _, err := svc.Signup(context.Background(), "Ann", "ann@x.com", "pw1"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignupValidation(t *testing.T) {
	svc := New(&userRepoStub{}, newLogger(), testConfig())
	cases := []struct {
		name, email, password string
	}{
		{"", "ann@x.com", "pw1"},
		{"Ann", "", "pw1"},
		{"Ann", "ann@x.com", ""},
		{strings.Repeat("n", 61), "ann@x.com", "pw1"},
		{"Ann", strings.Repeat("e", 61), "pw1"},
		{"Ann", "ann@x.com", strings.Repeat("p", 73)},
	}
	for _, tc := range cases {
		_, _, err := svc.Signup(context.Background(), tc.name, tc.email, tc.password)
		var verr domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected validation error for %+v, got %v", tc, err)
		}
	}
}

func TestPasswordAtBcryptLimit(t *testing.T) {
	svc := New(&userRepoStub{}, newLogger(), testConfig())

	// 72 bytes is the longest input bcrypt reads; exactly at the limit
	// must succeed, one past it must fail as a validation error.
	if _, _, err := svc.Signup(context.Background(), "Ann", "ann@x.com", strings.Repeat("p", 72)); err != nil {
		t.Fatalf("signup with 72-byte password: %v", err)
	}
	_, _, err := svc.Signup(context.Background(), "Ann", "ann2@x.com", strings.Repeat("p", 73))
	var verr domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for 73-byte password, got %v", err)
	}

	// Login with an over-limit password can never match a stored hash;
	// it fails as bad credentials, not as an internal error.
	if _, _, err := svc.Login(context.Background(), "ann@x.com", strings.Repeat("p", 73)); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginScenario(t *testing.T) {
	repo := &userRepoStub{}
	svc := New(repo, newLogger(), testConfig())

	// Seed via signup so the stored hash is the real bcrypt output.
	var stored *domain.User
	repo.createFunc = func(_ context.Context, user *domain.User) error {
		stored = user
		return nil
	}
	tokenA, _, err := svc.Signup(context.Background(), "Ann", "ann@x.com", "pw1")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	repo.getByEmailFunc = func(_ context.Context, email string) (*domain.User, error) {
		if email == stored.Email {
			copied := *stored
			return &copied, nil
		}
		return nil, repository.ErrNotFound
	}
	repo.getByIDFunc = func(_ context.Context, id string) (*domain.User, error) {
		if id == stored.ID {
			copied := *stored
			return &copied, nil
		}
		return nil, repository.ErrNotFound
	}

	if _, _, err := svc.Login(context.Background(), "ann@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "missing@x.com", "pw1"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	tokenB, profile, err := svc.Login(context.Background(), "ann@x.com", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if profile.ID != stored.ID {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	// Both tokens resolve to the same user even if they differ.
	for _, token := range []string{tokenA, tokenB} {
		verified, err := svc.Verify(context.Background(), token)
		if err != nil {
			t.Fatalf("verify: %v", err)
		}
		if verified.ID != stored.ID {
			t.Fatalf("token resolved to wrong user: %+v", verified)
		}
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	svc := New(&userRepoStub{}, newLogger(), testConfig())

	if _, err := svc.Verify(context.Background(), ""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for empty token, got %v", err)
	}
	if _, err := svc.Verify(context.Background(), "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}

	expiredCfg := config.APIConfig{JWTSecret: "test-secret", TokenTTL: -time.Minute}
	expiredSvc := New(&userRepoStub{}, newLogger(), expiredCfg)
	token, _, err := expiredSvc.Signup(context.Background(), "Ann", "ann@x.com", "pw1")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := svc.Verify(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyUserDeleted(t *testing.T) {
	svc := New(&userRepoStub{}, newLogger(), testConfig())
	token, _, err := svc.Signup(context.Background(), "Ann", "ann@x.com", "pw1")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	// The stub resolves no users, mimicking an account removed after
	// the token was issued.
	if _, err := svc.Verify(context.Background(), token); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
