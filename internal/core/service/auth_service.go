package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/geniusforceai/familydash/internal/core/domain"
	"github.com/geniusforceai/familydash/internal/core/ports"
)

// AuthService implements registration, login and the admin bootstrap.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// InitAdmin guarantees one administrator exists after startup. When none
// does, the well-known bootstrap account is created; the default password is
// expected to be rotated post-deployment.
func (s *AuthService) InitAdmin(ctx context.Context) error {
	exists, err := s.repo.HasAdmin(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if _, err := s.Register(ctx, domain.BootstrapAdminEmail, domain.BootstrapAdminPassword, domain.RoleAdmin); err != nil {
		// Another instance won the bootstrap race; one admin exists either way.
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil
		}
		return err
	}

	s.logger.Warn().Str("email", domain.BootstrapAdminEmail).
		Msg("bootstrap administrator created with default password, rotate it")
	return nil
}

func (s *AuthService) Register(ctx context.Context, email, password, role string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	// Friendly pre-check only; the unique index on email is authoritative
	// under concurrent registrations.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.repo.Create(ctx, user)
}

// Login authenticates and issues a bearer token. A missing user and a wrong
// password are indistinguishable to the caller so error messages cannot be
// used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetUser(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.Email,
		"role": user.Role,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
