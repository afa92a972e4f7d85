package ports

import (
	"context"

	"github.com/geniusforceai/familydash/internal/core/domain"
)

type AuthService interface {
	// InitAdmin creates the bootstrap administrator when no admin exists.
	// Idempotent: running it again is a no-op.
	InitAdmin(ctx context.Context) error
	Register(ctx context.Context, email, password, role string) (*domain.User, error)
	// Login returns a signed bearer token. Unknown email and wrong password
	// fail identically with domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	GetUser(ctx context.Context, email string) (*domain.User, error)
}
