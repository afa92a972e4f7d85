package ports

import (
	"context"

	"github.com/geniusforceai/familydash/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	HasAdmin(ctx context.Context) (bool, error)
}
