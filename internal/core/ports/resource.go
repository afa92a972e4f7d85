package ports

import "context"

// Resource is the contract of the external-table adapter for one entity.
// GetByID, Update and Delete are fail-soft: failures of any kind collapse to
// an absent/false result, and the caller decides what "absent" means (for
// route handlers, a 404).
type Resource[T any] interface {
	Create(ctx context.Context, rec T) (T, error)
	GetByID(ctx context.Context, id string) (T, bool)
	ListAll(ctx context.Context, formula string) ([]T, error)
	Update(ctx context.Context, id string, rec T) (T, bool)
	Delete(ctx context.Context, id string) bool
	Search(ctx context.Context, field, value string) ([]T, error)
}
