package ports

import (
	"context"

	"github.com/certchain/certificate-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByCode(ctx context.Context, code string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns all users, optionally restricted to one role (empty = all).
	List(ctx context.Context, role domain.Role) ([]*domain.User, error)
	// Update applies patch to the user and returns the stored result.
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
}
