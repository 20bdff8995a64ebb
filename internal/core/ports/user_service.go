package ports

import (
	"context"

	"github.com/certchain/certificate-system/internal/core/domain"
)

// Actor is the authenticated caller as seen by the service layer.
type Actor struct {
	UserID string
	Code   string
	Role   domain.Role
}

// CreateUserInput carries the fields of the admin "add user" forms.
type CreateUserInput struct {
	Code        string
	Name        string
	Role        domain.Role
	Password    string // defaults to "password" when empty
	Image       string
	DateOfBirth string // defaults to "2003-10-20" when empty
}

// UpdateUserInput is a partial update; nil fields are left unchanged.
type UpdateUserInput struct {
	Code        *string
	Name        *string
	Image       *string
	Password    *string
	DateOfBirth *string
	Role        *domain.Role
}

// UserService defines use-case operations on user accounts.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	ByCode(ctx context.Context, code string) (*domain.User, error)
	ByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, role domain.Role) ([]*domain.User, error)
	Update(ctx context.Context, actor Actor, id string, input UpdateUserInput) (*domain.User, error)
}
