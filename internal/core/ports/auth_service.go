package ports

import (
	"context"

	"github.com/certchain/certificate-system/internal/core/domain"
)

// AuthService verifies credentials and issues access tokens.
type AuthService interface {
	SignIn(ctx context.Context, code, password string) (string, *domain.User, error)
}
