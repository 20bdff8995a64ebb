package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/certchain/certificate-system/internal/core/domain"
	"github.com/certchain/certificate-system/internal/core/ports"
)

const (
	defaultPassword    = "password"
	defaultDateOfBirth = "2003-10-20"
)

type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Create registers a new account. Password and date of birth fall back to the
// defaults the admin forms use when left empty.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	code := strings.TrimSpace(input.Code)
	name := strings.TrimSpace(input.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("create user: %w: code and name are required", domain.ErrInvalidInput)
	}
	if !input.Role.Valid() {
		return nil, fmt.Errorf("create user: %w: unknown role %q", domain.ErrInvalidInput, input.Role)
	}

	password := input.Password
	if password == "" {
		password = defaultPassword
	}
	dob := input.DateOfBirth
	if dob == "" {
		dob = defaultDateOfBirth
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Code:         code,
		Name:         name,
		PasswordHash: hash,
		Role:         input.Role,
		Image:        input.Image,
		DateOfBirth:  dob,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("code", created.Code).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

func (s *UserService) ByCode(ctx context.Context, code string) (*domain.User, error) {
	if code == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.repo.FindByCode(ctx, code)
}

func (s *UserService) ByID(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	if role != "" && !role.Valid() {
		return nil, fmt.Errorf("list users: %w: unknown role %q", domain.ErrInvalidInput, role)
	}
	return s.repo.List(ctx, role)
}

// Update applies a partial update. Users may only edit their own profile;
// MASTER may edit anyone and is the only role allowed to change roles.
func (s *UserService) Update(ctx context.Context, actor ports.Actor, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if actor.Role != domain.RoleMaster && actor.UserID != id {
		return nil, domain.ErrForbidden
	}
	if input.Role != nil {
		if actor.Role != domain.RoleMaster {
			return nil, domain.ErrForbidden
		}
		if !input.Role.Valid() {
			return nil, fmt.Errorf("update user: %w: unknown role %q", domain.ErrInvalidInput, *input.Role)
		}
	}

	patch := domain.UserPatch{
		Code:        trimmed(input.Code),
		Name:        trimmed(input.Name),
		Image:       input.Image,
		DateOfBirth: input.DateOfBirth,
		Role:        input.Role,
	}
	if patch.Code != nil && *patch.Code == "" {
		return nil, fmt.Errorf("update user: %w: code cannot be empty", domain.ErrInvalidInput)
	}
	if patch.Name != nil && *patch.Name == "" {
		return nil, fmt.Errorf("update user: %w: name cannot be empty", domain.ErrInvalidInput)
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		patch.PasswordHash = &hash
	}

	if patch.Empty() {
		return s.repo.FindByID(ctx, id)
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Str("by", actor.Code).Msg("user updated")
	return updated, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
