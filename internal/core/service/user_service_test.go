package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/certchain/certificate-system/internal/core/domain"
	"github.com/certchain/certificate-system/internal/core/ports"
)

func strPtr(s string) *string { return &s }

func TestUserService_Create_Defaults(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, discardLogger)

	user, err := svc.Create(context.Background(), ports.CreateUserInput{Code: " T001 ", Name: "Binh", Role: domain.RoleTeacher})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Code != "T001" {
		t.Errorf("expected trimmed code T001, got %q", user.Code)
	}
	if user.DateOfBirth != defaultDateOfBirth {
		t.Errorf("expected default date of birth, got %q", user.DateOfBirth)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(defaultPassword)); err != nil {
		t.Errorf("expected default password hash: %v", err)
	}
}

func TestUserService_Create_Validation(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), discardLogger)

	if _, err := svc.Create(context.Background(), ports.CreateUserInput{Name: "x", Role: domain.RoleStudent}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for missing code, got %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.CreateUserInput{Code: "x", Name: "x", Role: "GUEST"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown role, got %v", err)
	}
}

func TestUserService_Create_Duplicate(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), discardLogger)
	in := ports.CreateUserInput{Code: "S001", Name: "An", Role: domain.RoleStudent}

	_, _ = svc.Create(context.Background(), in)
	if _, err := svc.Create(context.Background(), in); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_List_FiltersRole(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "S001", "pw", domain.RoleStudent)
	seedUser(t, repo, "T001", "pw", domain.RoleTeacher)
	svc := NewUserService(repo, discardLogger)

	users, err := svc.List(context.Background(), domain.RoleTeacher)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 1 || users[0].Code != "T001" {
		t.Fatalf("expected only T001, got %+v", users)
	}
}

func TestUserService_Update_ImageOnly(t *testing.T) {
	repo := newStubUserRepo()
	u := seedUser(t, repo, "C001", "pw", domain.RoleCompany)
	svc := NewUserService(repo, discardLogger)
	actor := ports.Actor{UserID: u.ID, Code: u.Code, Role: u.Role}

	updated, err := svc.Update(context.Background(), actor, u.ID, ports.UpdateUserInput{Image: strPtr("avatar.png")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Image != "avatar.png" {
		t.Errorf("expected image avatar.png, got %q", updated.Image)
	}
	if updated.Name != u.Name || updated.Code != u.Code || updated.PasswordHash != u.PasswordHash {
		t.Errorf("other fields changed: %+v", updated)
	}
}

func TestUserService_Update_RejectsEmptyNameAndCode(t *testing.T) {
	repo := newStubUserRepo()
	u := seedUser(t, repo, "S001", "pw", domain.RoleStudent)
	svc := NewUserService(repo, discardLogger)
	actor := ports.Actor{UserID: u.ID, Code: u.Code, Role: u.Role}

	for name, in := range map[string]ports.UpdateUserInput{
		"empty name": {Name: strPtr("")},
		"blank name": {Name: strPtr("   ")},
		"empty code": {Code: strPtr("")},
	} {
		if _, err := svc.Update(context.Background(), actor, u.ID, in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}

	stored, err := repo.FindByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Name != u.Name {
		t.Errorf("expected name %q to be kept, got %q", u.Name, stored.Name)
	}
}

func TestUserService_Update_PasswordRehashed(t *testing.T) {
	repo := newStubUserRepo()
	u := seedUser(t, repo, "S001", "pw", domain.RoleStudent)
	svc := NewUserService(repo, discardLogger)
	actor := ports.Actor{UserID: u.ID, Code: u.Code, Role: u.Role}

	updated, err := svc.Update(context.Background(), actor, u.ID, ports.UpdateUserInput{Password: strPtr("new-pw")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("new-pw")); err != nil {
		t.Errorf("expected new password to match: %v", err)
	}
}

func TestUserService_Update_Forbidden(t *testing.T) {
	repo := newStubUserRepo()
	a := seedUser(t, repo, "S001", "pw", domain.RoleStudent)
	b := seedUser(t, repo, "S002", "pw", domain.RoleStudent)
	svc := NewUserService(repo, discardLogger)
	actor := ports.Actor{UserID: a.ID, Code: a.Code, Role: a.Role}

	if _, err := svc.Update(context.Background(), actor, b.ID, ports.UpdateUserInput{Name: strPtr("x")}); err != domain.ErrForbidden {
		t.Errorf("expected ErrForbidden editing another user, got %v", err)
	}

	role := domain.RoleMaster
	if _, err := svc.Update(context.Background(), actor, a.ID, ports.UpdateUserInput{Role: &role}); err != domain.ErrForbidden {
		t.Errorf("expected ErrForbidden self-promoting, got %v", err)
	}
}

func TestUserService_Update_MasterMayEditAnyone(t *testing.T) {
	repo := newStubUserRepo()
	admin := seedUser(t, repo, "M001", "pw", domain.RoleMaster)
	s := seedUser(t, repo, "S001", "pw", domain.RoleStudent)
	svc := NewUserService(repo, discardLogger)
	actor := ports.Actor{UserID: admin.ID, Code: admin.Code, Role: admin.Role}

	role := domain.RoleTeacher
	updated, err := svc.Update(context.Background(), actor, s.ID, ports.UpdateUserInput{Role: &role})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Role != domain.RoleTeacher {
		t.Errorf("expected role TEACHER, got %s", updated.Role)
	}
}
