package domain

import (
	"errors"
	"time"
)

// Role is the fixed tag that decides which screens and endpoints a user reaches.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
	RoleMaster  Role = "MASTER"
	RoleCompany Role = "COMPANY"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidInput       = errors.New("invalid input")
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleMaster, RoleCompany:
		return true
	}
	return false
}

// User models a student, teacher, company or admin (MASTER) account.
type User struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	PasswordHash  string    `json:"-"`
	Role          Role      `json:"role"`
	Image         string    `json:"image,omitempty"`
	DateOfBirth   string    `json:"dateOfBirth,omitempty"`
	WalletAddress string    `json:"walletAddress,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// UserPatch carries the fields of a partial user update. Nil means unchanged.
type UserPatch struct {
	Code         *string
	Name         *string
	Image        *string
	DateOfBirth  *string
	Role         *Role
	PasswordHash *string
}

// Apply merges the non-nil fields of p into u.
func (p UserPatch) Apply(u *User) {
	if p.Code != nil {
		u.Code = *p.Code
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Image != nil {
		u.Image = *p.Image
	}
	if p.DateOfBirth != nil {
		u.DateOfBirth = *p.DateOfBirth
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Code == nil && p.Name == nil && p.Image == nil &&
		p.DateOfBirth == nil && p.Role == nil && p.PasswordHash == nil
}
