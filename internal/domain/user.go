package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// RoleEmployee is the anonymous-by-default session identity.
	RoleEmployee = "employee"
	// RoleAdmin is granted only to credentialed reviewers.
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        *string    `json:"email,omitempty" db:"email"`
	PasswordHash *string    `json:"-" db:"password_hash"`
	FullName     *string    `json:"full_name,omitempty" db:"full_name"`
	Role         string     `json:"role" db:"role"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`
}

func (u *User) HasRole(requiredRole string) bool {
	switch requiredRole {
	case RoleAdmin:
		return u.Role == RoleAdmin
	case RoleEmployee:
		return u.Role == RoleEmployee || u.Role == RoleAdmin
	default:
		return false
	}
}

func (u *User) IsAnonymous() bool {
	return u.Email == nil
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
