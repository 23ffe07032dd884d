package users

import (
	"time"

	"github.com/google/uuid"
)

// CreateUserInput carries the fields needed to register an operator account.
type CreateUserInput struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	RoleID   *string `json:"role_id,omitempty"`
}

// UpdateUserInput applies partial edits; nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	RoleID   *string `json:"role_id,omitempty"`
	Disabled *bool   `json:"disabled,omitempty"`
}

// RoleView is the public shape of a role row.
type RoleView struct {
	RoleID   string `json:"role_id"`
	RoleName string `json:"role_name"`
}

// UserView is the public shape of a user. The password hash never appears here.
type UserView struct {
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Disabled  bool      `json:"disabled"`
	Role      *RoleView `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
