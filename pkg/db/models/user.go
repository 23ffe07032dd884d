package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole is the string-keyed role lookup.
type UserRole struct {
	RoleID   string `gorm:"column:role_id;primaryKey"`
	RoleName string `gorm:"column:role_name;not null;uniqueIndex"`
}

func (UserRole) TableName() string { return "users.roles" }

// User is an operator account. HashedPassword never leaves the persistence
// layer in public shapes.
type User struct {
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string    `gorm:"column:name;not null"`
	Email          string    `gorm:"column:email;not null;uniqueIndex"`
	Disabled       bool      `gorm:"column:disabled;not null;default:false"`
	RoleID         *string   `gorm:"column:role_id"`
	HashedPassword string    `gorm:"column:hashed_password;not null"`

	Role *UserRole `gorm:"foreignKey:RoleID;references:RoleID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string { return "users.users" }
