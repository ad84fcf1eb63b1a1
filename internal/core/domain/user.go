package domain

import (
	"errors"
	"strings"
)

// RoleAdmin is the only role that unlocks catalog mutations.
const RoleAdmin = "ADMIN"

// roleDelimiter separates role names inside User.Roles.
const roleDelimiter = ";"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User models a registered account. Roles is kept as a single delimited
// string, matching the legacy storage format.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string `json:"nome" gorm:"column:nome"`
	Email        string `json:"email"`
	Login        string `json:"login" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:senha;not null"`
	Roles        string `json:"roles"`
}

// TableName keeps the table name of the legacy schema.
func (User) TableName() string { return "usuario" }

// HasRole reports whether role appears as an exact element of the delimited
// roles string. "ADMINISTRATOR" or "NOTADMIN" never satisfy a check for
// "ADMIN".
func HasRole(roles, role string) bool {
	for _, r := range strings.Split(roles, roleDelimiter) {
		if r == role {
			return true
		}
	}
	return false
}

// HasRole reports whether the user carries role.
func (u *User) HasRole(role string) bool {
	return HasRole(u.Roles, role)
}
