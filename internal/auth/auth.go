package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

// Role tags an account's privilege level. Values are stored as-is in the
// users table; the Spanish value for the standard role is kept for
// compatibility with databases seeded by earlier deployments.
type Role string

const (
	RoleStandard Role = "usuario"
	RoleAdmin    Role = "admin"
)

// Actor is the identity attached to the current request. A nil *Actor means
// anonymous.
type Actor struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// Account is the credential view of a user row, as narrow as the auth
// service needs it.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
}

func (a *Account) Actor() *Actor {
	return &Actor{ID: a.ID, Username: a.Username, Role: a.Role}
}

// AccountStore is the persistence contract the auth service depends on.
type AccountStore interface {
	FindByUsername(ctx context.Context, username string) (*Account, error)
	Create(ctx context.Context, account *Account) error
}

const (
	MaxUsernameLength = 50
	MaxPasswordLength = 72 // bcrypt input limit
)

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
