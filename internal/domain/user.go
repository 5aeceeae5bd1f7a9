package domain

import (
	"context"
	"time"
)

// User represents a registered user. Users are immutable within this system's
// scope; the authentication collaborator only resolves and identifies them.
// swagger:model User
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// NewUser returns a new User with the given fields. ID is assigned by the
// store on create when empty.
func NewUser(email, name, avatar string) *User {
	return &User{
		Email:  email,
		Name:   name,
		Avatar: avatar,
	}
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// AuthService resolves a session for the HTTP surface. The core treats the
// user ID as opaque; this is the thinnest possible collaborator.
type AuthService interface {
	// Login resolves the user by email and issues a token for them.
	// Returns ErrUserNotFound for unknown emails.
	Login(ctx context.Context, email string) (token string, user *User, err error)
}
