// Package identity wraps the managed identity provider (Firebase
// Authentication) behind a small interface the services consume.
package identity

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound = errors.New("identity: user not found")
	ErrEmailExists  = errors.New("identity: email already in use")
)

// User is the subset of the provider's account record the backend uses.
type User struct {
	UID         string
	Email       string
	DisplayName string
}

type Provider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	DeleteUser(ctx context.Context, uid string) error
}
