package domain

import "errors"

var (
	ErrNotInvited        = errors.New("email not authorized by a physiotherapist")
	ErrAlreadyRegistered = errors.New("email already registered")
	ErrInvalidLogin      = errors.New("invalid credentials or user not found")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrUserNotFound      = errors.New("user not found")
)
