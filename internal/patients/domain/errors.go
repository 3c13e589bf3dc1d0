package domain

import "errors"

var (
	ErrNotPhysio      = errors.New("caller is not a physiotherapist")
	ErrNotOwner       = errors.New("patient is not managed by this physiotherapist")
	ErrInviteNotFound = errors.New("invite record not found")
)
