package service

import (
	"context"
	"errors"

	"github.com/recovglox/recovglox-backend/internal/identity"
	"github.com/recovglox/recovglox-backend/internal/users/domain"
)

// CascadeStore covers the role probes and batched deletes of delete-user.
type CascadeStore interface {
	PhysioExists(ctx context.Context, uid string) (bool, error)
	BasicUserExists(ctx context.Context, uid string) (bool, error)
	DeletePhysioData(ctx context.Context, uid string) error
	DeleteBasicData(ctx context.Context, uid, email string) error
	DeleteOrphanData(ctx context.Context, email string) error
}

// DeletionService removes an account and everything keyed to it. Store and
// identity deletion are sequential, not transactional.
type DeletionService struct {
	identity identity.Provider
	store    CascadeStore
}

func NewDeletionService(idp identity.Provider, store CascadeStore) *DeletionService {
	return &DeletionService{identity: idp, store: store}
}

// Delete resolves the identity by email, cascades the store deletes for its
// role (or cleans orphaned records when no profile exists), then deletes the
// identity account.
func (s *DeletionService) Delete(ctx context.Context, email string) error {
	rec, err := s.identity.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	isPhysio, err := s.store.PhysioExists(ctx, rec.UID)
	if err != nil {
		return err
	}
	isBasic := false
	if !isPhysio {
		if isBasic, err = s.store.BasicUserExists(ctx, rec.UID); err != nil {
			return err
		}
	}

	switch {
	case isPhysio:
		err = s.store.DeletePhysioData(ctx, rec.UID)
	case isBasic:
		err = s.store.DeleteBasicData(ctx, rec.UID, email)
	default:
		err = s.store.DeleteOrphanData(ctx, email)
	}
	if err != nil {
		return err
	}

	return s.identity.DeleteUser(ctx, rec.UID)
}
