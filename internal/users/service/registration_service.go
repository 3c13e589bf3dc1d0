package service

import (
	"context"
	"errors"
	"log"

	"github.com/recovglox/recovglox-backend/internal/identity"
	"github.com/recovglox/recovglox-backend/internal/users/domain"
)

// ProfileWriter covers the profile writes registration performs.
type ProfileWriter interface {
	CreatePhysioProfile(ctx context.Context, uid, nombre, email string) error
	CreateBasicProfile(ctx context.Context, uid, nombre, email string) error
	SeedInitialSession(ctx context.Context, uid string) error
	SetHasSessions(ctx context.Context, uid string, has bool) error
}

// InviteGate covers the invite-record operations of the patients feature that
// registration depends on.
type InviteGate interface {
	// InviteRegistered reports whether an invite exists for the email and
	// whether it is already marked registered.
	InviteRegistered(ctx context.Context, email string) (registered, found bool, err error)
	MarkInviteRegistered(ctx context.Context, email string) error
	// BackfillPatientUserID links an existing patient record to the new
	// identity; missing record is a no-op.
	BackfillPatientUserID(ctx context.Context, email, uid string) error
}

// RegistrationService creates accounts: identity first, then profile and
// seed documents, with a best-effort identity rollback when a later step fails.
type RegistrationService struct {
	identity identity.Provider
	profiles ProfileWriter
	invites  InviteGate
}

func NewRegistrationService(idp identity.Provider, profiles ProfileWriter, invites InviteGate) *RegistrationService {
	return &RegistrationService{identity: idp, profiles: profiles, invites: invites}
}

// Register creates the identity account and profile documents for the request
// and returns the new uid. Basic users must have been invited beforehand.
func (s *RegistrationService) Register(ctx context.Context, req domain.RegisterRequest) (string, error) {
	if req.UserType == domain.TypeBasic {
		if err := s.checkInvite(ctx, req.Email); err != nil {
			return "", err
		}
	}

	rec, err := s.identity.CreateUser(ctx, req.Email, req.Password, req.Nombre)
	if err != nil {
		if errors.Is(err, identity.ErrEmailExists) {
			return "", domain.ErrAlreadyRegistered
		}
		return "", err
	}

	if err := s.provision(ctx, rec.UID, req); err != nil {
		s.rollback(ctx, rec.UID)
		return "", err
	}

	return rec.UID, nil
}

func (s *RegistrationService) checkInvite(ctx context.Context, email string) error {
	registered, found, err := s.invites.InviteRegistered(ctx, email)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotInvited
	}

	existing, err := s.identity.GetUserByEmail(ctx, email)
	if errors.Is(err, identity.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if registered {
		return domain.ErrAlreadyRegistered
	}

	// Identity exists but the invite was never flipped: a previous
	// registration died halfway. Remove the stale account and start over.
	if err := s.identity.DeleteUser(ctx, existing.UID); err != nil {
		return err
	}
	log.Printf("Usuario %s eliminado de Authentication porque no estaba completamente registrado.", existing.UID)
	return nil
}

func (s *RegistrationService) provision(ctx context.Context, uid string, req domain.RegisterRequest) error {
	if req.UserType == domain.TypePhysio {
		return s.profiles.CreatePhysioProfile(ctx, uid, req.Nombre, req.Email)
	}

	if err := s.profiles.CreateBasicProfile(ctx, uid, req.Nombre, req.Email); err != nil {
		return err
	}
	if err := s.profiles.SeedInitialSession(ctx, uid); err != nil {
		return err
	}
	if err := s.profiles.SetHasSessions(ctx, uid, true); err != nil {
		return err
	}
	if err := s.invites.MarkInviteRegistered(ctx, req.Email); err != nil {
		return err
	}
	return s.invites.BackfillPatientUserID(ctx, req.Email, uid)
}

// rollback is the compensating action: the identity account was already
// created, so losing the profile writes must not strand it.
func (s *RegistrationService) rollback(ctx context.Context, uid string) {
	if err := s.identity.DeleteUser(ctx, uid); err != nil {
		log.Printf("Error al eliminar usuario %s de Authentication: %v", uid, err)
		return
	}
	log.Printf("Usuario %s eliminado de Authentication debido a un error.", uid)
}
