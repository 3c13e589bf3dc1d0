package service

import (
	"context"
	"errors"

	"github.com/recovglox/recovglox-backend/internal/glove"
	"github.com/recovglox/recovglox-backend/internal/patients/domain"
)

// RosterStore covers the reads the roster aggregation needs.
type RosterStore interface {
	GetPhysioDoc(ctx context.Context, uid string) (map[string]interface{}, error)
	LinksByPhysio(ctx context.Context, physioID string) ([]domain.Link, error)
	GetInvite(ctx context.Context, email string) (*domain.AllowedUser, error)
}

// UserDirectory resolves a basic user profile by email. uid is empty when no
// profile exists.
type UserDirectory interface {
	FindBasicByEmail(ctx context.Context, email string) (uid string, data map[string]interface{}, err error)
}

// RosterService joins the link, invite and profile collections into the
// physiotherapist's patient roster, scanning each registered patient's
// session sub-collections for counts.
type RosterService struct {
	store    RosterStore
	users    UserDirectory
	sessions glove.SessionSource
}

func NewRosterService(store RosterStore, users UserDirectory, sessions glove.SessionSource) *RosterService {
	return &RosterService{store: store, users: users, sessions: sessions}
}

// Roster returns the per-patient view models and the total session count
// across all of them. domain.ErrNotPhysio when the caller has no
// physiotherapist profile.
func (s *RosterService) Roster(ctx context.Context, physioID string) ([]domain.RosterEntry, int, error) {
	if _, err := s.store.GetPhysioDoc(ctx, physioID); err != nil {
		return nil, 0, err
	}

	links, err := s.store.LinksByPhysio(ctx, physioID)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]domain.RosterEntry, 0, len(links))
	totalSessions := 0
	for _, link := range links {
		entry, err := s.buildEntry(ctx, link.PatientID)
		if err != nil {
			return nil, 0, err
		}
		totalSessions += entry.SessionCount
		entries = append(entries, entry)
	}

	return entries, totalSessions, nil
}

func (s *RosterService) buildEntry(ctx context.Context, email string) (domain.RosterEntry, error) {
	entry := domain.RosterEntry{
		ID:            email,
		Email:         email,
		Observaciones: []domain.Observation{},
	}

	inviteName := domain.PlaceholderName
	invite, err := s.store.GetInvite(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrInviteNotFound) {
		return entry, err
	}
	if invite != nil {
		inviteName = invite.Nombre
		entry.PhysioID = invite.PhysioID
		entry.Registered = invite.Registered
		entry.CreatedAt = invite.CreatedAt
		if invite.Observaciones != nil {
			entry.Observaciones = invite.Observaciones
		}
	}

	uid, userData, err := s.users.FindBasicByEmail(ctx, email)
	if err != nil {
		return entry, err
	}

	nombre := inviteName
	if uid != "" {
		entry.UserID = &uid
		entry.IsRegistered = true
		if n, ok := userData["nombre"].(string); ok && n != "" {
			nombre = n
		}

		count, has, err := glove.CountSessions(ctx, s.sessions, uid)
		if err != nil {
			return entry, err
		}
		entry.SessionCount = count
		entry.HasSessions = has
	}
	if nombre == "" {
		nombre = "Sin nombre"
	}
	entry.Nombre = nombre

	return entry, nil
}
