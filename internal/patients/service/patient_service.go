package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/recovglox/recovglox-backend/internal/patients/domain"
)

// PatientStore covers the writes behind add-patient and add-observation.
type PatientStore interface {
	GetPhysioDoc(ctx context.Context, uid string) (map[string]interface{}, error)
	UpdatePhysioPatients(ctx context.Context, uid string, patients map[string]interface{}) error
	GetInvite(ctx context.Context, email string) (*domain.AllowedUser, error)
	MergeInvite(ctx context.Context, email string, invite domain.AllowedUser) error
	UpdateInviteObservaciones(ctx context.Context, email string, observaciones []domain.Observation) error
	SetPatient(ctx context.Context, email string, patient domain.Patient) error
	SetLink(ctx context.Context, patientEmail, physioID string) error
}

// Notifier writes a notification for a physiotherapist.
type Notifier interface {
	Notify(ctx context.Context, recipientID, message string) error
}

// PatientService handles invite creation and observation appends, mirroring
// both into the physiotherapist's embedded patient map.
type PatientService struct {
	store    PatientStore
	users    UserDirectory
	notifier Notifier
}

func NewPatientService(store PatientStore, users UserDirectory, notifier Notifier) *PatientService {
	return &PatientService{store: store, users: users, notifier: notifier}
}

// AddPatient creates the patient record, link and invite for an email and
// appends a snapshot to the physiotherapist's patient map.
func (s *PatientService) AddPatient(ctx context.Context, physioID, name, email string) error {
	physioDoc, err := s.store.GetPhysioDoc(ctx, physioID)
	if err != nil {
		return err
	}

	uid, _, err := s.users.FindBasicByEmail(ctx, email)
	if err != nil {
		return err
	}
	var userID *string
	if uid != "" {
		userID = &uid
	}

	now := nowISO()
	patient := domain.Patient{
		Nombre:        name,
		Email:         email,
		PhysioID:      physioID,
		UserID:        userID,
		CreatedAt:     now,
		Observaciones: []domain.Observation{},
	}
	if err := s.store.SetPatient(ctx, email, patient); err != nil {
		return err
	}
	if err := s.store.SetLink(ctx, email, physioID); err != nil {
		return err
	}
	if err := s.store.MergeInvite(ctx, email, domain.AllowedUser{
		Nombre:     name,
		Email:      email,
		PhysioID:   physioID,
		Registered: uid != "",
		CreatedAt:  now,
	}); err != nil {
		return err
	}

	patients := patientsMap(physioDoc)
	patients[strconv.Itoa(len(patients))] = map[string]interface{}{
		"nombre":        name,
		"email":         email,
		"createdAt":     now,
		"observaciones": []domain.Observation{},
	}
	if err := s.store.UpdatePhysioPatients(ctx, physioID, patients); err != nil {
		return err
	}

	return s.notifier.Notify(ctx, physioID, fmt.Sprintf("Nuevo paciente registrado: %s (%s)", name, email))
}

// AddObservation appends an observation to the invite record (read-modify-
// write, not an atomic array append) and mirrors the updated list into the
// physiotherapist's patient map entry with the same email.
func (s *PatientService) AddObservation(ctx context.Context, physioID, patientEmail, text string) error {
	physioDoc, err := s.store.GetPhysioDoc(ctx, physioID)
	if err != nil {
		return err
	}

	invite, err := s.store.GetInvite(ctx, patientEmail)
	if errors.Is(err, domain.ErrInviteNotFound) {
		return domain.ErrNotOwner
	}
	if err != nil {
		return err
	}
	if invite.PhysioID != physioID {
		return domain.ErrNotOwner
	}

	updated := append(invite.Observaciones, domain.Observation{
		Text:             text,
		FechaObservacion: nowISO(),
		PhysioID:         physioID,
	})
	if err := s.store.UpdateInviteObservaciones(ctx, patientEmail, updated); err != nil {
		return err
	}

	patients := patientsMap(physioDoc)
	for key, v := range patients {
		entry, ok := v.(map[string]interface{})
		if !ok || entry["email"] != patientEmail {
			continue
		}
		entry["observaciones"] = updated
		patients[key] = entry
		if err := s.store.UpdatePhysioPatients(ctx, physioID, patients); err != nil {
			return err
		}
		break
	}

	return s.notifier.Notify(ctx, physioID, "Nueva observación añadida para "+invite.Nombre)
}

// LatestObservation returns the most recent observation of a patient as one
// localized "timestamp: text" line, or a placeholder when there is none.
// domain.ErrInviteNotFound when the email has no invite record.
func (s *PatientService) LatestObservation(ctx context.Context, email string) (string, error) {
	invite, err := s.store.GetInvite(ctx, email)
	if err != nil {
		return "", err
	}
	if len(invite.Observaciones) == 0 {
		return "No hay observaciones disponibles.", nil
	}

	last := invite.Observaciones[len(invite.Observaciones)-1]
	return fmt.Sprintf("%s: %s", formatSpanish(last.FechaObservacion), last.Text), nil
}

// formatSpanish renders an ISO timestamp the way es-ES locale output looks.
// Unparseable timestamps pass through untouched.
func formatSpanish(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format("2/1/2006, 15:04:05")
}

func patientsMap(physioDoc map[string]interface{}) map[string]interface{} {
	if m, ok := physioDoc["patients"].(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
