package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/recovglox/recovglox-backend/internal/patients/domain"
	usersdomain "github.com/recovglox/recovglox-backend/internal/users/domain"
)

// PatientRepository handles Firestore access to the patient, invite and link
// collections, plus the physiotherapist document's embedded patient map.
type PatientRepository struct {
	fs *firestore.Client
}

func NewPatientRepository(fs *firestore.Client) *PatientRepository {
	return &PatientRepository{fs: fs}
}

// GetInvite returns the invite record for an email, or domain.ErrInviteNotFound.
func (r *PatientRepository) GetInvite(ctx context.Context, email string) (*domain.AllowedUser, error) {
	snap, err := r.fs.Collection(domain.CollectionAllowed).Doc(email).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrInviteNotFound
		}
		return nil, fmt.Errorf("get invite: %w", err)
	}

	var invite domain.AllowedUser
	if err := snap.DataTo(&invite); err != nil {
		return nil, fmt.Errorf("decode invite: %w", err)
	}
	return &invite, nil
}

// InviteRegistered reports invite presence and its registered flag.
func (r *PatientRepository) InviteRegistered(ctx context.Context, email string) (registered, found bool, err error) {
	invite, err := r.GetInvite(ctx, email)
	if errors.Is(err, domain.ErrInviteNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return invite.Registered, true, nil
}

func (r *PatientRepository) MarkInviteRegistered(ctx context.Context, email string) error {
	_, err := r.fs.Collection(domain.CollectionAllowed).Doc(email).Update(ctx, []firestore.Update{
		{Path: "registered", Value: true},
	})
	if err != nil {
		return fmt.Errorf("mark invite registered: %w", err)
	}
	return nil
}

// MergeInvite upserts the invite record, preserving fields it does not set.
func (r *PatientRepository) MergeInvite(ctx context.Context, email string, invite domain.AllowedUser) error {
	_, err := r.fs.Collection(domain.CollectionAllowed).Doc(email).Set(ctx, map[string]interface{}{
		"nombre":     invite.Nombre,
		"email":      invite.Email,
		"physioId":   invite.PhysioID,
		"registered": invite.Registered,
		"createdAt":  invite.CreatedAt,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("merge invite: %w", err)
	}
	return nil
}

func (r *PatientRepository) UpdateInviteObservaciones(ctx context.Context, email string, observaciones []domain.Observation) error {
	_, err := r.fs.Collection(domain.CollectionAllowed).Doc(email).Update(ctx, []firestore.Update{
		{Path: "observaciones", Value: observaciones},
	})
	if err != nil {
		return fmt.Errorf("update observaciones: %w", err)
	}
	return nil
}

// GetPatient returns the patient record for an email, or nil when absent.
func (r *PatientRepository) GetPatient(ctx context.Context, email string) (*domain.Patient, error) {
	snap, err := r.fs.Collection(domain.CollectionPatients).Doc(email).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}

	var patient domain.Patient
	if err := snap.DataTo(&patient); err != nil {
		return nil, fmt.Errorf("decode patient: %w", err)
	}
	return &patient, nil
}

func (r *PatientRepository) SetPatient(ctx context.Context, email string, patient domain.Patient) error {
	if _, err := r.fs.Collection(domain.CollectionPatients).Doc(email).Set(ctx, patient); err != nil {
		return fmt.Errorf("set patient: %w", err)
	}
	return nil
}

// BackfillPatientUserID links an existing patient record to a newly created
// identity. Missing record is a no-op.
func (r *PatientRepository) BackfillPatientUserID(ctx context.Context, email, uid string) error {
	ref := r.fs.Collection(domain.CollectionPatients).Doc(email)
	if _, err := ref.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return fmt.Errorf("get patient: %w", err)
	}

	_, err := ref.Update(ctx, []firestore.Update{{Path: "userId", Value: uid}})
	if err != nil {
		return fmt.Errorf("backfill patient userId: %w", err)
	}
	return nil
}

func (r *PatientRepository) SetLink(ctx context.Context, patientEmail, physioID string) error {
	link := domain.Link{
		PhysioID:  physioID,
		PatientID: patientEmail,
		AddedAt:   nowISO(),
	}
	docID := fmt.Sprintf("%s_%s", patientEmail, physioID)
	if _, err := r.fs.Collection(domain.CollectionLinks).Doc(docID).Set(ctx, link); err != nil {
		return fmt.Errorf("set link: %w", err)
	}
	return nil
}

func (r *PatientRepository) LinksByPhysio(ctx context.Context, physioID string) ([]domain.Link, error) {
	snaps, err := r.fs.Collection(domain.CollectionLinks).
		Where("physioId", "==", physioID).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}

	links := make([]domain.Link, 0, len(snaps))
	for _, snap := range snaps {
		var link domain.Link
		if err := snap.DataTo(&link); err != nil {
			return nil, fmt.Errorf("decode link: %w", err)
		}
		links = append(links, link)
	}
	return links, nil
}

// GetPhysioDoc returns the raw physiotherapist document, including the
// embedded patient map, or domain.ErrNotPhysio.
func (r *PatientRepository) GetPhysioDoc(ctx context.Context, uid string) (map[string]interface{}, error) {
	snap, err := r.fs.Collection(usersdomain.CollectionPhysios).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotPhysio
		}
		return nil, fmt.Errorf("get physio: %w", err)
	}
	return snap.Data(), nil
}

func (r *PatientRepository) UpdatePhysioPatients(ctx context.Context, uid string, patients map[string]interface{}) error {
	_, err := r.fs.Collection(usersdomain.CollectionPhysios).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "patients", Value: patients},
	})
	if err != nil {
		return fmt.Errorf("update physio patients: %w", err)
	}
	return nil
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
