package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	notifdomain "github.com/recovglox/recovglox-backend/internal/notifications/domain"
	patientsdomain "github.com/recovglox/recovglox-backend/internal/patients/domain"
	"github.com/recovglox/recovglox-backend/internal/users/domain"
)

// CascadeRepository removes everything a deleted account owns. Writes are
// batched per role; identity deletion happens afterwards in the service and
// is not transactional with these.
type CascadeRepository struct {
	fs    *firestore.Client
	users *UserRepository
}

func NewCascadeRepository(fs *firestore.Client, users *UserRepository) *CascadeRepository {
	return &CascadeRepository{fs: fs, users: users}
}

func (r *CascadeRepository) PhysioExists(ctx context.Context, uid string) (bool, error) {
	return r.exists(ctx, r.fs.Collection(domain.CollectionPhysios).Doc(uid))
}

func (r *CascadeRepository) BasicUserExists(ctx context.Context, uid string) (bool, error) {
	return r.exists(ctx, r.fs.Collection(domain.CollectionUsers).Doc(uid))
}

// DeletePhysioData removes the physiotherapist's links, owned patient and
// invite records, notifications, and the profile document itself.
func (r *CascadeRepository) DeletePhysioData(ctx context.Context, uid string) error {
	refs, err := r.queryRefs(ctx,
		r.fs.Collection(patientsdomain.CollectionLinks).Where("physioId", "==", uid),
		r.fs.Collection(patientsdomain.CollectionPatients).Where("physioId", "==", uid),
		r.fs.Collection(patientsdomain.CollectionAllowed).Where("physioId", "==", uid),
		r.fs.Collection(notifdomain.Collection).Where("recipientId", "==", uid),
	)
	if err != nil {
		return err
	}
	refs = append(refs, r.fs.Collection(domain.CollectionPhysios).Doc(uid))
	return r.deleteAll(ctx, refs)
}

// DeleteBasicData removes the user's session sub-collections, then the
// link/patient/invite records keyed by email and the profile document.
func (r *CascadeRepository) DeleteBasicData(ctx context.Context, uid, email string) error {
	if err := r.users.DeleteSessionData(ctx, uid); err != nil {
		return err
	}

	refs, err := r.patientRecordRefs(ctx, email)
	if err != nil {
		return err
	}
	refs = append(refs, r.fs.Collection(domain.CollectionUsers).Doc(uid))
	return r.deleteAll(ctx, refs)
}

// DeleteOrphanData cleans up the email-keyed records of an identity that has
// no profile document in either collection.
func (r *CascadeRepository) DeleteOrphanData(ctx context.Context, email string) error {
	refs, err := r.patientRecordRefs(ctx, email)
	if err != nil {
		return err
	}
	return r.deleteAll(ctx, refs)
}

func (r *CascadeRepository) patientRecordRefs(ctx context.Context, email string) ([]*firestore.DocumentRef, error) {
	refs, err := r.queryRefs(ctx,
		r.fs.Collection(patientsdomain.CollectionLinks).Where("patientId", "==", email),
	)
	if err != nil {
		return nil, err
	}

	for _, ref := range []*firestore.DocumentRef{
		r.fs.Collection(patientsdomain.CollectionPatients).Doc(email),
		r.fs.Collection(patientsdomain.CollectionAllowed).Doc(email),
	} {
		ok, err := r.exists(ctx, ref)
		if err != nil {
			return nil, err
		}
		if ok {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

func (r *CascadeRepository) queryRefs(ctx context.Context, queries ...firestore.Query) ([]*firestore.DocumentRef, error) {
	var refs []*firestore.DocumentRef
	for _, q := range queries {
		snaps, err := q.Documents(ctx).GetAll()
		if err != nil {
			return nil, fmt.Errorf("cascade query: %w", err)
		}
		for _, snap := range snaps {
			refs = append(refs, snap.Ref)
		}
	}
	return refs, nil
}

func (r *CascadeRepository) deleteAll(ctx context.Context, refs []*firestore.DocumentRef) error {
	if len(refs) == 0 {
		return nil
	}
	bw := r.fs.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(refs))
	for _, ref := range refs {
		job, err := bw.Delete(ref)
		if err != nil {
			return fmt.Errorf("cascade delete: %w", err)
		}
		jobs = append(jobs, job)
	}
	bw.End()
	// Delete only enqueues; the write outcome surfaces per job.
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("cascade delete: %w", err)
		}
	}
	return nil
}

func (r *CascadeRepository) exists(ctx context.Context, ref *firestore.DocumentRef) (bool, error) {
	_, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("existence check %s: %w", ref.Path, err)
	}
	return true, nil
}
