package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/recovglox/recovglox-backend/internal/glove"
	"github.com/recovglox/recovglox-backend/internal/users/domain"
)

// UserRepository handles Firestore access to the two profile collections and
// to the per-user session sub-collections.
type UserRepository struct {
	fs *firestore.Client
}

func NewUserRepository(fs *firestore.Client) *UserRepository {
	return &UserRepository{fs: fs}
}

func (r *UserRepository) CreatePhysioProfile(ctx context.Context, uid, nombre, email string) error {
	profile := domain.PhysioProfile{
		Nombre:    nombre,
		Email:     email,
		UserType:  domain.TypePhysio,
		CreatedAt: nowISO(),
	}
	if _, err := r.fs.Collection(domain.CollectionPhysios).Doc(uid).Set(ctx, profile); err != nil {
		return fmt.Errorf("create physio profile: %w", err)
	}
	return nil
}

func (r *UserRepository) CreateBasicProfile(ctx context.Context, uid, nombre, email string) error {
	profile := domain.BasicProfile{
		Nombre:      nombre,
		Email:       email,
		UserType:    domain.TypeBasic,
		CreatedAt:   nowISO(),
		HasSessions: false,
	}
	if _, err := r.fs.Collection(domain.CollectionUsers).Doc(uid).Set(ctx, profile); err != nil {
		return fmt.Errorf("create basic profile: %w", err)
	}
	return nil
}

func (r *UserRepository) SetHasSessions(ctx context.Context, uid string, has bool) error {
	_, err := r.fs.Collection(domain.CollectionUsers).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "hasSessions", Value: has},
	})
	if err != nil {
		return fmt.Errorf("update hasSessions: %w", err)
	}
	return nil
}

// GetPhysioProfile returns the physiotherapist profile document, or
// domain.ErrProfileNotFound.
func (r *UserRepository) GetPhysioProfile(ctx context.Context, uid string) (map[string]interface{}, error) {
	return r.getProfile(ctx, domain.CollectionPhysios, uid)
}

// GetBasicProfile returns the basic user profile document, or
// domain.ErrProfileNotFound.
func (r *UserRepository) GetBasicProfile(ctx context.Context, uid string) (map[string]interface{}, error) {
	return r.getProfile(ctx, domain.CollectionUsers, uid)
}

func (r *UserRepository) getProfile(ctx context.Context, collection, uid string) (map[string]interface{}, error) {
	snap, err := r.fs.Collection(collection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile %s/%s: %w", collection, uid, err)
	}
	return snap.Data(), nil
}

// FindBasicByEmail looks a basic user up by email. uid is empty when no
// profile matches.
func (r *UserRepository) FindBasicByEmail(ctx context.Context, email string) (uid string, data map[string]interface{}, err error) {
	iter := r.fs.Collection(domain.CollectionUsers).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("find user by email: %w", err)
	}
	return snap.Ref.ID, snap.Data(), nil
}

// SeedInitialSession writes the four zeroed finger documents of the default
// session sub-collection.
func (r *UserRepository) SeedInitialSession(ctx context.Context, uid string) error {
	col := r.fs.Collection(domain.CollectionUsers).Doc(uid).Collection(glove.CollectionName(0))
	for _, finger := range glove.Fingers {
		if _, err := col.Doc(finger).Set(ctx, glove.ZeroReadingDoc()); err != nil {
			return fmt.Errorf("seed %s: %w", finger, err)
		}
	}
	return nil
}

// SessionDocs implements glove.SessionSource.
func (r *UserRepository) SessionDocs(ctx context.Context, userID, collection string) ([]glove.Doc, error) {
	snaps, err := r.fs.Collection(domain.CollectionUsers).Doc(userID).Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", collection, err)
	}
	docs := make([]glove.Doc, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, glove.Doc{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

// DeleteSessionData removes every session sub-collection of a user, walking
// the dense numbering until the first missing one.
func (r *UserRepository) DeleteSessionData(ctx context.Context, uid string) error {
	for n := 0; ; n++ {
		snaps, err := r.fs.Collection(domain.CollectionUsers).Doc(uid).Collection(glove.CollectionName(n)).Documents(ctx).GetAll()
		if err != nil {
			return fmt.Errorf("list session %d: %w", n, err)
		}
		if len(snaps) == 0 {
			return nil
		}
		bw := r.fs.BulkWriter(ctx)
		jobs := make([]*firestore.BulkWriterJob, 0, len(snaps))
		for _, snap := range snaps {
			job, err := bw.Delete(snap.Ref)
			if err != nil {
				return fmt.Errorf("delete session doc: %w", err)
			}
			jobs = append(jobs, job)
		}
		bw.End()
		for _, job := range jobs {
			if _, err := job.Results(); err != nil {
				return fmt.Errorf("delete session doc: %w", err)
			}
		}
	}
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
