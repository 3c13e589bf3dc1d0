package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recovglox/recovglox-backend/internal/identity"
	"github.com/recovglox/recovglox-backend/internal/users/domain"
)

type fakeCascade struct {
	physios map[string]bool
	basics  map[string]bool
	calls   []string
}

func (f *fakeCascade) PhysioExists(_ context.Context, uid string) (bool, error) {
	return f.physios[uid], nil
}

func (f *fakeCascade) BasicUserExists(_ context.Context, uid string) (bool, error) {
	return f.basics[uid], nil
}

func (f *fakeCascade) DeletePhysioData(_ context.Context, uid string) error {
	f.calls = append(f.calls, "physio:"+uid)
	return nil
}

func (f *fakeCascade) DeleteBasicData(_ context.Context, uid, email string) error {
	f.calls = append(f.calls, "basic:"+uid+":"+email)
	return nil
}

func (f *fakeCascade) DeleteOrphanData(_ context.Context, email string) error {
	f.calls = append(f.calls, "orphan:"+email)
	return nil
}

func TestDelete_PhysioCascade(t *testing.T) {
	idp := &fakeIdentity{existing: map[string]*identity.User{
		"fisio@example.com": {UID: "p1", Email: "fisio@example.com"},
	}}
	store := &fakeCascade{physios: map[string]bool{"p1": true}}
	svc := NewDeletionService(idp, store)

	require.NoError(t, svc.Delete(context.Background(), "fisio@example.com"))
	assert.Equal(t, []string{"physio:p1"}, store.calls)
	assert.Equal(t, []string{"p1"}, idp.deleted, "identity removed after store cascade")
}

func TestDelete_BasicCascade(t *testing.T) {
	idp := &fakeIdentity{existing: map[string]*identity.User{
		"ana@example.com": {UID: "u1", Email: "ana@example.com"},
	}}
	store := &fakeCascade{basics: map[string]bool{"u1": true}}
	svc := NewDeletionService(idp, store)

	require.NoError(t, svc.Delete(context.Background(), "ana@example.com"))
	assert.Equal(t, []string{"basic:u1:ana@example.com"}, store.calls)
	assert.Equal(t, []string{"u1"}, idp.deleted)
}

func TestDelete_OrphanedIdentity(t *testing.T) {
	idp := &fakeIdentity{existing: map[string]*identity.User{
		"ghost@example.com": {UID: "g1", Email: "ghost@example.com"},
	}}
	store := &fakeCascade{}
	svc := NewDeletionService(idp, store)

	require.NoError(t, svc.Delete(context.Background(), "ghost@example.com"))
	assert.Equal(t, []string{"orphan:ghost@example.com"}, store.calls)
}

func TestDelete_UnknownEmail(t *testing.T) {
	svc := NewDeletionService(&fakeIdentity{}, &fakeCascade{})

	err := svc.Delete(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
