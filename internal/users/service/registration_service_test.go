package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recovglox/recovglox-backend/internal/identity"
	"github.com/recovglox/recovglox-backend/internal/users/domain"
)

type fakeIdentity struct {
	existing map[string]*identity.User // keyed by email
	nextUID  string
	created  []string
	deleted  []string
	failOn   string // step name that should error
}

func (f *fakeIdentity) CreateUser(_ context.Context, email, _, _ string) (*identity.User, error) {
	if f.failOn == "create" {
		return nil, identity.ErrEmailExists
	}
	f.created = append(f.created, email)
	return &identity.User{UID: f.nextUID, Email: email}, nil
}

func (f *fakeIdentity) GetUserByEmail(_ context.Context, email string) (*identity.User, error) {
	if u, ok := f.existing[email]; ok {
		return u, nil
	}
	return nil, identity.ErrUserNotFound
}

func (f *fakeIdentity) DeleteUser(_ context.Context, uid string) error {
	if f.failOn == "delete" {
		return errors.New("delete failed")
	}
	f.deleted = append(f.deleted, uid)
	return nil
}

type fakeProfiles struct {
	physios      []string
	basics       []string
	seeded       []string
	hasSessions  map[string]bool
	failOn       string
}

func (f *fakeProfiles) CreatePhysioProfile(_ context.Context, uid, _, _ string) error {
	f.physios = append(f.physios, uid)
	return nil
}

func (f *fakeProfiles) CreateBasicProfile(_ context.Context, uid, _, _ string) error {
	if f.failOn == "profile" {
		return errors.New("store write failed")
	}
	f.basics = append(f.basics, uid)
	return nil
}

func (f *fakeProfiles) SeedInitialSession(_ context.Context, uid string) error {
	f.seeded = append(f.seeded, uid)
	return nil
}

func (f *fakeProfiles) SetHasSessions(_ context.Context, uid string, has bool) error {
	if f.hasSessions == nil {
		f.hasSessions = map[string]bool{}
	}
	f.hasSessions[uid] = has
	return nil
}

type fakeInvites struct {
	invites    map[string]bool // email -> registered flag
	marked     []string
	backfilled map[string]string
}

func (f *fakeInvites) InviteRegistered(_ context.Context, email string) (bool, bool, error) {
	registered, found := f.invites[email]
	return registered, found, nil
}

func (f *fakeInvites) MarkInviteRegistered(_ context.Context, email string) error {
	f.marked = append(f.marked, email)
	return nil
}

func (f *fakeInvites) BackfillPatientUserID(_ context.Context, email, uid string) error {
	if f.backfilled == nil {
		f.backfilled = map[string]string{}
	}
	f.backfilled[email] = uid
	return nil
}

func basicReq() domain.RegisterRequest {
	return domain.RegisterRequest{
		Email:    "ana@example.com",
		Password: "secret123",
		Nombre:   "Ana",
		UserType: domain.TypeBasic,
	}
}

func TestRegister_BasicWithoutInvite(t *testing.T) {
	idp := &fakeIdentity{nextUID: "u1"}
	svc := NewRegistrationService(idp, &fakeProfiles{}, &fakeInvites{invites: map[string]bool{}})

	_, err := svc.Register(context.Background(), basicReq())
	assert.ErrorIs(t, err, domain.ErrNotInvited)
	assert.Empty(t, idp.created)
}

func TestRegister_BasicHappyPath(t *testing.T) {
	idp := &fakeIdentity{nextUID: "u1"}
	profiles := &fakeProfiles{}
	invites := &fakeInvites{invites: map[string]bool{"ana@example.com": false}}
	svc := NewRegistrationService(idp, profiles, invites)

	uid, err := svc.Register(context.Background(), basicReq())
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)
	assert.Equal(t, []string{"u1"}, profiles.basics)
	assert.Equal(t, []string{"u1"}, profiles.seeded)
	assert.True(t, profiles.hasSessions["u1"])
	assert.Equal(t, []string{"ana@example.com"}, invites.marked)
	assert.Equal(t, "u1", invites.backfilled["ana@example.com"])
	assert.Empty(t, idp.deleted)
}

func TestRegister_SecondAttemptAfterCompletion(t *testing.T) {
	idp := &fakeIdentity{
		nextUID:  "u2",
		existing: map[string]*identity.User{"ana@example.com": {UID: "u1", Email: "ana@example.com"}},
	}
	invites := &fakeInvites{invites: map[string]bool{"ana@example.com": true}}
	svc := NewRegistrationService(idp, &fakeProfiles{}, invites)

	_, err := svc.Register(context.Background(), basicReq())
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	assert.Empty(t, idp.deleted)
	assert.Empty(t, idp.created)
}

func TestRegister_SelfHealsStaleIdentity(t *testing.T) {
	idp := &fakeIdentity{
		nextUID:  "u2",
		existing: map[string]*identity.User{"ana@example.com": {UID: "u1", Email: "ana@example.com"}},
	}
	profiles := &fakeProfiles{}
	invites := &fakeInvites{invites: map[string]bool{"ana@example.com": false}}
	svc := NewRegistrationService(idp, profiles, invites)

	uid, err := svc.Register(context.Background(), basicReq())
	require.NoError(t, err)
	assert.Equal(t, "u2", uid)
	assert.Equal(t, []string{"u1"}, idp.deleted, "stale identity account removed before re-registering")
	assert.Equal(t, []string{"u2"}, profiles.basics)
}

func TestRegister_RollsBackIdentityOnProvisionFailure(t *testing.T) {
	idp := &fakeIdentity{nextUID: "u1"}
	profiles := &fakeProfiles{failOn: "profile"}
	invites := &fakeInvites{invites: map[string]bool{"ana@example.com": false}}
	svc := NewRegistrationService(idp, profiles, invites)

	_, err := svc.Register(context.Background(), basicReq())
	require.Error(t, err)
	assert.Equal(t, []string{"u1"}, idp.deleted, "compensating delete of the new identity")
	assert.Empty(t, invites.marked)
}

func TestRegister_PhysioSkipsInviteGate(t *testing.T) {
	idp := &fakeIdentity{nextUID: "p1"}
	profiles := &fakeProfiles{}
	svc := NewRegistrationService(idp, profiles, &fakeInvites{invites: map[string]bool{}})

	uid, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "fisio@example.com",
		Password: "secret123",
		Nombre:   "Luis",
		UserType: domain.TypePhysio,
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", uid)
	assert.Equal(t, []string{"p1"}, profiles.physios)
	assert.Empty(t, profiles.basics)
	assert.Empty(t, profiles.seeded)
}

func TestRegister_EmailExistsAtProvider(t *testing.T) {
	idp := &fakeIdentity{nextUID: "p1", failOn: "create"}
	svc := NewRegistrationService(idp, &fakeProfiles{}, &fakeInvites{})

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "fisio@example.com",
		Password: "secret123",
		Nombre:   "Luis",
		UserType: domain.TypePhysio,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
}
