package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recovglox/recovglox-backend/internal/notifications/domain"
	patientsdomain "github.com/recovglox/recovglox-backend/internal/patients/domain"
)

type fakeNotifStore struct {
	added        []domain.Notification
	recent       map[string][]domain.Notification
	recentCalls  int
	prunedBefore time.Time
	pruned       int
}

func (f *fakeNotifStore) Add(_ context.Context, recipientID, message string) error {
	f.added = append(f.added, domain.Notification{RecipientID: recipientID, Message: message})
	return nil
}

func (f *fakeNotifStore) Recent(_ context.Context, recipientID string, _ int) ([]domain.Notification, error) {
	f.recentCalls++
	return f.recent[recipientID], nil
}

func (f *fakeNotifStore) PruneOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	f.prunedBefore = cutoff
	return f.pruned, nil
}

type fakeCache struct {
	entries     map[string][]domain.Notification
	invalidated []string
	setCalls    int
}

func (f *fakeCache) Get(_ context.Context, recipientID string) ([]domain.Notification, bool) {
	items, ok := f.entries[recipientID]
	return items, ok
}

func (f *fakeCache) Set(_ context.Context, recipientID string, items []domain.Notification) {
	if f.entries == nil {
		f.entries = map[string][]domain.Notification{}
	}
	f.entries[recipientID] = items
	f.setCalls++
}

func (f *fakeCache) Invalidate(_ context.Context, recipientID string) {
	delete(f.entries, recipientID)
	f.invalidated = append(f.invalidated, recipientID)
}

type fakePhysios struct {
	known map[string]bool
}

func (f *fakePhysios) GetPhysioDoc(_ context.Context, uid string) (map[string]interface{}, error) {
	if f.known[uid] {
		return map[string]interface{}{}, nil
	}
	return nil, patientsdomain.ErrNotPhysio
}

func TestNotify_InvalidatesCachedFeed(t *testing.T) {
	store := &fakeNotifStore{}
	cache := &fakeCache{entries: map[string][]domain.Notification{"p1": {}}}
	svc := NewNotificationService(store, cache, &fakePhysios{})

	err := svc.Notify(context.Background(), "p1", "Nuevo paciente registrado: Ana (ana@example.com)")
	require.NoError(t, err)

	require.Len(t, store.added, 1)
	assert.Equal(t, "p1", store.added[0].RecipientID)
	assert.Equal(t, []string{"p1"}, cache.invalidated)
}

func TestNotify_WorksWithoutCache(t *testing.T) {
	store := &fakeNotifStore{}
	svc := NewNotificationService(store, nil, &fakePhysios{})

	require.NoError(t, svc.Notify(context.Background(), "p1", "mensaje"))
	assert.Len(t, store.added, 1)
}

func TestFeed_RejectsNonPhysio(t *testing.T) {
	svc := NewNotificationService(&fakeNotifStore{}, nil, &fakePhysios{})

	_, err := svc.Feed(context.Background(), "nobody")
	assert.ErrorIs(t, err, patientsdomain.ErrNotPhysio)
}

func TestFeed_ReadThrough(t *testing.T) {
	store := &fakeNotifStore{recent: map[string][]domain.Notification{
		"p1": {{RecipientID: "p1", Message: "a"}, {RecipientID: "p1", Message: "b"}},
	}}
	cache := &fakeCache{}
	svc := NewNotificationService(store, cache, &fakePhysios{known: map[string]bool{"p1": true}})

	first, err := svc.Feed(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 1, store.recentCalls)
	assert.Equal(t, 1, cache.setCalls)

	second, err := svc.Feed(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.recentCalls, "second read is served from the cache")
}

func TestPrune_UsesRetentionCutoff(t *testing.T) {
	store := &fakeNotifStore{pruned: 3}
	svc := NewNotificationService(store, nil, &fakePhysios{})

	before := time.Now()
	require.NoError(t, svc.Prune(context.Background(), 30*24*time.Hour))

	expected := before.Add(-30 * 24 * time.Hour)
	assert.WithinDuration(t, expected, store.prunedBefore, time.Minute)
}
