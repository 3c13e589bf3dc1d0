package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recovglox/recovglox-backend/internal/notifications/domain"
)

func newTestCache(t *testing.T) (*FeedCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewFeedCache(client, time.Minute), mr
}

func TestFeedCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "p1")
	assert.False(t, ok, "cold cache misses")

	items := []domain.Notification{
		{RecipientID: "p1", Message: "Nueva observación añadida para Ana", Timestamp: "2026-08-30T10:00:00Z"},
		{RecipientID: "p1", Message: "Nuevo paciente registrado: Beto (beto@example.com)", Timestamp: "2026-08-30T09:00:00Z"},
	}
	cache.Set(ctx, "p1", items)

	got, ok := cache.Get(ctx, "p1")
	require.True(t, ok)
	assert.Equal(t, items, got)

	_, ok = cache.Get(ctx, "p2")
	assert.False(t, ok, "feeds are keyed per recipient")
}

func TestFeedCache_Invalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "p1", []domain.Notification{{RecipientID: "p1", Message: "m"}})
	cache.Invalidate(ctx, "p1")

	_, ok := cache.Get(ctx, "p1")
	assert.False(t, ok)
}

func TestFeedCache_EntriesExpire(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "p1", []domain.Notification{{RecipientID: "p1", Message: "m"}})
	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx, "p1")
	assert.False(t, ok)
}
