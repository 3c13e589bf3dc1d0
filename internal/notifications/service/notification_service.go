package service

import (
	"context"
	"log"
	"time"

	"github.com/recovglox/recovglox-backend/internal/notifications/domain"
)

// FeedLimit caps how many notifications the feed returns.
const FeedLimit = 10

// Store covers the persistent notification operations.
type Store interface {
	Add(ctx context.Context, recipientID, message string) error
	Recent(ctx context.Context, recipientID string, limit int) ([]domain.Notification, error)
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// Cache is the optional Redis feed cache.
type Cache interface {
	Get(ctx context.Context, recipientID string) ([]domain.Notification, bool)
	Set(ctx context.Context, recipientID string, items []domain.Notification)
	Invalidate(ctx context.Context, recipientID string)
}

// PhysioChecker verifies the recipient is a physiotherapist. Returns
// the patients feature's ErrNotPhysio when not.
type PhysioChecker interface {
	GetPhysioDoc(ctx context.Context, uid string) (map[string]interface{}, error)
}

// NotificationService writes and reads physiotherapist notifications with an
// optional read-through cache.
type NotificationService struct {
	store   Store
	cache   Cache // nil when Redis is not configured
	physios PhysioChecker
}

func NewNotificationService(store Store, cache Cache, physios PhysioChecker) *NotificationService {
	return &NotificationService{store: store, cache: cache, physios: physios}
}

// Notify appends a notification and drops the recipient's cached feed.
func (s *NotificationService) Notify(ctx context.Context, recipientID, message string) error {
	if err := s.store.Add(ctx, recipientID, message); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, recipientID)
	}
	return nil
}

// Feed returns the recipient's newest notifications, newest first, capped at
// FeedLimit.
func (s *NotificationService) Feed(ctx context.Context, physioID string) ([]domain.Notification, error) {
	if _, err := s.physios.GetPhysioDoc(ctx, physioID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if items, ok := s.cache.Get(ctx, physioID); ok {
			return items, nil
		}
	}

	items, err := s.store.Recent(ctx, physioID, FeedLimit)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, physioID, items)
	}
	return items, nil
}

// Prune removes notifications older than the retention window.
func (s *NotificationService) Prune(ctx context.Context, retention time.Duration) error {
	n, err := s.store.PruneOlderThan(ctx, time.Now().Add(-retention))
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("Pruned %d notifications older than %s", n, retention)
	}
	return nil
}
