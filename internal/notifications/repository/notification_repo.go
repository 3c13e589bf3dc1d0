package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/recovglox/recovglox-backend/internal/notifications/domain"
)

// NotificationRepository handles Firestore access to the notifications
// collection.
type NotificationRepository struct {
	fs *firestore.Client
}

func NewNotificationRepository(fs *firestore.Client) *NotificationRepository {
	return &NotificationRepository{fs: fs}
}

func (r *NotificationRepository) Add(ctx context.Context, recipientID, message string) error {
	n := domain.Notification{
		RecipientID: recipientID,
		Message:     message,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Read:        false,
	}
	_, err := r.fs.Collection(domain.Collection).Doc(uuid.NewString()).Set(ctx, n)
	if err != nil {
		return fmt.Errorf("add notification: %w", err)
	}
	return nil
}

// Recent returns the newest notifications for a recipient, newest first.
func (r *NotificationRepository) Recent(ctx context.Context, recipientID string, limit int) ([]domain.Notification, error) {
	snaps, err := r.fs.Collection(domain.Collection).
		Where("recipientId", "==", recipientID).
		OrderBy("timestamp", firestore.Desc).
		Limit(limit).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}

	items := make([]domain.Notification, 0, len(snaps))
	for _, snap := range snaps {
		var n domain.Notification
		if err := snap.DataTo(&n); err != nil {
			return nil, fmt.Errorf("decode notification: %w", err)
		}
		items = append(items, n)
	}
	return items, nil
}

// PruneOlderThan deletes notifications with a timestamp before the cutoff and
// returns how many were removed. ISO timestamps order lexicographically, so
// the comparison runs store-side.
func (r *NotificationRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	snaps, err := r.fs.Collection(domain.Collection).
		Where("timestamp", "<", cutoff.UTC().Format(time.RFC3339)).
		Documents(ctx).
		GetAll()
	if err != nil {
		return 0, fmt.Errorf("query stale notifications: %w", err)
	}
	if len(snaps) == 0 {
		return 0, nil
	}

	bw := r.fs.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(snaps))
	for _, snap := range snaps {
		job, err := bw.Delete(snap.Ref)
		if err != nil {
			return 0, fmt.Errorf("prune notification: %w", err)
		}
		jobs = append(jobs, job)
	}
	bw.End()
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return 0, fmt.Errorf("prune notification: %w", err)
		}
	}
	return len(snaps), nil
}
