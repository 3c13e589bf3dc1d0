package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/recovglox/recovglox-backend/internal/notifications/service"
)

// Scheduler runs the nightly notification prune.
type Scheduler struct {
	notifications *service.NotificationService
	retention     time.Duration
}

func NewScheduler(notifications *service.NotificationService, retention time.Duration) *Scheduler {
	return &Scheduler{notifications: notifications, retention: retention}
}

// Start initializes cron tasks
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	// (12:00 AM)
	_, err := c.AddFunc("0 0 0 * * *", func() {
		if err := s.notifications.Prune(context.Background(), s.retention); err != nil {
			log.Printf("Notification prune failed: %v", err)
		}
	})

	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (pruning notifications nightly at 12:00AM)")
	c.Start()
}
