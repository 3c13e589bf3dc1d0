package main

import (
	"context"
	"log"
	"time"

	"github.com/recovglox/recovglox-backend/config"
	"github.com/recovglox/recovglox-backend/internal/bootstrap"
	cronjob "github.com/recovglox/recovglox-backend/internal/notifications/cron"
)

const serviceName = "recovglox-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()
	authClient, storeClient, err := bootstrap.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	defer storeClient.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, continuing without cache: %v", err)
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	r, notifSvc := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Auth:        authClient,
		Store:       storeClient,
		Redis:       rdb,
		RateLimit:   cfg.App.RateLimit,
	})

	retention := time.Duration(cfg.App.NotificationTTLDays) * 24 * time.Hour
	cronjob.NewScheduler(notifSvc, retention).Start()

	log.Printf("listening on :%s", cfg.Server.Port)
	log.Fatal(r.Run(":" + cfg.Server.Port))
}
