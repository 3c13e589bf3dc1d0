package bootstrap

import (
	"time"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/recovglox/recovglox-backend/internal/api/http"
	"github.com/recovglox/recovglox-backend/internal/api/http/middleware"
	"github.com/recovglox/recovglox-backend/internal/identity"
	notifhttp "github.com/recovglox/recovglox-backend/internal/notifications/http"
	notifrepo "github.com/recovglox/recovglox-backend/internal/notifications/repository"
	notifservice "github.com/recovglox/recovglox-backend/internal/notifications/service"
	patientshttp "github.com/recovglox/recovglox-backend/internal/patients/http"
	patientsrepo "github.com/recovglox/recovglox-backend/internal/patients/repository"
	patientsservice "github.com/recovglox/recovglox-backend/internal/patients/service"
	progresshttp "github.com/recovglox/recovglox-backend/internal/progress/http"
	progressservice "github.com/recovglox/recovglox-backend/internal/progress/service"
	sitehttp "github.com/recovglox/recovglox-backend/internal/site/http"
	usershttp "github.com/recovglox/recovglox-backend/internal/users/http"
	usersrepo "github.com/recovglox/recovglox-backend/internal/users/repository"
	usersservice "github.com/recovglox/recovglox-backend/internal/users/service"
)

const feedCacheTTL = time.Minute

type RouterDeps struct {
	ServiceName string
	Version     string
	Auth        *auth.Client
	Store       *firestore.Client
	Redis       *redis.Client
	RateLimit   int
}

// BuildRouter wires repositories, services and handlers into a gin engine.
// The notification service is returned as well so the caller can hand it to
// the prune scheduler.
func BuildRouter(dep RouterDeps) (*gin.Engine, *notifservice.NotificationService) {
	r := gin.Default()
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")
	api.Use(middleware.RequestIDMiddleware())
	api.Use(middleware.RateLimitMiddleware(dep.RateLimit))

	idp := identity.NewFirebaseProvider(dep.Auth)
	userRepo := usersrepo.NewUserRepository(dep.Store)
	cascadeRepo := usersrepo.NewCascadeRepository(dep.Store, userRepo)
	patientRepo := patientsrepo.NewPatientRepository(dep.Store)
	notifRepo := notifrepo.NewNotificationRepository(dep.Store)

	var feedCache notifservice.Cache
	if dep.Redis != nil {
		feedCache = notifrepo.NewFeedCache(dep.Redis, feedCacheTTL)
	}
	notifSvc := notifservice.NewNotificationService(notifRepo, feedCache, patientRepo)

	registrationSvc := usersservice.NewRegistrationService(idp, userRepo, patientRepo)
	loginSvc := usersservice.NewLoginService(idp, userRepo)
	deletionSvc := usersservice.NewDeletionService(idp, cascadeRepo)
	usershttp.New(registrationSvc, loginSvc, deletionSvc).Register(api)

	rosterSvc := patientsservice.NewRosterService(patientRepo, userRepo, userRepo)
	patientSvc := patientsservice.NewPatientService(patientRepo, userRepo, notifSvc)
	patientshttp.New(patientSvc, rosterSvc).Register(api)

	progressSvc := progressservice.NewProgressService(userRepo, patientRepo, userRepo)
	progresshttp.New(progressSvc).Register(api)

	notifhttp.New(notifSvc).Register(api)
	sitehttp.New().Register(api)

	return r, notifSvc
}
