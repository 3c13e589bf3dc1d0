package http

import "github.com/recovglox/recovglox-backend/internal/users/service"

// Handler bundles the account endpoints.
type Handler struct {
	registration *service.RegistrationService
	login        *service.LoginService
	deletion     *service.DeletionService
}

func New(registration *service.RegistrationService, login *service.LoginService, deletion *service.DeletionService) *Handler {
	return &Handler{
		registration: registration,
		login:        login,
		deletion:     deletion,
	}
}
