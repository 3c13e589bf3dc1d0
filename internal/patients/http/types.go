package http

import "github.com/recovglox/recovglox-backend/internal/patients/service"

// Handler bundles the patient-management endpoints.
type Handler struct {
	patients *service.PatientService
	roster   *service.RosterService
}

func New(patients *service.PatientService, roster *service.RosterService) *Handler {
	return &Handler{patients: patients, roster: roster}
}
