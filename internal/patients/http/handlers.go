package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recovglox/recovglox-backend/internal/patients/domain"
)

type addPatientReq struct {
	PhysioID     string `json:"physioId"`
	PatientName  string `json:"patientName"`
	PatientEmail string `json:"patientEmail"`
}

func (h *Handler) addPatient(c *gin.Context) {
	var req addPatientReq
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.PhysioID == "" || req.PatientName == "" || req.PatientEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Faltan campos requeridos."})
		return
	}

	err := h.patients.AddPatient(c.Request.Context(), req.PhysioID, req.PatientName, req.PatientEmail)
	if err != nil {
		log.Printf("Error en /add-patient: %v", err)
		if errors.Is(err, domain.ErrNotPhysio) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Solo fisioterapeutas pueden agregar pacientes."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Paciente agregado correctamente."})
}

func (h *Handler) listPatients(c *gin.Context) {
	physioID := c.Param("physioId")

	patients, totalSessions, err := h.roster.Roster(c.Request.Context(), physioID)
	if err != nil {
		log.Printf("Error en /patients: %v", err)
		if errors.Is(err, domain.ErrNotPhysio) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Acceso denegado."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "patients": patients, "totalSessions": totalSessions})
}

type addObservationReq struct {
	PhysioID     string `json:"physioId"`
	PatientEmail string `json:"patientEmail"`
	Observation  string `json:"observation"`
}

func (h *Handler) addObservation(c *gin.Context) {
	var req addObservationReq
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.PhysioID == "" || req.PatientEmail == "" || req.Observation == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Faltan campos requeridos."})
		return
	}

	err := h.patients.AddObservation(c.Request.Context(), req.PhysioID, req.PatientEmail, req.Observation)
	if err != nil {
		log.Printf("Error en /add-observation: %v", err)
		switch {
		case errors.Is(err, domain.ErrNotPhysio):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Solo fisioterapeutas pueden agregar observaciones."})
		case errors.Is(err, domain.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "No tienes permisos para este paciente."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Observación agregada correctamente."})
}

func (h *Handler) latestObservation(c *gin.Context) {
	email := c.Param("email")

	observaciones, err := h.patients.LatestObservation(c.Request.Context(), email)
	if err != nil {
		log.Printf("Error en /observations: %v", err)
		if errors.Is(err, domain.ErrInviteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "No se encontró información."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "observaciones": observaciones})
}
