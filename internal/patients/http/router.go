package http

import "github.com/gin-gonic/gin"

// Register attaches the patient routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/add-patient", h.addPatient)
	rg.GET("/patients/:physioId", h.listPatients)
	rg.POST("/add-observation", h.addObservation)
	rg.GET("/observations/:email", h.latestObservation)
}
