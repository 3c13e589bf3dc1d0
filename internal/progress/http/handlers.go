package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	patientsdomain "github.com/recovglox/recovglox-backend/internal/patients/domain"
	"github.com/recovglox/recovglox-backend/internal/progress/service"
	usersdomain "github.com/recovglox/recovglox-backend/internal/users/domain"
)

// Handler serves the progress endpoint.
type Handler struct {
	progress *service.ProgressService
}

func New(progress *service.ProgressService) *Handler {
	return &Handler{progress: progress}
}

// Register attaches the progress route to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/progress/:userId", h.getProgress)
}

func (h *Handler) getProgress(c *gin.Context) {
	userID := c.Param("userId")
	physioID := c.Query("physioId")

	data, err := h.progress.Progress(c.Request.Context(), userID, physioID)
	if err != nil {
		log.Printf("Error en /progress: %v", err)
		switch {
		case errors.Is(err, usersdomain.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Usuario no encontrado."})
		case errors.Is(err, patientsdomain.ErrNotPhysio):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Acceso denegado."})
		case errors.Is(err, patientsdomain.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "No tienes permisos para este usuario."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}
