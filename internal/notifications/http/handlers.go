package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recovglox/recovglox-backend/internal/notifications/service"
	patientsdomain "github.com/recovglox/recovglox-backend/internal/patients/domain"
)

// Handler serves the notification feed.
type Handler struct {
	notifications *service.NotificationService
}

func New(notifications *service.NotificationService) *Handler {
	return &Handler{notifications: notifications}
}

// Register attaches the notification routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/notifications/:physioId", h.feed)
}

func (h *Handler) feed(c *gin.Context) {
	physioID := c.Param("physioId")

	items, err := h.notifications.Feed(c.Request.Context(), physioID)
	if err != nil {
		log.Printf("Error en /notifications: %v", err)
		if errors.Is(err, patientsdomain.ErrNotPhysio) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Acceso denegado."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": items})
}
