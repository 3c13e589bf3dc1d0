package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler serves the static marketing-site endpoints.
type Handler struct{}

func New() *Handler {
	return &Handler{}
}

// Register attaches the informational routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/sobre-nosotros", h.aboutUs)
	rg.GET("/sobre-producto", h.aboutProduct)
}

func (h *Handler) aboutUs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": "Somos un equipo dedicado a innovar en tecnología wearable."})
}

func (h *Handler) aboutProduct(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": "El guante inteligente captura movimientos en tiempo real con sensores flexibles."})
}
